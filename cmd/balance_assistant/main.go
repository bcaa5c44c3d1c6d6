package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/app/service"
	"balance_assistant/internal/infrastructure/completion"
	"balance_assistant/internal/infrastructure/configloader"
	"balance_assistant/internal/infrastructure/network/client"
	networkdefinition "balance_assistant/internal/infrastructure/network/definition"
	"balance_assistant/internal/infrastructure/restapi"
	"balance_assistant/internal/pkg/logger"
	"balance_assistant/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = configloader.DefaultPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewSlogAdapter()
	logger.Info("Balance assistant starting", "config", configPath)

	recorder, err := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("Failed to register metrics", "error", err)
	}

	netDef, err := networkdefinition.Resolve(cfg.Network.Identifier, cfg.Network.RPCURL)
	if err != nil {
		logger.Fatal("Failed to resolve network", "identifier", cfg.Network.Identifier, "error", err)
	}
	logger.Info("Network selected", "network", netDef.Name, "chain_id", netDef.ChainID)

	reader, closeReader, err := client.NewTokenReader(ctx, cfg, netDef, recorder, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize token reader", "error", err)
	}
	defer closeReader()

	var completer port.Completer
	if cfg.HasAssistantCredential() {
		openAICompleter, err := completion.NewOpenAICompleter(cfg.Assistant)
		if err != nil {
			logger.Fatal("Failed to initialize conversational backend", "error", err)
		}
		completer = openAICompleter
		logger.Info("Conversational backend configured", "model", cfg.Assistant.Model, "base_url", cfg.Assistant.BaseURL)
	} else {
		logger.Warn("OPENAI_API_KEY is not set; conversational messages will be rejected")
	}

	balanceService := service.NewBalanceService(reader, appLogger, recorder)
	dispatcher := service.NewDispatcher(
		service.NewIntentClassifier(),
		balanceService,
		completer,
		netDef,
		appLogger,
		recorder,
	)

	requestTimeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
	router := restapi.SetupRouter(restapi.RouterDeps{
		BalanceHandler:     restapi.NewBalanceHandler(balanceService, netDef, requestTimeout, appLogger),
		ChatHandler:        restapi.NewChatHandler(dispatcher, netDef, requestTimeout, appLogger),
		Logger:             zapLogger.Named("http"),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Swagger:            cfg.Swagger,
	})
	if cfg.Swagger.Enabled {
		logger.Info("Swagger UI enabled", "path", "/swagger/index.html")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	cancel()

	logger.Info("Balance assistant stopped")
}
