package restapi

import (
	"net/http"

	"balance_assistant/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterDeps collects what SetupRouter mounts.
type RouterDeps struct {
	BalanceHandler *BalanceHandler
	ChatHandler    *ChatHandler
	Logger         *zap.Logger
	// MetricsHandler is served on /metrics when set.
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	Swagger            configloader.SwaggerConfig
}

// SetupRouter configures and returns the gin engine.
func SetupRouter(d RouterDeps) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(d.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = d.CORSAllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	if d.Logger != nil {
		router.Use(ZapLoggerMiddleware(d.Logger))
	}
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/balance", d.BalanceHandler.QueryBalanceHandler)
		v1.GET("/network", d.BalanceHandler.NetworkHandler)
		v1.POST("/chat", d.ChatHandler.DispatchHandler)
	}

	if d.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	if d.Swagger.Enabled {
		router.StaticFile("/docs/swagger.yaml", d.Swagger.SpecFile)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))
	}

	return router
}
