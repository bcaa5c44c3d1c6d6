package client

import (
	"context"
	"fmt"
	"time"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/domain/entity"
	"balance_assistant/internal/infrastructure/configloader"
	"balance_assistant/internal/pkg/metrics"
)

// NewTokenReader builds the process-wide TokenReader for netDef from configuration:
// an EVMClient, optionally wrapped in the metadata cache. The returned close
// function releases the RPC connection.
func NewTokenReader(
	ctx context.Context,
	cfg *configloader.Config,
	netDef entity.NetworkDefinition,
	recorder metrics.Recorder,
	logger port.Logger,
) (port.TokenReader, func(), error) {
	connectionTimeout := time.Duration(cfg.Performance.ConnectionTimeoutSeconds) * time.Second
	dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	logger.Info("Creating EVM client", "network", netDef.Name, "chain_id", netDef.ChainID, "rpc", netDef.RPCURL)
	evmClient, err := DialEVMClient(dialCtx, netDef, Options{
		RPCCallTimeout: time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second,
		RateLimit:      cfg.RPCClient.RateLimit,
		BurstLimit:     cfg.RPCClient.BurstLimit,
		Recorder:       recorder,
	})
	if err != nil {
		logger.Error("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	// Not fatal: queries against a bad endpoint fail on their own.
	if err := evmClient.VerifyChainID(dialCtx); err != nil {
		logger.Warn("RPC endpoint chain check failed", "network", netDef.Name, "error", err)
	}

	var reader port.TokenReader = evmClient
	if cfg.MetadataCache.Enabled {
		ttl := time.Duration(cfg.MetadataCache.TTLMinutes) * time.Minute
		cleanup := time.Duration(cfg.MetadataCache.CleanupIntervalMinutes) * time.Minute
		reader = NewCachedTokenReader(evmClient, ttl, cleanup)
		logger.Info("Token metadata cache enabled", "ttl", ttl.String())
	}

	return reader, evmClient.Close, nil
}
