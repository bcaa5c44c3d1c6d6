package client

import (
	"context"
	"strconv"
	"strings"
	"time"

	"balance_assistant/internal/app/port"

	"github.com/patrickmn/go-cache"
)

// CachedTokenReader memoizes successful decimals/symbol/name reads per contract.
// Balances are always read through, and failed reads are never stored, so a
// default value is never served from the cache.
type CachedTokenReader struct {
	port.TokenReader
	metadata *cache.Cache
}

// NewCachedTokenReader wraps inner with a metadata cache.
func NewCachedTokenReader(inner port.TokenReader, ttl, cleanupInterval time.Duration) *CachedTokenReader {
	return &CachedTokenReader{
		TokenReader: inner,
		metadata:    cache.New(ttl, cleanupInterval),
	}
}

func (r *CachedTokenReader) cacheKey(contractAddress, field string) string {
	chainID := strconv.FormatUint(r.Definition().ChainID, 10)
	return chainID + "_" + strings.ToLower(contractAddress) + "_" + field
}

func (r *CachedTokenReader) Decimals(ctx context.Context, contractAddress string) (uint8, error) {
	key := r.cacheKey(contractAddress, "decimals")
	if v, ok := r.metadata.Get(key); ok {
		return v.(uint8), nil
	}
	decimals, err := r.TokenReader.Decimals(ctx, contractAddress)
	if err != nil {
		return 0, err
	}
	r.metadata.Set(key, decimals, cache.DefaultExpiration)
	return decimals, nil
}

func (r *CachedTokenReader) Symbol(ctx context.Context, contractAddress string) (string, error) {
	return r.cachedString(ctx, contractAddress, "symbol", r.TokenReader.Symbol)
}

func (r *CachedTokenReader) Name(ctx context.Context, contractAddress string) (string, error) {
	return r.cachedString(ctx, contractAddress, "name", r.TokenReader.Name)
}

func (r *CachedTokenReader) cachedString(
	ctx context.Context,
	contractAddress, field string,
	read func(context.Context, string) (string, error),
) (string, error) {
	key := r.cacheKey(contractAddress, field)
	if v, ok := r.metadata.Get(key); ok {
		return v.(string), nil
	}
	s, err := read(ctx, contractAddress)
	if err != nil {
		return "", err
	}
	r.metadata.Set(key, s, cache.DefaultExpiration)
	return s, nil
}
