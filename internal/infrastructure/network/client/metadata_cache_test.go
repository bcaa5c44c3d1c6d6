package client

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"balance_assistant/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReader struct {
	decimalsCalls int
	symbolCalls   int
	nameCalls     int
	balanceCalls  int
	symbolErr     error
}

func (r *countingReader) BalanceOf(context.Context, string, string) (*big.Int, error) {
	r.balanceCalls++
	return big.NewInt(int64(r.balanceCalls)), nil
}

func (r *countingReader) Decimals(context.Context, string) (uint8, error) {
	r.decimalsCalls++
	return 6, nil
}

func (r *countingReader) Symbol(context.Context, string) (string, error) {
	r.symbolCalls++
	if r.symbolErr != nil {
		return "", r.symbolErr
	}
	return "USDC", nil
}

func (r *countingReader) Name(context.Context, string) (string, error) {
	r.nameCalls++
	return "USD Coin", nil
}

func (r *countingReader) NativeBalance(context.Context, string) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (r *countingReader) Definition() entity.NetworkDefinition { return testNetwork }

func TestCachedTokenReader_MemoizesMetadata(t *testing.T) {
	inner := &countingReader{}
	r := NewCachedTokenReader(inner, time.Minute, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := r.Decimals(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, uint8(6), d)

		s, err := r.Symbol(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, "USDC", s)

		n, err := r.Name(ctx, testToken)
		require.NoError(t, err)
		assert.Equal(t, "USD Coin", n)
	}
	assert.Equal(t, 1, inner.decimalsCalls)
	assert.Equal(t, 1, inner.symbolCalls)
	assert.Equal(t, 1, inner.nameCalls)

	// Address casing does not split the cache.
	_, err := r.Decimals(ctx, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.decimalsCalls)
}

func TestCachedTokenReader_BalancesPassThrough(t *testing.T) {
	inner := &countingReader{}
	r := NewCachedTokenReader(inner, time.Minute, time.Minute)

	first, err := r.BalanceOf(context.Background(), testToken, testWallet)
	require.NoError(t, err)
	second, err := r.BalanceOf(context.Background(), testToken, testWallet)
	require.NoError(t, err)

	assert.NotEqual(t, first.String(), second.String())
	assert.Equal(t, 2, inner.balanceCalls)
}

func TestCachedTokenReader_DoesNotCacheFailures(t *testing.T) {
	inner := &countingReader{symbolErr: errors.New("boom")}
	r := NewCachedTokenReader(inner, time.Minute, time.Minute)

	_, err := r.Symbol(context.Background(), testToken)
	require.Error(t, err)

	inner.symbolErr = nil
	s, err := r.Symbol(context.Background(), testToken)
	require.NoError(t, err)
	assert.Equal(t, "USDC", s)
	assert.Equal(t, 2, inner.symbolCalls)
}
