package service

import (
	"context"
	"errors"
	"math/big"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/domain/entity"
	"balance_assistant/internal/pkg/metrics"
	"balance_assistant/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// BalanceServiceImpl implements port.BalanceQuerier against a single network.
type BalanceServiceImpl struct {
	reader   port.TokenReader
	logger   port.Logger
	recorder metrics.Recorder
}

// NewBalanceService creates a new instance of BalanceServiceImpl.
func NewBalanceService(reader port.TokenReader, l port.Logger, recorder metrics.Recorder) *BalanceServiceImpl {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &BalanceServiceImpl{
		reader:   reader,
		logger:   l.With("component", "balance_service"),
		recorder: recorder,
	}
}

// QueryBalance validates both addresses, then reads balanceOf, the native balance and
// the token metadata concurrently. Only the two balance reads are mandatory; each
// metadata field falls back to its default on failure.
func (s *BalanceServiceImpl) QueryBalance(ctx context.Context, contractAddress, walletAddress string) (*entity.BalanceResult, error) {
	if !entity.IsValidAddress(contractAddress) {
		return nil, s.fail(entity.NewInvalidAddressError(entity.FieldContractAddress))
	}
	if !entity.IsValidAddress(walletAddress) {
		return nil, s.fail(entity.NewInvalidAddressError(entity.FieldWalletAddress))
	}

	netDef := s.reader.Definition()
	s.logger.Debug("Querying token balance", "contract", contractAddress, "wallet", walletAddress, "network", netDef.Name)

	var (
		rawBalance    *big.Int
		nativeBalance *big.Int
		balanceErr    error
		nativeErr     error
		token         = entity.DefaultTokenInfo()
	)

	// Only a failed balanceOf cancels the siblings; a native-balance failure is
	// recorded and checked after balanceOf has had its say.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rawBalance, balanceErr = s.reader.BalanceOf(gctx, contractAddress, walletAddress)
		return balanceErr
	})
	g.Go(func() error {
		nativeBalance, nativeErr = s.reader.NativeBalance(gctx, walletAddress)
		return nil
	})
	g.Go(func() error {
		token.Decimals = readOrDefault(gctx, s.logger, "decimals", func(ctx context.Context) (uint8, error) {
			return s.reader.Decimals(ctx, contractAddress)
		}, entity.DefaultTokenDecimals)
		return nil
	})
	g.Go(func() error {
		token.Symbol = readOrDefault(gctx, s.logger, "symbol", func(ctx context.Context) (string, error) {
			return s.reader.Symbol(ctx, contractAddress)
		}, entity.DefaultTokenSymbol)
		return nil
	})
	g.Go(func() error {
		token.Name = readOrDefault(gctx, s.logger, "name", func(ctx context.Context) (string, error) {
			return s.reader.Name(ctx, contractAddress)
		}, entity.DefaultTokenName)
		return nil
	})
	_ = g.Wait()

	if balanceErr != nil {
		kind := entity.KindTransportFailure
		if errors.Is(balanceErr, entity.ErrContractRead) {
			kind = entity.KindBalanceReadFailed
		}
		return nil, s.fail(&entity.QueryError{Kind: kind, Err: balanceErr})
	}
	if rawBalance == nil {
		return nil, s.fail(&entity.QueryError{Kind: entity.KindBalanceReadFailed, Err: errors.New("balanceOf returned no value")})
	}
	if nativeErr != nil {
		return nil, s.fail(&entity.QueryError{Kind: entity.KindTransportFailure, Err: nativeErr})
	}
	if nativeBalance == nil {
		nativeBalance = new(big.Int)
	}

	nativeDecimals := netDef.NativeDecimals
	if nativeDecimals == 0 {
		nativeDecimals = 18
	}

	result := &entity.BalanceResult{
		Token:            token,
		ContractAddress:  contractAddress,
		WalletAddress:    walletAddress,
		RawBalance:       rawBalance,
		FormattedBalance: utils.FormatBigInt(rawBalance, token.Decimals),
		RawNativeBalance: nativeBalance,
		NativeBalance:    utils.FormatBigInt(nativeBalance, nativeDecimals),
		Network:          netDef,
	}

	s.recorder.IncBalanceQuery("success")
	s.logger.Info("Token balance fetched",
		"contract", contractAddress,
		"wallet", walletAddress,
		"symbol", token.Symbol,
		"balance", result.FormattedBalance,
		"network", netDef.Name,
	)
	return result, nil
}

func (s *BalanceServiceImpl) fail(qerr *entity.QueryError) error {
	s.recorder.IncBalanceQuery(qerr.Kind.String())
	s.logger.Warn("Token balance query failed", "kind", qerr.Kind.String(), "field", qerr.Field, "error", qerr.Err)
	return qerr
}

// readOrDefault runs one optional read and substitutes fallback when it fails.
func readOrDefault[T any](ctx context.Context, l port.Logger, field string, read func(context.Context) (T, error), fallback T) T {
	v, err := read(ctx)
	if err != nil {
		l.Warn("Optional token read failed, using default", "field", field, "default", fallback, "error", err)
		return fallback
	}
	return v
}
