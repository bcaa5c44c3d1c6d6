package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"balance_assistant/internal/domain/entity"
	"balance_assistant/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

const (
	defaultRPCCallTimeout = 10 * time.Second
)

// Options tune an EVMClient. Zero values select defaults.
type Options struct {
	RPCCallTimeout time.Duration
	RateLimit      float64 // requests per second; <= 0 disables throttling
	BurstLimit     int
	Recorder       metrics.Recorder
}

// EVMClient implements port.TokenReader for EVM-compatible chains.
// It is safe for concurrent use; the underlying rpc.Client pools connections.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
	limiter        *rate.Limiter
	recorder       metrics.Recorder
}

// DialEVMClient connects to netDef.RPCURL.
func DialEVMClient(ctx context.Context, netDef entity.NetworkDefinition, opts Options) (*EVMClient, error) {
	rpcClient, err := rpc.DialContext(ctx, netDef.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s for network %s: %w", netDef.RPCURL, netDef.Name, err)
	}
	return NewEVMClient(rpcClient, netDef, opts), nil
}

// NewEVMClient wraps an existing rpc.Client.
func NewEVMClient(rpcClient *rpc.Client, netDef entity.NetworkDefinition, opts Options) *EVMClient {
	initParsedERC20ABI()

	if opts.RPCCallTimeout <= 0 {
		opts.RPCCallTimeout = defaultRPCCallTimeout
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.BurstLimit
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &EVMClient{
		ethClient:      ethclient.NewClient(rpcClient),
		netDef:         netDef,
		rpcCallTimeout: opts.RPCCallTimeout,
		limiter:        limiter,
		recorder:       opts.Recorder,
	}
}

// Close releases the underlying connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// VerifyChainID checks that the endpoint serves the configured chain.
func (c *EVMClient) VerifyChainID(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	chainID, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return classifyRPCError("eth_chainId", err)
	}
	if !chainID.IsUint64() || chainID.Uint64() != c.netDef.ChainID {
		return fmt.Errorf("chainID mismatch for %s: expected %d, got %s", c.netDef.RPCURL, c.netDef.ChainID, chainID)
	}
	return nil
}

// BalanceOf calls balanceOf(owner) on the token contract.
func (c *EVMClient) BalanceOf(ctx context.Context, contractAddress, ownerAddress string) (*big.Int, error) {
	out, err := c.call(ctx, "balanceOf", contractAddress, common.HexToAddress(ownerAddress))
	if err != nil {
		return nil, err
	}
	unpacked, err := parsedERC20ABI.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack balanceOf result: %v. Raw: %s", entity.ErrContractRead, err, hexutil.Encode(out))
	}
	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: balanceOf returned %T", entity.ErrContractRead, unpacked[0])
	}
	return balance, nil
}

// Decimals calls decimals() on the token contract.
func (c *EVMClient) Decimals(ctx context.Context, contractAddress string) (uint8, error) {
	out, err := c.call(ctx, "decimals", contractAddress)
	if err != nil {
		return 0, err
	}
	unpacked, err := parsedERC20ABI.Unpack("decimals", out)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to unpack decimals result: %v. Raw: %s", entity.ErrContractRead, err, hexutil.Encode(out))
	}
	decimals, ok := unpacked[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: decimals returned %T", entity.ErrContractRead, unpacked[0])
	}
	return decimals, nil
}

// Symbol calls symbol() on the token contract.
func (c *EVMClient) Symbol(ctx context.Context, contractAddress string) (string, error) {
	return c.readString(ctx, "symbol", contractAddress)
}

// Name calls name() on the token contract.
func (c *EVMClient) Name(ctx context.Context, contractAddress string) (string, error) {
	return c.readString(ctx, "name", contractAddress)
}

// NativeBalance fetches the native currency balance for a wallet at the latest block.
func (c *EVMClient) NativeBalance(ctx context.Context, walletAddress string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	balance, err := c.ethClient.BalanceAt(ctx, common.HexToAddress(walletAddress), nil)
	c.recorder.ObserveRPC("eth_getBalance", time.Since(start), err)
	if err != nil {
		return nil, classifyRPCError("eth_getBalance", err)
	}
	return balance, nil
}

func (c *EVMClient) readString(ctx context.Context, method, contractAddress string) (string, error) {
	out, err := c.call(ctx, method, contractAddress)
	if err != nil {
		return "", err
	}
	if unpacked, err := parsedERC20ABI.Unpack(method, out); err == nil {
		if s, ok := unpacked[0].(string); ok && s != "" {
			return s, nil
		}
	}
	if s, ok := decodeBytes32String(out); ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: undecodable %s result. Raw: %s", entity.ErrContractRead, method, hexutil.Encode(out))
}

// decodeBytes32String reads a right-zero-padded bytes32 return value.
func decodeBytes32String(out []byte) (string, bool) {
	if len(out) != 32 {
		return "", false
	}
	unpacked, err := parsedERC20Bytes32ABI.Unpack("symbol", out)
	if err != nil {
		return "", false
	}
	raw, ok := unpacked[0].([32]byte)
	if !ok {
		return "", false
	}
	trimmed := bytes.TrimRight(raw[:], "\x00")
	if len(trimmed) == 0 || !utf8.Valid(trimmed) {
		return "", false
	}
	return string(trimmed), true
}

// call performs one eth_call against the contract at the latest block.
func (c *EVMClient) call(ctx context.Context, method, contractAddress string, args ...any) ([]byte, error) {
	data, err := parsedERC20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	to := common.HexToAddress(contractAddress)
	start := time.Now()
	out, err := c.ethClient.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	c.recorder.ObserveRPC(method, time.Since(start), err)
	if err != nil {
		return nil, classifyRPCError(method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s returned no data, is %s a contract on %s?", entity.ErrContractRead, method, to.Hex(), c.netDef.Name)
	}
	return out, nil
}

func (c *EVMClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", entity.ErrTransport, err)
	}
	return nil
}

// classifyRPCError separates answers from the node about the contract from
// failures to get an answer at all.
func classifyRPCError(method string, err error) error {
	if isContractError(err) {
		return fmt.Errorf("%w: %s: %w", entity.ErrContractRead, method, err)
	}
	return fmt.Errorf("%w: %s: %w", entity.ErrTransport, method, err)
}

func isContractError(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && isRevertData(dataErr.ErrorData()) {
		return true
	}
	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		return false
	}
	if rpcErr.ErrorCode() == 3 {
		return true
	}
	msg := strings.ToLower(rpcErr.Error())
	return strings.HasPrefix(msg, "execution reverted") ||
		strings.Contains(msg, "invalid opcode")
}

// isRevertData reports whether data is hex-encoded return data. Providers also
// attach JSON objects to rate-limit and quota errors; those are not reverts.
func isRevertData(data any) bool {
	s, ok := data.(string)
	if !ok {
		return false
	}
	_, err := hexutil.Decode(s)
	return err == nil
}
