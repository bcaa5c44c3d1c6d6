package client

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"balance_assistant/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken  = "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	testWallet = "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
)

var testNetwork = entity.NetworkDefinition{
	ChainID:        31337,
	Name:           "Test Chain",
	Identifier:     "test",
	NativeSymbol:   "ETH",
	NativeDecimals: 18,
	RPCURL:         "inproc",
	ExplorerURL:    "https://explorer.test",
}

type callResult struct {
	out []byte
	err error
}

// rateLimitedError is a JSON-RPC error unrelated to contract execution.
type rateLimitedError struct{}

func (rateLimitedError) Error() string  { return "too many requests" }
func (rateLimitedError) ErrorCode() int { return -32005 }

// quotaError is a provider rate-limit error that carries a JSON object as data.
type quotaError struct{}

func (quotaError) Error() string  { return "daily request count exceeded, request rate limited" }
func (quotaError) ErrorCode() int { return -32005 }
func (quotaError) ErrorData() any {
	return map[string]any{"see": "https://infura.io/dashboard"}
}

// revertError mimics geth's eth_call revert: code 3 with hex revert data.
type revertError struct{}

func (revertError) Error() string  { return "execution reverted: ERC20: paused" }
func (revertError) ErrorCode() int { return 3 }
func (revertError) ErrorData() any { return "0x08c379a0" }

type callArgs struct {
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

// fakeEth serves the eth_ namespace in-process.
type fakeEth struct {
	mu         sync.Mutex
	chainID    uint64
	results    map[string]callResult // keyed by ABI method name
	native     *big.Int
	nativeErr  error
	calledWith []string
}

func (f *fakeEth) ChainId() hexutil.Uint64 {
	return hexutil.Uint64(f.chainID)
}

func (f *fakeEth) Call(args callArgs, block string) (hexutil.Bytes, error) {
	input := args.Input
	if len(input) == 0 {
		input = args.Data
	}
	method, err := parsedERC20ABI.MethodById(input)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calledWith = append(f.calledWith, method.Name)

	res, ok := f.results[method.Name]
	if !ok {
		return hexutil.Bytes{}, nil
	}
	return res.out, res.err
}

func (f *fakeEth) GetBalance(addr common.Address, block string) (*hexutil.Big, error) {
	if f.nativeErr != nil {
		return nil, f.nativeErr
	}
	return (*hexutil.Big)(f.native), nil
}

func mustPack(t *testing.T, method string, values ...any) []byte {
	t.Helper()
	initParsedERC20ABI()
	out, err := parsedERC20ABI.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

func mustPackBytes32(t *testing.T, s string) []byte {
	t.Helper()
	initParsedERC20ABI()
	var b [32]byte
	copy(b[:], s)
	out, err := parsedERC20Bytes32ABI.Methods["symbol"].Outputs.Pack(b)
	require.NoError(t, err)
	return out
}

func newInProcClient(t *testing.T, fake *fakeEth) *EVMClient {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", fake))
	rpcClient := rpc.DialInProc(server)

	c := NewEVMClient(rpcClient, testNetwork, Options{RPCCallTimeout: 2 * time.Second})
	t.Cleanup(func() {
		c.Close()
		server.Stop()
	})
	return c
}

func standardToken(t *testing.T) *fakeEth {
	balance, _ := new(big.Int).SetString("1500000000000000000", 10)
	return &fakeEth{
		chainID: testNetwork.ChainID,
		results: map[string]callResult{
			"balanceOf": {out: mustPack(t, "balanceOf", balance)},
			"decimals":  {out: mustPack(t, "decimals", uint8(18))},
			"symbol":    {out: mustPack(t, "symbol", "TKN")},
			"name":      {out: mustPack(t, "name", "Test Token")},
		},
		native: big.NewInt(2_000_000_000_000_000_000),
	}
}

func TestEVMClient_Reads(t *testing.T) {
	c := newInProcClient(t, standardToken(t))
	ctx := context.Background()

	balance, err := c.BalanceOf(ctx, testToken, testWallet)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", balance.String())

	decimals, err := c.Decimals(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)

	symbol, err := c.Symbol(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "TKN", symbol)

	name, err := c.Name(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "Test Token", name)

	native, err := c.NativeBalance(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", native.String())

	assert.Equal(t, testNetwork, c.Definition())
}

func TestEVMClient_Bytes32Metadata(t *testing.T) {
	fake := standardToken(t)
	fake.results["symbol"] = callResult{out: mustPackBytes32(t, "MKR")}
	fake.results["name"] = callResult{out: mustPackBytes32(t, "Maker")}
	c := newInProcClient(t, fake)

	symbol, err := c.Symbol(context.Background(), testToken)
	require.NoError(t, err)
	assert.Equal(t, "MKR", symbol)

	name, err := c.Name(context.Background(), testToken)
	require.NoError(t, err)
	assert.Equal(t, "Maker", name)
}

func TestEVMClient_ContractErrors(t *testing.T) {
	tests := []struct {
		name   string
		result *callResult // nil means no code at the address
	}{
		{name: "no contract code"},
		{name: "revert", result: &callResult{err: errors.New("execution reverted")}},
		{name: "revert with data", result: &callResult{err: revertError{}}},
		{name: "invalid opcode", result: &callResult{err: errors.New("invalid opcode: INVALID")}},
		{name: "garbage output", result: &callResult{out: []byte{0x01, 0x02}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := standardToken(t)
			delete(fake.results, "balanceOf")
			if tt.result != nil {
				fake.results["balanceOf"] = *tt.result
			}
			c := newInProcClient(t, fake)

			_, err := c.BalanceOf(context.Background(), testToken, testWallet)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrContractRead)
			assert.NotErrorIs(t, err, entity.ErrTransport)
		})
	}
}

func TestEVMClient_NodeErrorIsTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rate limited", rateLimitedError{}},
		{"rate limited with data object", quotaError{}},
		{"evm call timeout", errors.New("execution aborted (timeout = 5s)")},
		{"unknown method", errors.New("the method eth_call does not exist/is not available")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := standardToken(t)
			fake.results["balanceOf"] = callResult{err: tt.err}
			c := newInProcClient(t, fake)

			_, err := c.BalanceOf(context.Background(), testToken, testWallet)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrTransport)
			assert.NotErrorIs(t, err, entity.ErrContractRead)
		})
	}
}

func TestEVMClient_DecimalsOutOfRange(t *testing.T) {
	fake := standardToken(t)
	// A uint256 that does not fit in uint8.
	fake.results["decimals"] = callResult{out: mustPack(t, "balanceOf", big.NewInt(300))}
	c := newInProcClient(t, fake)

	_, err := c.Decimals(context.Background(), testToken)
	assert.ErrorIs(t, err, entity.ErrContractRead)
}

func TestEVMClient_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	def := testNetwork
	def.RPCURL = url
	c, err := DialEVMClient(context.Background(), def, Options{RPCCallTimeout: time.Second})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.BalanceOf(context.Background(), testToken, testWallet)
	assert.ErrorIs(t, err, entity.ErrTransport)

	_, err = c.NativeBalance(context.Background(), testWallet)
	assert.ErrorIs(t, err, entity.ErrTransport)
}

func TestEVMClient_VerifyChainID(t *testing.T) {
	fake := standardToken(t)
	c := newInProcClient(t, fake)
	require.NoError(t, c.VerifyChainID(context.Background()))

	fake.chainID = 1
	assert.Error(t, c.VerifyChainID(context.Background()))
}

func TestEVMClient_RateLimitHonoursContext(t *testing.T) {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", standardToken(t)))
	c := NewEVMClient(rpc.DialInProc(server), testNetwork, Options{RateLimit: 0.001, BurstLimit: 1})
	defer c.Close()
	defer server.Stop()

	_, err := c.BalanceOf(context.Background(), testToken, testWallet)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.BalanceOf(ctx, testToken, testWallet)
	assert.ErrorIs(t, err, entity.ErrTransport)
}
