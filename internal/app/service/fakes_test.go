package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/domain/entity"
)

var testNetwork = entity.NetworkDefinition{
	ChainID:        11155111,
	Name:           "Sepolia",
	Identifier:     "sepolia",
	NativeSymbol:   "ETH",
	NativeDecimals: 18,
	RPCURL:         "http://127.0.0.1:8545",
	ExplorerURL:    "https://sepolia.etherscan.io",
}

// fakeReader is a scripted port.TokenReader that counts every call.
type fakeReader struct {
	mu    sync.Mutex
	calls map[string]int

	balance  *big.Int
	native   *big.Int
	decimals uint8
	symbol   string
	name     string

	balanceErr  error
	nativeErr   error
	decimalsErr error
	symbolErr   error
	nameErr     error
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		calls:    make(map[string]int),
		balance:  big.NewInt(1_500_000),
		native:   new(big.Int).Mul(big.NewInt(2), big.NewInt(1e18)),
		decimals: 6,
		symbol:   "USDC",
		name:     "USD Coin",
	}
}

func (f *fakeReader) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeReader) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeReader) BalanceOf(context.Context, string, string) (*big.Int, error) {
	f.record("balanceOf")
	return f.balance, f.balanceErr
}

func (f *fakeReader) Decimals(context.Context, string) (uint8, error) {
	f.record("decimals")
	return f.decimals, f.decimalsErr
}

func (f *fakeReader) Symbol(context.Context, string) (string, error) {
	f.record("symbol")
	return f.symbol, f.symbolErr
}

func (f *fakeReader) Name(context.Context, string) (string, error) {
	f.record("name")
	return f.name, f.nameErr
}

func (f *fakeReader) NativeBalance(context.Context, string) (*big.Int, error) {
	f.record("nativeBalance")
	return f.native, f.nativeErr
}

func (f *fakeReader) Definition() entity.NetworkDefinition { return testNetwork }

// recordingLogger keeps every message so tests can assert on warnings.
type recordingLogger struct {
	mu    *sync.Mutex
	lines *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{mu: &sync.Mutex{}, lines: &[]string{}}
}

func (l recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.lines = append(*l.lines, fmt.Sprint(level, " ", msg, " ", args))
}

func (l recordingLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args) }
func (l recordingLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }
func (l recordingLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args) }
func (l recordingLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args) }
func (l recordingLogger) With(...any) port.Logger       { return l }

func (l recordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), *l.lines...)
}

// countingRecorder is a metrics.Recorder that tallies labels.
type countingRecorder struct {
	mu       sync.Mutex
	dispatch map[string]int
	queries  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{dispatch: map[string]int{}, queries: map[string]int{}}
}

func (r *countingRecorder) IncDispatch(route string) {
	r.mu.Lock()
	r.dispatch[route]++
	r.mu.Unlock()
}

func (r *countingRecorder) IncBalanceQuery(outcome string) {
	r.mu.Lock()
	r.queries[outcome]++
	r.mu.Unlock()
}

func (r *countingRecorder) ObserveRPC(string, time.Duration, error) {}

// stubCompleter answers with a fixed reply and remembers its inputs.
type stubCompleter struct {
	reply   string
	err     error
	calls   int
	context string
	prompt  string
	history []entity.ChatMessage
}

func (s *stubCompleter) Complete(_ context.Context, systemContext, prompt string, history []entity.ChatMessage) (string, error) {
	s.calls++
	s.context = systemContext
	s.prompt = prompt
	s.history = history
	return s.reply, s.err
}
