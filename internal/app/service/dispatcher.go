package service

import (
	"context"
	"fmt"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/domain/entity"
	"balance_assistant/internal/pkg/metrics"
)

// DispatchRoute is the flow a message was routed to.
type DispatchRoute string

const (
	RouteBalance      DispatchRoute = "balance"
	RouteConversation DispatchRoute = "conversation"
)

const systemContextTemplate = `You are a helpful blockchain assistant connected to the %s network (chain ID %d, native currency %s).
You can explain blockchain concepts, tokens and wallets in plain language.
This service can also look up ERC-20 token balances directly. To use it, the user sends a message such as
"Check token balance for contract 0x<40 hex characters> and wallet 0x<40 hex characters>",
with the token contract address first and the wallet address second.
Addresses can be inspected on the block explorer at %s.`

// DispatcherImpl routes each message to the balance flow or the conversational flow.
type DispatcherImpl struct {
	classifier    port.IntentClassifier
	querier       port.BalanceQuerier
	normalizer    *ResultNormalizer
	completer     port.Completer
	systemContext string
	logger        port.Logger
	recorder      metrics.Recorder
}

// NewDispatcher wires the dispatcher. A nil completer leaves the conversational
// flow unconfigured; such messages fail with entity.ErrCompletionUnconfigured.
func NewDispatcher(
	classifier port.IntentClassifier,
	querier port.BalanceQuerier,
	completer port.Completer,
	network entity.NetworkDefinition,
	l port.Logger,
	recorder metrics.Recorder,
) *DispatcherImpl {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &DispatcherImpl{
		classifier:    classifier,
		querier:       querier,
		normalizer:    NewResultNormalizer(network),
		completer:     completer,
		systemContext: fmt.Sprintf(systemContextTemplate, network.Name, network.ChainID, network.NativeSymbol, network.ExplorerURL),
		logger:        l.With("component", "dispatcher"),
		recorder:      recorder,
	}
}

// SystemContext returns the fixed context sent with every conversational request.
func (d *DispatcherImpl) SystemContext() string {
	return d.systemContext
}

// Dispatch answers message. The balance flow always yields text; only the
// conversational flow returns errors.
func (d *DispatcherImpl) Dispatch(ctx context.Context, message string, history []entity.ChatMessage) (string, error) {
	intent := d.classifier.Classify(message)
	if intent.Matched {
		d.recorder.IncDispatch(string(RouteBalance))
		d.logger.Debug("Dispatching message", "route", RouteBalance)
		return d.balanceFlow(ctx, intent), nil
	}

	d.recorder.IncDispatch(string(RouteConversation))
	d.logger.Debug("Dispatching message", "route", RouteConversation, "history", len(history))
	return d.conversationalFlow(ctx, message, history)
}

func (d *DispatcherImpl) balanceFlow(ctx context.Context, intent entity.BalanceIntent) string {
	res, err := d.querier.QueryBalance(ctx, intent.ContractAddress, intent.WalletAddress)
	if err != nil {
		return FormatError(d.normalizer.NormalizeError(err))
	}
	return FormatSuccess(d.normalizer.NormalizeResult(res))
}

func (d *DispatcherImpl) conversationalFlow(ctx context.Context, message string, history []entity.ChatMessage) (string, error) {
	if d.completer == nil {
		d.logger.Warn("Conversational message received but no completer is configured")
		return "", entity.ErrCompletionUnconfigured
	}

	reply, err := d.completer.Complete(ctx, d.systemContext, message, history)
	if err != nil {
		d.logger.Error("Completion request failed", "error", err)
		return "", fmt.Errorf("%w: %w", entity.ErrCompletionFailed, err)
	}
	return reply, nil
}
