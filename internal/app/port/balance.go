package port

import (
	"context"

	"balance_assistant/internal/domain/entity"
)

// BalanceQuerier runs a validated ERC-20 balance lookup.
type BalanceQuerier interface {
	// QueryBalance returns a *entity.QueryError for every failure.
	QueryBalance(ctx context.Context, contractAddress, walletAddress string) (*entity.BalanceResult, error)
}

// IntentClassifier detects balance requests in free text.
type IntentClassifier interface {
	Classify(message string) entity.BalanceIntent
}

// MessageDispatcher answers one user message with display text.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, message string, history []entity.ChatMessage) (string, error)
	// SystemContext returns the fixed context sent to the conversational backend.
	SystemContext() string
}
