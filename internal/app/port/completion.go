package port

import (
	"context"

	"balance_assistant/internal/domain/entity"
)

// Completer is the conversational backend: it answers prompt given a system
// context and the prior turns.
type Completer interface {
	Complete(ctx context.Context, systemContext, prompt string, history []entity.ChatMessage) (string, error)
}
