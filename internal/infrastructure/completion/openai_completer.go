package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/domain/entity"
	"balance_assistant/internal/infrastructure/configloader"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var _ port.Completer = (*OpenAICompleter)(nil)

// OpenAICompleter answers conversational messages through an OpenAI-compatible
// chat completions API.
type OpenAICompleter struct {
	client              openai.Client
	model               string
	maxCompletionTokens int64
	temperature         float64
	timeout             time.Duration
}

// NewOpenAICompleter creates a completer from the assistant configuration.
// It returns an error when no API key is configured.
func NewOpenAICompleter(cfg configloader.AssistantConfig, opts ...option.RequestOption) (*OpenAICompleter, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, entity.ErrCompletionUnconfigured
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(trimmed))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAICompleter{
		client:              openai.NewClient(reqOpts...),
		model:               cfg.Model,
		maxCompletionTokens: cfg.MaxCompletionTokens,
		temperature:         cfg.Temperature,
		timeout:             time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Complete sends the system context, the prior turns and prompt, and returns the
// first choice's content unchanged.
func (c *OpenAICompleter) Complete(ctx context.Context, systemContext, prompt string, history []entity.ChatMessage) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: buildMessages(systemContext, prompt, history),
	}
	if c.maxCompletionTokens > 0 {
		params.MaxCompletionTokens = openai.Int(c.maxCompletionTokens)
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(systemContext, prompt string, history []entity.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if systemContext != "" {
		messages = append(messages, openai.SystemMessage(systemContext))
	}
	for _, m := range history {
		switch m.Role {
		case entity.ChatRoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	return append(messages, openai.UserMessage(prompt))
}
