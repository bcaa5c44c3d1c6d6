package restapi

import (
	"fmt"
	"net/http"
	"time"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/app/service"
	"balance_assistant/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// ChatRequest is the body of POST /api/v1/chat. History is optional and is
// forwarded to the conversational backend as-is; it is never stored.
type ChatRequest struct {
	Message *string              `json:"message"`
	History []entity.ChatMessage `json:"history,omitempty"`
}

// ChatResponse is the success body of POST /api/v1/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatHandler serves the message dispatch endpoint.
type ChatHandler struct {
	dispatcher port.MessageDispatcher
	normalizer *service.ResultNormalizer
	timeout    time.Duration
	logger     port.Logger
}

// NewChatHandler creates a new instance of ChatHandler.
func NewChatHandler(dispatcher port.MessageDispatcher, network entity.NetworkDefinition, timeout time.Duration, l port.Logger) *ChatHandler {
	return &ChatHandler{
		dispatcher: dispatcher,
		normalizer: service.NewResultNormalizer(network),
		timeout:    timeout,
		logger:     l.With("component", "chat_handler"),
	}
}

// DispatchHandler handles POST /api/v1/chat.
func (h *ChatHandler) DispatchHandler(c *gin.Context) {
	var req ChatRequest
	if err := decodeBody(c.Request, &req); err != nil {
		writeError(c, h.normalizer.NormalizeError(err))
		return
	}
	if req.Message == nil || *req.Message == "" {
		writeError(c, h.normalizer.NormalizeError(requiredField("message")))
		return
	}
	for i, m := range req.History {
		if m.Role != entity.ChatRoleUser && m.Role != entity.ChatRoleAssistant {
			err := fmt.Errorf("%w: history[%d].role must be %q or %q", entity.ErrMalformedRequest, i, entity.ChatRoleUser, entity.ChatRoleAssistant)
			writeError(c, h.normalizer.NormalizeError(err))
			return
		}
	}

	ctx, cancel := withTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	reply, err := h.dispatcher.Dispatch(ctx, *req.Message, req.History)
	if err != nil {
		h.logger.Warn("Dispatch failed", "error", err)
		writeError(c, h.normalizer.NormalizeError(err))
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}
