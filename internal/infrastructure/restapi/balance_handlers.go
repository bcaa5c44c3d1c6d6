package restapi

import (
	"context"
	"net/http"
	"time"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/app/service"
	"balance_assistant/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// BalanceRequest is the body of POST /api/v1/balance.
type BalanceRequest struct {
	ContractAddress *string `json:"contractAddress"`
	WalletAddress   *string `json:"walletAddress"`
}

// BalanceResponse is the success body of POST /api/v1/balance.
type BalanceResponse struct {
	Success bool                  `json:"success"`
	Data    entity.BalancePayload `json:"data"`
}

// BalanceHandler serves direct balance queries and the network descriptor.
type BalanceHandler struct {
	querier    port.BalanceQuerier
	normalizer *service.ResultNormalizer
	network    entity.NetworkDefinition
	timeout    time.Duration
	logger     port.Logger
}

// NewBalanceHandler creates a new instance of BalanceHandler.
func NewBalanceHandler(querier port.BalanceQuerier, network entity.NetworkDefinition, timeout time.Duration, l port.Logger) *BalanceHandler {
	return &BalanceHandler{
		querier:    querier,
		normalizer: service.NewResultNormalizer(network),
		network:    network,
		timeout:    timeout,
		logger:     l.With("component", "balance_handler"),
	}
}

// QueryBalanceHandler handles POST /api/v1/balance.
func (h *BalanceHandler) QueryBalanceHandler(c *gin.Context) {
	var req BalanceRequest
	if err := decodeBody(c.Request, &req); err != nil {
		writeError(c, h.normalizer.NormalizeError(err))
		return
	}
	if req.ContractAddress == nil {
		writeError(c, h.normalizer.NormalizeError(requiredField(entity.FieldContractAddress)))
		return
	}
	if req.WalletAddress == nil {
		writeError(c, h.normalizer.NormalizeError(requiredField(entity.FieldWalletAddress)))
		return
	}

	ctx, cancel := withTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.querier.QueryBalance(ctx, *req.ContractAddress, *req.WalletAddress)
	if err != nil {
		writeError(c, h.normalizer.NormalizeError(err))
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Success: true,
		Data:    h.normalizer.NormalizeResult(res),
	})
}

// NetworkHandler handles GET /api/v1/network.
func (h *BalanceHandler) NetworkHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.network)
}

func writeError(c *gin.Context, p entity.ErrorPayload) {
	c.AbortWithStatusJSON(p.Status, p)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
