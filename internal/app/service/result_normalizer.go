package service

import (
	"errors"
	"fmt"
	"net/http"

	"balance_assistant/internal/domain/entity"
)

// Kinds reported for failures outside the balance query itself.
const (
	KindMalformedRequest   = "malformed_request"
	KindConfigurationError = "configuration_error"
	KindCompletionFailed   = "completion_failed"
)

const (
	hintAddressShape = "Addresses must be 0x followed by 40 hexadecimal characters."
	hintRetry        = "The network may be temporarily unavailable. Please try again in a moment."
)

// ResultNormalizer converts balance results and failures into their payload form.
type ResultNormalizer struct {
	network entity.NetworkDefinition
}

// NewResultNormalizer creates a normalizer for the given network.
func NewResultNormalizer(network entity.NetworkDefinition) *ResultNormalizer {
	return &ResultNormalizer{network: network}
}

// NormalizeResult flattens a successful query. Big integers are rendered as decimal strings.
func (n *ResultNormalizer) NormalizeResult(res *entity.BalanceResult) entity.BalancePayload {
	return entity.BalancePayload{
		ContractAddress:  res.ContractAddress,
		WalletAddress:    res.WalletAddress,
		TokenName:        res.Token.Name,
		TokenSymbol:      res.Token.Symbol,
		TokenDecimals:    res.Token.Decimals,
		RawBalance:       bigString(res.RawBalance),
		FormattedBalance: res.FormattedBalance,
		RawNativeBalance: bigString(res.RawNativeBalance),
		NativeBalance:    res.NativeBalance,
		NativeSymbol:     res.Network.NativeSymbol,
		ExplorerURL:      res.Network.AddressURL(res.WalletAddress),
		Network:          res.Network,
	}
}

// NormalizeError maps err to a message, a remediation hint and an HTTP status.
// Errors it does not recognize are reported like a transport failure.
func (n *ResultNormalizer) NormalizeError(err error) entity.ErrorPayload {
	var qerr *entity.QueryError
	switch {
	case errors.As(err, &qerr):
		return n.normalizeQueryError(qerr)
	case errors.Is(err, entity.ErrMalformedRequest):
		return entity.ErrorPayload{
			Kind:    KindMalformedRequest,
			Message: err.Error(),
			Status:  http.StatusBadRequest,
		}
	case errors.Is(err, entity.ErrCompletionUnconfigured):
		return entity.ErrorPayload{
			Kind:    KindConfigurationError,
			Message: "The conversational assistant is not configured.",
			Hint:    "Set OPENAI_API_KEY and restart the service.",
			Status:  http.StatusInternalServerError,
		}
	case errors.Is(err, entity.ErrCompletionFailed):
		return entity.ErrorPayload{
			Kind:    KindCompletionFailed,
			Message: "The conversational assistant could not answer.",
			Hint:    hintRetry,
			Status:  http.StatusInternalServerError,
		}
	default:
		return transportPayload()
	}
}

func (n *ResultNormalizer) normalizeQueryError(qerr *entity.QueryError) entity.ErrorPayload {
	switch qerr.Kind {
	case entity.KindInvalidAddress:
		what := "wallet"
		if qerr.Field == entity.FieldContractAddress {
			what = "contract"
		}
		return entity.ErrorPayload{
			Kind:    qerr.Kind.String(),
			Message: fmt.Sprintf("Invalid %s address.", what),
			Hint:    hintAddressShape,
			Status:  http.StatusBadRequest,
		}
	case entity.KindBalanceReadFailed:
		return entity.ErrorPayload{
			Kind:    qerr.Kind.String(),
			Message: "Could not read the token balance. The contract may not be a valid ERC-20 token.",
			Hint: fmt.Sprintf("Verify that the contract is deployed on %s and implements the ERC-20 interface.",
				n.network.Name),
			Status: http.StatusBadRequest,
		}
	default:
		return transportPayload()
	}
}

func transportPayload() entity.ErrorPayload {
	return entity.ErrorPayload{
		Kind:    entity.KindTransportFailure.String(),
		Message: "Failed to reach the blockchain network.",
		Hint:    hintRetry,
		Status:  http.StatusInternalServerError,
	}
}
