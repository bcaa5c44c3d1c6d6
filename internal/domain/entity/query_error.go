package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrContractRead marks a call that reached the node but the contract rejected or
	// could not answer it (revert, missing code, undecodable output).
	ErrContractRead = errors.New("contract read failed")
	// ErrTransport marks a call that never got a usable answer from the node.
	ErrTransport = errors.New("rpc transport failure")
	// ErrMalformedRequest marks a request body with missing or mistyped fields.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrCompletionUnconfigured is returned when no conversational backend credential is set.
	ErrCompletionUnconfigured = errors.New("conversational service is not configured")
	// ErrCompletionFailed wraps a failure of the conversational backend.
	ErrCompletionFailed = errors.New("conversational service call failed")
)

// QueryErrorKind enumerates the ways a balance query can fail.
type QueryErrorKind int

const (
	KindInvalidAddress QueryErrorKind = iota + 1
	KindBalanceReadFailed
	KindTransportFailure
)

// QueryErrorKinds lists every kind; formatters must handle each one.
var QueryErrorKinds = []QueryErrorKind{
	KindInvalidAddress,
	KindBalanceReadFailed,
	KindTransportFailure,
}

func (k QueryErrorKind) String() string {
	switch k {
	case KindInvalidAddress:
		return "invalid_address"
	case KindBalanceReadFailed:
		return "balance_read_failed"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("query_error_kind(%d)", int(k))
	}
}

// Address field names reported by KindInvalidAddress.
const (
	FieldContractAddress = "contractAddress"
	FieldWalletAddress   = "walletAddress"
)

// QueryError is returned by the balance query for every failure it surfaces.
type QueryError struct {
	Kind  QueryErrorKind
	Field string // set for KindInvalidAddress
	Err   error
}

func (e *QueryError) Error() string {
	switch {
	case e.Kind == KindInvalidAddress:
		return fmt.Sprintf("%s: invalid %s", e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewInvalidAddressError reports a malformed address in the named field.
func NewInvalidAddressError(field string) *QueryError {
	return &QueryError{Kind: KindInvalidAddress, Field: field}
}

// ErrorPayload is the normalized, user-facing form of a failure.
type ErrorPayload struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"error"`
	Hint    string `json:"hint,omitempty"`
	Status  int    `json:"-"`
}
