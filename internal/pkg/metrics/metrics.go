package metrics

import "time"

// Recorder receives the service's operational events.
type Recorder interface {
	// IncDispatch counts one dispatched message by route ("balance" or "conversation").
	IncDispatch(route string)
	// IncBalanceQuery counts one balance query by outcome ("success" or a QueryErrorKind).
	IncBalanceQuery(outcome string)
	// ObserveRPC records the latency of one JSON-RPC read.
	ObserveRPC(method string, duration time.Duration, err error)
}
