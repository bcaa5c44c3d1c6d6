package metrics

import "time"

type NoopRecorder struct{}

func (NoopRecorder) IncDispatch(string)                      {}
func (NoopRecorder) IncBalanceQuery(string)                  {}
func (NoopRecorder) ObserveRPC(string, time.Duration, error) {}
