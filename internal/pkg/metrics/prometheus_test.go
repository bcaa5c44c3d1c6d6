package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	rec.IncDispatch("balance")
	rec.IncDispatch("balance")
	rec.IncDispatch("conversation")
	rec.IncBalanceQuery("success")
	rec.ObserveRPC("balanceOf", 20*time.Millisecond, nil)
	rec.ObserveRPC("balanceOf", 30*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.dispatches.WithLabelValues("balance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.dispatches.WithLabelValues("conversation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.balanceQuery.WithLabelValues("success")))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.rpcLatency))
}

func TestNewPrometheusRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	_, err = NewPrometheusRecorder(reg)
	assert.Error(t, err)
}
