package metrics

import (
	"errors"
	"testing"
	"time"

	"descarga_masiva/internal/domain/failures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition("finished")
	m.ObserveTransition("finished")
	m.ObserveDownload("failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("finished")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Downloads.WithLabelValues("failed")))

	m.ObserveRemoteCall("verify", 120*time.Millisecond, nil)
	m.ObserveRemoteCall("verify", time.Second, failures.New(failures.KindRemoteTransport, "timeout"))
	m.ObserveRemoteCall("download", time.Second, errors.New("plain"))
	assert.Equal(t, 3, testutil.CollectAndCount(m.RemoteCalls))
}
