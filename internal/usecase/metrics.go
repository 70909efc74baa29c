package usecase

import (
	"time"

	"descarga_masiva/internal/usecase/interfaces"
)

type nopMetrics struct{}

func (nopMetrics) ObserveTransition(string)                       {}
func (nopMetrics) ObserveDownload(string)                         {}
func (nopMetrics) ObserveRemoteCall(string, time.Duration, error) {}

func metricsOrNop(m interfaces.IMetricsRecorder) interfaces.IMetricsRecorder {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
