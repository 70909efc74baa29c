package interfaces

import "time"

type IMetricsRecorder interface {
	ObserveTransition(state string)
	ObserveDownload(outcome string)
	ObserveRemoteCall(operation string, elapsed time.Duration, err error)
}
