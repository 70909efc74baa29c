package entities

import "time"

// RemoteCodeAccepted is the SAT status code for an accepted envelope or request.
const RemoteCodeAccepted = 5000

// Token is the authentication token issued by SAT for one FIEL.
type Token struct {
	Value   string
	Created time.Time
	Expires time.Time
}

func (t Token) IsZero() bool {
	return t.Value == ""
}

// IsValidAt reports whether the token window covers now.
func (t Token) IsValidAt(now time.Time) bool {
	if t.IsZero() {
		return false
	}
	return now.Before(t.Expires)
}

// RemoteStatus is a code/message pair as returned by SAT.
type RemoteStatus struct {
	Code    int
	Message string
}

func (s RemoteStatus) IsAccepted() bool {
	return s.Code == RemoteCodeAccepted
}

// RequestStatus is the granular progress of a bulk-download request (EstadoSolicitud).
type RequestStatus int

const (
	RequestStatusUnknown    RequestStatus = 0
	RequestStatusAccepted   RequestStatus = 1
	RequestStatusInProgress RequestStatus = 2
	RequestStatusFinished   RequestStatus = 3
	RequestStatusFailure    RequestStatus = 4
	RequestStatusRejected   RequestStatus = 5
	RequestStatusExpired    RequestStatus = 6
)

func (s RequestStatus) String() string {
	switch s {
	case RequestStatusAccepted:
		return "accepted"
	case RequestStatusInProgress:
		return "in_progress"
	case RequestStatusFinished:
		return "finished"
	case RequestStatusFailure:
		return "failure"
	case RequestStatusRejected:
		return "rejected"
	case RequestStatusExpired:
		return "expired"
	}
	return "unknown"
}

// QuerySubmission is the remote answer to a submitted query.
type QuerySubmission struct {
	Status    RemoteStatus
	RequestID string
}

// VerificationResult carries the three independent status layers of a verification call.
type VerificationResult struct {
	Status        RemoteStatus
	CodeRequest   RemoteStatus
	StatusRequest RequestStatus
	NumberCfdis   int
	PackageIDs    []string
}

// PackageDownload is the remote answer to a package download.
type PackageDownload struct {
	Status  RemoteStatus
	Content []byte
}
