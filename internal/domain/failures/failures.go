package failures

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind is the stable, machine-readable classification of a failure.
type Kind string

const (
	KindCredentialInvalid    Kind = "credential_invalid"
	KindAuthenticationFailed Kind = "authentication_failed"
	KindValidation           Kind = "validation_error"
	KindRemoteTransport      Kind = "remote_transport_error"
	KindRemoteRejected       Kind = "remote_rejected"
	KindRequestExpired       Kind = "request_expired"
	KindRequestFailed        Kind = "request_failed"
	KindPackageDownload      Kind = "package_download_error"
	KindMalformedDocument    Kind = "malformed_document"
	KindUnsupportedSchema    Kind = "unsupported_schema"
	KindPersistence          Kind = "persistence_error"
	KindIllegalTransition    Kind = "illegal_transition"
	KindTokenExpired         Kind = "token_expired"
	KindNotFound             Kind = "not_found"
)

// Kind sentinels, for errors.Is matching against any failure of that kind.
var (
	ErrCredentialInvalid    = &Failure{Kind: KindCredentialInvalid}
	ErrAuthenticationFailed = &Failure{Kind: KindAuthenticationFailed}
	ErrValidation           = &Failure{Kind: KindValidation}
	ErrRemoteTransport      = &Failure{Kind: KindRemoteTransport}
	ErrRemoteRejected       = &Failure{Kind: KindRemoteRejected}
	ErrRequestExpired       = &Failure{Kind: KindRequestExpired}
	ErrRequestFailed        = &Failure{Kind: KindRequestFailed}
	ErrPackageDownload      = &Failure{Kind: KindPackageDownload}
	ErrMalformedDocument    = &Failure{Kind: KindMalformedDocument}
	ErrUnsupportedSchema    = &Failure{Kind: KindUnsupportedSchema}
	ErrPersistence          = &Failure{Kind: KindPersistence}
	ErrIllegalTransition    = &Failure{Kind: KindIllegalTransition}
	ErrTokenExpired         = &Failure{Kind: KindTokenExpired}
	ErrNotFound             = &Failure{Kind: KindNotFound}
)

// Failure is the error value returned by every core operation.
//
// RemoteCode and RemoteMessage hold the diagnostic supplied by the SAT service
// verbatim, when there is one.
type Failure struct {
	Kind          Kind
	Message       string
	RemoteCode    int
	RemoteMessage string
	Err           error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s", f.Kind, f.Message)
	if f.RemoteCode != 0 || f.RemoteMessage != "" {
		msg = fmt.Sprintf("%s (remote %d: %s)", msg, f.RemoteCode, f.RemoteMessage)
	}
	if f.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, f.Err)
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches any failure of the same kind.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok || t == nil {
		return false
	}
	return f.Kind == t.Kind
}

// Terminal reports whether the kind is a business-terminal outcome that must not be retried.
func (k Kind) Terminal() bool {
	switch k {
	case KindRemoteRejected, KindRequestExpired, KindRequestFailed:
		return true
	}
	return false
}

// Recoverable reports whether the caller may retry the same operation unchanged.
func (k Kind) Recoverable() bool {
	switch k {
	case KindRemoteTransport, KindPackageDownload, KindPersistence:
		return true
	}
	return false
}

func New(kind Kind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, keeping a stack trace on the cause.
func Wrap(err error, kind Kind, message string) *Failure {
	if err == nil {
		return New(kind, message)
	}
	return &Failure{Kind: kind, Message: message, Err: errors.WithStack(err)}
}

// Remote builds a failure carrying the remote diagnostic.
func Remote(kind Kind, message string, code int, remoteMessage string) *Failure {
	return &Failure{Kind: kind, Message: message, RemoteCode: code, RemoteMessage: remoteMessage}
}

// KindOf returns the kind of the first Failure in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// As extracts the first Failure in err's chain.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// WithHint attaches a user-facing hint; the HTTP layer surfaces it as details.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return errors.WithHint(err, hint)
}

func Hints(err error) []string {
	return errors.GetAllHints(err)
}
