package entities

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"descarga_masiva/internal/domain/failures"

	"github.com/samber/lo"
)

// LifecycleState is the single source of truth for which transitions are legal.
//
// Flow:
//
//	new -> authenticated -> query_submitted -> verifying -> finished
//	                                        \-> rejected   \-> rejected | expired | failed
//
// rejected, expired and failed are terminal failures; finished is terminal success.
// An accepted submission moves straight to verifying; a lifecycle rebuilt in
// query_submitted is moved to verifying by its first poll.
type LifecycleState string

const (
	StateNew            LifecycleState = "new"
	StateAuthenticated  LifecycleState = "authenticated"
	StateQuerySubmitted LifecycleState = "query_submitted"
	StateVerifying      LifecycleState = "verifying"
	StateFinished       LifecycleState = "finished"
	StateRejected       LifecycleState = "rejected"
	StateExpired        LifecycleState = "expired"
	StateFailed         LifecycleState = "failed"
)

func (s LifecycleState) Terminal() bool {
	switch s {
	case StateFinished, StateRejected, StateExpired, StateFailed:
		return true
	}
	return false
}

// VerificationOutcome classifies what one verification poll did to the lifecycle.
type VerificationOutcome string

const (
	OutcomePending   VerificationOutcome = "pending"
	OutcomeTransient VerificationOutcome = "transient"
	OutcomeFinished  VerificationOutcome = "finished"
	OutcomeRejected  VerificationOutcome = "rejected"
	OutcomeExpired   VerificationOutcome = "expired"
	OutcomeFailed    VerificationOutcome = "failed"
)

// RequestLifecycle is the aggregate root of one bulk-download request.
//
// Transitions are not safe for concurrent use; callers hold Lock for the whole
// transition, including the remote call that drives it.
type RequestLifecycle struct {
	mu sync.Mutex

	ID             string
	SubjectID      string
	ServiceKind    ServiceKind
	TokenIssuedAt  time.Time
	TokenExpiresAt time.Time
	Query          *QuerySpec
	RequestID      string
	State          LifecycleState
	StatusCode     int
	StatusMessage  string
	PackageIDs     []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LifecycleSnapshot is the persisted, lock-free copy of a lifecycle.
//
// Storage model (DynamoDB):
//   - PK: id (one row per snapshot)
//   - GSI1 (request_id-index): request_id
type LifecycleSnapshot struct {
	ID              string         `json:"id"`
	LifecycleID     string         `json:"lifecycle_id"`
	SubjectID       string         `json:"subject_id"`
	ServiceKind     ServiceKind    `json:"service_kind"`
	TokenCreated    time.Time      `json:"token_created"`
	TokenValidUntil time.Time      `json:"token_valid_until"`
	RequestID       string         `json:"request_id,omitempty"`
	State           LifecycleState `json:"state"`
	StatusCode      int            `json:"status_code"`
	StatusMessage   string         `json:"status_message"`
	Query           *QuerySpec     `json:"query,omitempty"`
	PackageIDs      []string       `json:"package_ids,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	SnapshotAt      time.Time      `json:"snapshot_at"`
}

func NewRequestLifecycle(id string, kind ServiceKind, now time.Time) *RequestLifecycle {
	if kind == "" {
		kind = ServiceKindCfdi
	}
	return &RequestLifecycle{
		ID:          id,
		ServiceKind: kind,
		State:       StateNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FromSnapshot rebuilds a lifecycle so a stored request can be driven again.
func FromSnapshot(s LifecycleSnapshot) *RequestLifecycle {
	l := &RequestLifecycle{
		ID:             s.LifecycleID,
		SubjectID:      s.SubjectID,
		ServiceKind:    s.ServiceKind,
		TokenIssuedAt:  s.TokenCreated,
		TokenExpiresAt: s.TokenValidUntil,
		RequestID:      s.RequestID,
		State:          s.State,
		StatusCode:     s.StatusCode,
		StatusMessage:  s.StatusMessage,
		PackageIDs:     append([]string(nil), s.PackageIDs...),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.SnapshotAt,
	}
	if l.ID == "" {
		l.ID = s.ID
	}
	if s.Query != nil {
		q := *s.Query
		l.Query = &q
	}
	if l.State == "" {
		l.State = StateNew
	}
	return l
}

func (l *RequestLifecycle) Lock()   { l.mu.Lock() }
func (l *RequestLifecycle) Unlock() { l.mu.Unlock() }

// Snapshot copies the current state; the returned value shares nothing with the lifecycle.
func (l *RequestLifecycle) Snapshot(now time.Time) LifecycleSnapshot {
	s := LifecycleSnapshot{
		LifecycleID:     l.ID,
		SubjectID:       l.SubjectID,
		ServiceKind:     l.ServiceKind,
		TokenCreated:    l.TokenIssuedAt,
		TokenValidUntil: l.TokenExpiresAt,
		RequestID:       l.RequestID,
		State:           l.State,
		StatusCode:      l.StatusCode,
		StatusMessage:   l.StatusMessage,
		PackageIDs:      append([]string(nil), l.PackageIDs...),
		CreatedAt:       l.CreatedAt,
		SnapshotAt:      now,
	}
	if l.Query != nil {
		q := *l.Query
		s.Query = &q
	}
	return s
}

// EnsureTokenLive fails with token_expired when the recorded token window is over.
func (l *RequestLifecycle) EnsureTokenLive(now time.Time) error {
	if l.TokenExpiresAt.IsZero() || !now.Before(l.TokenExpiresAt) {
		return failures.Newf(failures.KindTokenExpired, "token for lifecycle %s expired at %s; authenticate again", l.ID, l.TokenExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// ApplyAuthentication records a fresh token window.
//
// From new it moves to authenticated; from any other state it only refreshes the
// token window and never touches the request id or the query.
func (l *RequestLifecycle) ApplyAuthentication(subjectID string, token Token, now time.Time) error {
	subjectID = strings.TrimSpace(subjectID)
	if token.IsZero() || !token.IsValidAt(now) {
		return failures.New(failures.KindAuthenticationFailed, "remote service returned an empty or expired token")
	}
	if subjectID == "" {
		return failures.New(failures.KindCredentialInvalid, "credential has no subject identifier")
	}
	if l.SubjectID != "" && !strings.EqualFold(l.SubjectID, subjectID) {
		return failures.Newf(failures.KindCredentialInvalid, "credential subject %s does not own lifecycle of %s", subjectID, l.SubjectID)
	}

	l.SubjectID = subjectID
	l.TokenIssuedAt = token.Created
	l.TokenExpiresAt = token.Expires
	if l.State == StateNew {
		l.State = StateAuthenticated
	}
	l.UpdatedAt = now
	return nil
}

func (l *RequestLifecycle) EnsureCanSubmit(now time.Time) error {
	if l.State != StateAuthenticated {
		return l.illegal("submit a query")
	}
	if l.Query != nil {
		return failures.Newf(failures.KindIllegalTransition, "lifecycle %s already carries a query; a request id is never reused", l.ID)
	}
	return l.EnsureTokenLive(now)
}

// ApplySubmission records the remote answer to a submitted query.
//
// An accepted submission stores the request id and moves to verifying; anything
// else moves to rejected with the remote message kept verbatim.
func (l *RequestLifecycle) ApplySubmission(spec QuerySpec, sub QuerySubmission, now time.Time) error {
	if err := l.EnsureCanSubmit(now); err != nil {
		return err
	}

	q := spec
	l.Query = &q
	l.StatusCode = sub.Status.Code
	l.StatusMessage = sub.Status.Message
	l.UpdatedAt = now

	if !sub.Status.IsAccepted() {
		l.State = StateRejected
		return nil
	}
	if strings.TrimSpace(sub.RequestID) == "" {
		l.State = StateRejected
		l.StatusMessage = fmt.Sprintf("query accepted without a request id: %s", sub.Status.Message)
		return nil
	}

	l.RequestID = sub.RequestID
	l.State = StateVerifying
	return nil
}

func (l *RequestLifecycle) EnsureCanPoll(now time.Time) error {
	if l.State != StateVerifying && l.State != StateQuerySubmitted {
		return l.illegal("poll verification")
	}
	return l.EnsureTokenLive(now)
}

// ApplyVerification interprets the three status layers of a verification result, in order:
// envelope status, request code, then the granular request status.
func (l *RequestLifecycle) ApplyVerification(res VerificationResult, now time.Time) (VerificationOutcome, error) {
	if err := l.EnsureCanPoll(now); err != nil {
		return "", err
	}
	l.State = StateVerifying
	l.UpdatedAt = now

	if !res.Status.IsAccepted() {
		l.StatusCode = res.Status.Code
		l.StatusMessage = res.Status.Message
		return OutcomeTransient, nil
	}

	if !res.CodeRequest.IsAccepted() {
		l.StatusCode = res.CodeRequest.Code
		l.StatusMessage = res.CodeRequest.Message
		l.State = StateRejected
		return OutcomeRejected, nil
	}

	l.StatusCode = res.CodeRequest.Code
	l.StatusMessage = res.CodeRequest.Message

	switch res.StatusRequest {
	case RequestStatusExpired:
		l.State = StateExpired
		return OutcomeExpired, nil
	case RequestStatusFailure:
		l.State = StateFailed
		return OutcomeFailed, nil
	case RequestStatusRejected:
		l.State = StateRejected
		return OutcomeRejected, nil
	case RequestStatusAccepted, RequestStatusInProgress:
		return OutcomePending, nil
	case RequestStatusFinished:
		ids := lo.Uniq(lo.Compact(lo.Map(res.PackageIDs, func(id string, _ int) string {
			return strings.TrimSpace(id)
		})))
		if len(ids) == 0 {
			l.State = StateFailed
			l.StatusMessage = fmt.Sprintf("request %s finished without packages: %s", l.RequestID, res.CodeRequest.Message)
			return OutcomeFailed, nil
		}
		l.PackageIDs = ids
		l.State = StateFinished
		return OutcomeFinished, nil
	}

	l.StatusMessage = fmt.Sprintf("unknown request status %d: %s", res.StatusRequest, res.CodeRequest.Message)
	return OutcomeTransient, nil
}

func (l *RequestLifecycle) EnsureCanRetrieve(now time.Time) error {
	if l.State != StateFinished {
		return l.illegal("retrieve packages")
	}
	return l.EnsureTokenLive(now)
}

func (l *RequestLifecycle) illegal(action string) error {
	return failures.Newf(failures.KindIllegalTransition, "cannot %s while lifecycle %s is %s", action, l.ID, l.State)
}
