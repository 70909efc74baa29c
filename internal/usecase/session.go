package usecase

import (
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/usecase/interfaces"
)

// Session is the authenticated handle produced by Authenticate. It is an
// immutable value: a fresh authentication yields a new Session.
type Session struct {
	client    interfaces.IRemoteServiceClient
	subjectID string
	kind      entities.ServiceKind
	token     entities.Token
}

func NewSession(client interfaces.IRemoteServiceClient, subjectID string, kind entities.ServiceKind, token entities.Token) Session {
	return Session{client: client, subjectID: subjectID, kind: kind, token: token}
}

func (s Session) SubjectID() string                       { return s.subjectID }
func (s Session) Kind() entities.ServiceKind              { return s.kind }
func (s Session) TokenExpiresAt() time.Time               { return s.token.Expires }
func (s Session) Client() interfaces.IRemoteServiceClient { return s.client }

// check verifies the session belongs to lc and is still usable at now.
func (s Session) check(lc *entities.RequestLifecycle, now time.Time) error {
	if s.client == nil || s.token.IsZero() {
		return failures.New(failures.KindTokenExpired, "no authenticated session; authenticate first")
	}
	if !strings.EqualFold(s.subjectID, lc.SubjectID) || s.kind != lc.ServiceKind {
		return failures.Newf(failures.KindCredentialInvalid, "session of %s does not belong to lifecycle %s", s.subjectID, lc.ID)
	}
	if !s.token.IsValidAt(now) {
		return failures.WithHint(
			failures.Newf(failures.KindTokenExpired, "session token expired at %s", s.token.Expires.Format(time.RFC3339)),
			"authenticate again before continuing",
		)
	}
	return nil
}
