package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	mock_interfaces "descarga_masiva/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const subject = "AAA010101AAA"

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type lifecycleFixture struct {
	uc     *LifecycleUseCase
	gw     *mock_interfaces.MockIRemoteGateway
	client *mock_interfaces.MockIRemoteServiceClient
	signer *mock_interfaces.MockISigner
}

func newLifecycleFixture(t *testing.T) lifecycleFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := lifecycleFixture{
		gw:     mock_interfaces.NewMockIRemoteGateway(ctrl),
		client: mock_interfaces.NewMockIRemoteServiceClient(ctrl),
		signer: mock_interfaces.NewMockISigner(ctrl),
	}
	f.uc = NewLifecycleUseCase(f.gw, nil, logger.NewNop())
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func token() entities.Token {
	return entities.Token{Value: "tok", Created: fixedNow, Expires: fixedNow.Add(5 * time.Minute)}
}

func ok(msg string) entities.RemoteStatus {
	return entities.RemoteStatus{Code: entities.RemoteCodeAccepted, Message: msg}
}

func january() entities.QuerySpec {
	return entities.QuerySpec{
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

// authenticated returns a lifecycle in state authenticated plus its session.
func (f lifecycleFixture) authenticated(t *testing.T) (*entities.RequestLifecycle, Session) {
	t.Helper()
	lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)
	f.signer.EXPECT().IsValid(gomock.Any()).Return(true)
	f.signer.EXPECT().SubjectID().Return(subject)
	f.gw.EXPECT().Connect(f.signer, entities.ServiceKindCfdi).Return(f.client, nil)
	f.client.EXPECT().Authenticate(gomock.Any()).Return(token(), nil)

	session, err := f.uc.Authenticate(context.Background(), lc, f.signer)
	require.NoError(t, err)
	require.Equal(t, entities.StateAuthenticated, lc.State)
	return lc, session
}

func (f lifecycleFixture) verifying(t *testing.T) (*entities.RequestLifecycle, Session) {
	t.Helper()
	lc, session := f.authenticated(t)
	f.client.EXPECT().SubmitQuery(gomock.Any(), token(), gomock.Any()).
		Return(entities.QuerySubmission{Status: ok("Solicitud Aceptada"), RequestID: "req-1"}, nil)
	require.NoError(t, f.uc.SubmitQuery(context.Background(), lc, session, january()))
	require.Equal(t, entities.StateVerifying, lc.State)
	return lc, session
}

func TestLifecycleUseCase_Authenticate(t *testing.T) {
	t.Run("invalid credential", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)
		f.signer.EXPECT().IsValid(gomock.Any()).Return(false)

		_, err := f.uc.Authenticate(context.Background(), lc, f.signer)
		assert.True(t, failures.Is(err, failures.KindCredentialInvalid))
		assert.Equal(t, entities.StateNew, lc.State)
	})

	t.Run("success", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.authenticated(t)
		assert.Equal(t, subject, lc.SubjectID)
		assert.Equal(t, subject, session.SubjectID())
		assert.Equal(t, fixedNow.Add(5*time.Minute), session.TokenExpiresAt())
	})

	t.Run("remote rejects identity", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindRetenciones, fixedNow)
		f.signer.EXPECT().IsValid(gomock.Any()).Return(true)
		f.signer.EXPECT().SubjectID().Return(subject)
		f.gw.EXPECT().Connect(f.signer, entities.ServiceKindRetenciones).Return(f.client, nil)
		f.client.EXPECT().Authenticate(gomock.Any()).Return(entities.Token{}, errors.New("soap fault: invalid signature"))

		_, err := f.uc.Authenticate(context.Background(), lc, f.signer)
		assert.True(t, failures.Is(err, failures.KindAuthenticationFailed))
		assert.Equal(t, entities.StateNew, lc.State)
		assert.Empty(t, lc.SubjectID)
	})

	t.Run("cancelled call is discarded", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)
		ctx, cancel := context.WithCancel(context.Background())
		f.signer.EXPECT().IsValid(gomock.Any()).Return(true)
		f.signer.EXPECT().SubjectID().Return(subject)
		f.gw.EXPECT().Connect(f.signer, entities.ServiceKindCfdi).Return(f.client, nil)
		f.client.EXPECT().Authenticate(gomock.Any()).DoAndReturn(func(context.Context) (entities.Token, error) {
			cancel()
			return token(), nil
		})

		_, err := f.uc.Authenticate(ctx, lc, f.signer)
		assert.True(t, failures.Is(err, failures.KindRemoteTransport))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, entities.StateNew, lc.State)
	})

	t.Run("re-authentication keeps request", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, _ := f.verifying(t)
		f.signer.EXPECT().IsValid(gomock.Any()).Return(true)
		f.signer.EXPECT().SubjectID().Return(subject)
		f.gw.EXPECT().Connect(f.signer, entities.ServiceKindCfdi).Return(f.client, nil)
		f.client.EXPECT().Authenticate(gomock.Any()).Return(token(), nil)

		_, err := f.uc.Authenticate(context.Background(), lc, f.signer)
		require.NoError(t, err)
		assert.Equal(t, entities.StateVerifying, lc.State)
		assert.Equal(t, "req-1", lc.RequestID)
	})

	t.Run("foreign subject", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, _ := f.authenticated(t)
		f.signer.EXPECT().IsValid(gomock.Any()).Return(true)
		f.signer.EXPECT().SubjectID().Return("ZZZ010101ZZZ")

		_, err := f.uc.Authenticate(context.Background(), lc, f.signer)
		assert.True(t, failures.Is(err, failures.KindCredentialInvalid))
		assert.Equal(t, subject, lc.SubjectID)
	})
}

func TestLifecycleUseCase_SubmitQuery(t *testing.T) {
	t.Run("requires authenticated state", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)

		err := f.uc.SubmitQuery(context.Background(), lc, Session{}, january())
		assert.True(t, failures.Is(err, failures.KindIllegalTransition))
		assert.Equal(t, entities.StateNew, lc.State)
		assert.Nil(t, lc.Query)
	})

	t.Run("invalid query window", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.authenticated(t)
		spec := january()
		spec.PeriodStart, spec.PeriodEnd = spec.PeriodEnd, spec.PeriodStart

		err := f.uc.SubmitQuery(context.Background(), lc, session, spec)
		assert.True(t, failures.Is(err, failures.KindValidation))
		assert.Equal(t, entities.StateAuthenticated, lc.State)
	})

	t.Run("covers whole days", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.authenticated(t)
		f.client.EXPECT().SubmitQuery(gomock.Any(), token(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Token, q entities.RemoteQuery) (entities.QuerySubmission, error) {
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), q.Start)
				assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), q.End)
				assert.Equal(t, entities.DownloadTypeReceived, q.DownloadType)
				return entities.QuerySubmission{Status: ok("Solicitud Aceptada"), RequestID: "req-1"}, nil
			})

		require.NoError(t, f.uc.SubmitQuery(context.Background(), lc, session, january()))
		assert.Equal(t, entities.StateVerifying, lc.State)
		assert.Equal(t, "req-1", lc.RequestID)
	})

	t.Run("rejected", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.authenticated(t)
		f.client.EXPECT().SubmitQuery(gomock.Any(), token(), gomock.Any()).
			Return(entities.QuerySubmission{Status: entities.RemoteStatus{Code: 5002, Message: "Se agotó las solicitudes de por vida"}}, nil)

		err := f.uc.SubmitQuery(context.Background(), lc, session, january())
		fail, isFailure := failures.As(err)
		require.True(t, isFailure)
		assert.Equal(t, failures.KindRemoteRejected, fail.Kind)
		assert.Equal(t, 5002, fail.RemoteCode)
		assert.Equal(t, "Se agotó las solicitudes de por vida", fail.RemoteMessage)
		assert.Equal(t, entities.StateRejected, lc.State)
		assert.Empty(t, lc.RequestID)
	})

	t.Run("transport error changes nothing", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.authenticated(t)
		f.client.EXPECT().SubmitQuery(gomock.Any(), token(), gomock.Any()).
			Return(entities.QuerySubmission{}, failures.New(failures.KindRemoteTransport, "timeout"))

		err := f.uc.SubmitQuery(context.Background(), lc, session, january())
		assert.True(t, failures.Is(err, failures.KindRemoteTransport))
		assert.Equal(t, entities.StateAuthenticated, lc.State)
		assert.Nil(t, lc.Query)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.authenticated(t)
		f.uc.now = func() time.Time { return fixedNow.Add(time.Hour) }

		err := f.uc.SubmitQuery(context.Background(), lc, session, january())
		assert.True(t, failures.Is(err, failures.KindTokenExpired))
		assert.NotEmpty(t, failures.Hints(err))
		assert.Equal(t, entities.StateAuthenticated, lc.State)
	})
}

func TestLifecycleUseCase_PollVerification(t *testing.T) {
	t.Run("finished with packages", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.verifying(t)
		f.client.EXPECT().Verify(gomock.Any(), token(), "req-1").Return(entities.VerificationResult{
			Status: ok("Solicitud Aceptada"), CodeRequest: ok("Solicitud Aceptada"),
			StatusRequest: entities.RequestStatusFinished, NumberCfdis: 12, PackageIDs: []string{"P1", "P2"},
		}, nil)

		outcome, err := f.uc.PollVerification(context.Background(), lc, session)
		require.NoError(t, err)
		assert.Equal(t, entities.OutcomeFinished, outcome)
		assert.Equal(t, entities.StateFinished, lc.State)
		assert.Equal(t, []string{"P1", "P2"}, lc.PackageIDs)
	})

	t.Run("request code rejected then poll is illegal", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.verifying(t)
		f.client.EXPECT().Verify(gomock.Any(), token(), "req-1").Return(entities.VerificationResult{
			Status: ok("ok"), CodeRequest: entities.RemoteStatus{Code: 5004, Message: "No se encontró la información"},
		}, nil)

		outcome, err := f.uc.PollVerification(context.Background(), lc, session)
		assert.Equal(t, entities.OutcomeRejected, outcome)
		assert.True(t, failures.Is(err, failures.KindRemoteRejected))
		assert.Equal(t, entities.StateRejected, lc.State)
		assert.Empty(t, lc.PackageIDs)

		_, err = f.uc.PollVerification(context.Background(), lc, session)
		assert.True(t, failures.Is(err, failures.KindIllegalTransition))
		assert.Equal(t, entities.StateRejected, lc.State)
	})

	t.Run("envelope not accepted is recoverable", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.verifying(t)
		f.client.EXPECT().Verify(gomock.Any(), token(), "req-1").Return(entities.VerificationResult{
			Status: entities.RemoteStatus{Code: 404, Message: "Error no controlado"},
		}, nil)

		outcome, err := f.uc.PollVerification(context.Background(), lc, session)
		assert.Equal(t, entities.OutcomeTransient, outcome)
		assert.True(t, failures.Is(err, failures.KindRemoteTransport))
		assert.True(t, failures.KindOf(err).Recoverable())
		assert.Equal(t, entities.StateVerifying, lc.State)
		assert.Equal(t, "Error no controlado", lc.StatusMessage)
	})

	t.Run("transport error leaves lifecycle pollable", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, session := f.verifying(t)
		f.client.EXPECT().Verify(gomock.Any(), token(), "req-1").Return(entities.VerificationResult{}, errors.New("connection reset"))

		_, err := f.uc.PollVerification(context.Background(), lc, session)
		assert.True(t, failures.Is(err, failures.KindRemoteTransport))
		assert.Equal(t, entities.StateVerifying, lc.State)
	})

	t.Run("expired and failed are terminal", func(t *testing.T) {
		for status, kind := range map[entities.RequestStatus]failures.Kind{
			entities.RequestStatusExpired: failures.KindRequestExpired,
			entities.RequestStatusFailure: failures.KindRequestFailed,
		} {
			f := newLifecycleFixture(t)
			lc, session := f.verifying(t)
			f.client.EXPECT().Verify(gomock.Any(), token(), "req-1").Return(entities.VerificationResult{
				Status: ok("ok"), CodeRequest: ok("ok"), StatusRequest: status,
			}, nil)

			_, err := f.uc.PollVerification(context.Background(), lc, session)
			assert.True(t, failures.Is(err, kind), status.String())
			assert.True(t, lc.State.Terminal())
		}
	})

	t.Run("session of another lifecycle", func(t *testing.T) {
		f := newLifecycleFixture(t)
		lc, _ := f.verifying(t)
		other := NewSession(f.client, "ZZZ010101ZZZ", entities.ServiceKindCfdi, token())

		_, err := f.uc.PollVerification(context.Background(), lc, other)
		assert.True(t, failures.Is(err, failures.KindCredentialInvalid))
	})
}
