package usecase

import (
	"context"
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"
)

// ILifecycleUseCase drives the transitions of a RequestLifecycle that need the
// remote service. Every method locks the lifecycle for the whole transition.
type ILifecycleUseCase interface {
	Authenticate(ctx context.Context, lc *entities.RequestLifecycle, signer interfaces.ISigner) (Session, error)
	SubmitQuery(ctx context.Context, lc *entities.RequestLifecycle, session Session, spec entities.QuerySpec) error
	PollVerification(ctx context.Context, lc *entities.RequestLifecycle, session Session) (entities.VerificationOutcome, error)
}

type LifecycleUseCase struct {
	gateway interfaces.IRemoteGateway
	metrics interfaces.IMetricsRecorder
	log     *logger.Logger
	now     func() time.Time
}

var _ ILifecycleUseCase = (*LifecycleUseCase)(nil)

func NewLifecycleUseCase(gateway interfaces.IRemoteGateway, metrics interfaces.IMetricsRecorder, log *logger.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{
		gateway: gateway,
		metrics: metricsOrNop(metrics),
		log:     logger.OrDefault(log),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *LifecycleUseCase) Authenticate(ctx context.Context, lc *entities.RequestLifecycle, signer interfaces.ISigner) (Session, error) {
	lc.Lock()
	defer lc.Unlock()

	if signer == nil || !signer.IsValid(ctx) {
		u.log.Warnf("[lifecycle][usecase] authenticate rejected: invalid credential lifecycle_id=%s", lc.ID)
		return Session{}, failures.New(failures.KindCredentialInvalid, "certificate and key are not a valid FIEL")
	}
	subjectID := strings.TrimSpace(signer.SubjectID())
	if lc.SubjectID != "" && !strings.EqualFold(lc.SubjectID, subjectID) {
		return Session{}, failures.Newf(failures.KindCredentialInvalid, "credential subject %s does not own lifecycle %s", subjectID, lc.ID)
	}

	client, err := u.gateway.Connect(signer, lc.ServiceKind)
	if err != nil {
		u.log.Errorf("[lifecycle][usecase] connect failed lifecycle_id=%s kind=%s err=%v", lc.ID, lc.ServiceKind, err)
		return Session{}, asFailure(err, failures.KindRemoteTransport, "connect to remote service")
	}

	u.log.Infof("[lifecycle][usecase] authenticate start lifecycle_id=%s subject_id=%s kind=%s", lc.ID, subjectID, lc.ServiceKind)
	start := time.Now()
	token, err := client.Authenticate(ctx)
	u.metrics.ObserveRemoteCall("authenticate", time.Since(start), err)
	if cerr := cancelled(ctx, "authentication"); cerr != nil {
		return Session{}, cerr
	}
	if err != nil {
		u.log.Warnf("[lifecycle][usecase] authenticate failed lifecycle_id=%s err=%v", lc.ID, err)
		return Session{}, asFailure(err, failures.KindAuthenticationFailed, "remote service rejected the credential")
	}

	now := u.now()
	before := lc.State
	if err := lc.ApplyAuthentication(subjectID, token, now); err != nil {
		return Session{}, err
	}
	u.observe(before, lc.State)
	u.log.Infof("[lifecycle][usecase] authenticated lifecycle_id=%s state=%s token_expires=%s", lc.ID, lc.State, token.Expires.Format(time.RFC3339))
	return NewSession(client, subjectID, lc.ServiceKind, token), nil
}

// SubmitQuery sends spec once. A business rejection moves the lifecycle to
// rejected and is also returned as a remote_rejected failure.
func (u *LifecycleUseCase) SubmitQuery(ctx context.Context, lc *entities.RequestLifecycle, session Session, spec entities.QuerySpec) error {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return err
	}

	lc.Lock()
	defer lc.Unlock()

	now := u.now()
	if err := lc.EnsureCanSubmit(now); err != nil {
		return withReauthHint(err)
	}
	if err := session.check(lc, now); err != nil {
		return err
	}

	query := spec.RemoteQuery()
	u.log.Infof("[lifecycle][usecase] submit start lifecycle_id=%s from=%s to=%s download_type=%s request_type=%s",
		lc.ID, query.Start.Format(time.DateTime), query.End.Format(time.DateTime), query.DownloadType, query.RequestType)

	start := time.Now()
	sub, err := session.client.SubmitQuery(ctx, session.token, query)
	u.metrics.ObserveRemoteCall("submit_query", time.Since(start), err)
	if cerr := cancelled(ctx, "query submission"); cerr != nil {
		return cerr
	}
	if err != nil {
		u.log.Warnf("[lifecycle][usecase] submit failed lifecycle_id=%s err=%v", lc.ID, err)
		return asFailure(err, failures.KindRemoteTransport, "submit query")
	}

	before := lc.State
	if err := lc.ApplySubmission(spec, sub, u.now()); err != nil {
		return err
	}
	u.observe(before, lc.State)

	if lc.State == entities.StateRejected {
		u.log.Warnf("[lifecycle][usecase] query rejected lifecycle_id=%s code=%d message=%q", lc.ID, lc.StatusCode, lc.StatusMessage)
		return failures.Remote(failures.KindRemoteRejected, "query rejected by remote service", lc.StatusCode, lc.StatusMessage)
	}
	u.log.Infof("[lifecycle][usecase] query accepted lifecycle_id=%s request_id=%s", lc.ID, lc.RequestID)
	return nil
}

// PollVerification asks the remote service once about the request.
//
// Pending and finished outcomes return a nil error. A transient outcome returns a
// recoverable remote_transport_error and leaves the lifecycle pollable. Terminal
// outcomes return the matching terminal failure after the state has moved.
func (u *LifecycleUseCase) PollVerification(ctx context.Context, lc *entities.RequestLifecycle, session Session) (entities.VerificationOutcome, error) {
	lc.Lock()
	defer lc.Unlock()

	now := u.now()
	if err := lc.EnsureCanPoll(now); err != nil {
		return "", withReauthHint(err)
	}
	if err := session.check(lc, now); err != nil {
		return "", err
	}

	start := time.Now()
	res, err := session.client.Verify(ctx, session.token, lc.RequestID)
	u.metrics.ObserveRemoteCall("verify", time.Since(start), err)
	if cerr := cancelled(ctx, "verification"); cerr != nil {
		return "", cerr
	}
	if err != nil {
		u.log.Warnf("[lifecycle][usecase] verify failed lifecycle_id=%s request_id=%s err=%v", lc.ID, lc.RequestID, err)
		return "", asFailure(err, failures.KindRemoteTransport, "verify request")
	}

	before := lc.State
	outcome, err := lc.ApplyVerification(res, u.now())
	if err != nil {
		return "", err
	}
	u.observe(before, lc.State)
	u.log.Infof("[lifecycle][usecase] verify lifecycle_id=%s request_id=%s outcome=%s status=%s cfdis=%d packages=%d",
		lc.ID, lc.RequestID, outcome, res.StatusRequest, res.NumberCfdis, len(lc.PackageIDs))

	switch outcome {
	case entities.OutcomeTransient:
		return outcome, failures.Remote(failures.KindRemoteTransport, "verification not accepted; poll again", lc.StatusCode, lc.StatusMessage)
	case entities.OutcomeRejected:
		return outcome, failures.Remote(failures.KindRemoteRejected, "request rejected by remote service", lc.StatusCode, lc.StatusMessage)
	case entities.OutcomeExpired:
		return outcome, failures.Remote(failures.KindRequestExpired, "request expired", lc.StatusCode, lc.StatusMessage)
	case entities.OutcomeFailed:
		return outcome, failures.Remote(failures.KindRequestFailed, lc.StatusMessage, lc.StatusCode, lc.StatusMessage)
	}
	return outcome, nil
}

func (u *LifecycleUseCase) observe(before, after entities.LifecycleState) {
	if before != after {
		u.metrics.ObserveTransition(string(after))
	}
}

// cancelled reports a cancelled or expired ctx; the partial result of the call is discarded.
func cancelled(ctx context.Context, what string) error {
	if err := ctx.Err(); err != nil {
		return failures.Wrap(err, failures.KindRemoteTransport, what+" cancelled")
	}
	return nil
}

// asFailure keeps err when it already carries a kind, otherwise classifies it as kind.
func asFailure(err error, kind failures.Kind, message string) error {
	if failures.KindOf(err) != "" {
		return err
	}
	return failures.Wrap(err, kind, message)
}

func withReauthHint(err error) error {
	if failures.Is(err, failures.KindTokenExpired) {
		return failures.WithHint(err, "authenticate again before continuing")
	}
	return err
}
