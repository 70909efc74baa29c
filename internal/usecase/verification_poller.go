package usecase

import (
	"context"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
)

// PollPolicy is the exponential schedule between verification polls.
type PollPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsed bounds the whole wait; zero waits until ctx is done.
	MaxElapsed time.Duration
}

func DefaultPollPolicy() PollPolicy {
	return PollPolicy{InitialInterval: 5 * time.Second, MaxInterval: time.Minute, MaxElapsed: 10 * time.Minute}
}

var errStillPending = errors.New("request still pending")

// VerificationPoller polls a lifecycle until it leaves verifying, backing off
// between polls. Transport errors are retried; terminal outcomes stop at once.
type VerificationPoller struct {
	lifecycle ILifecycleUseCase
	policy    PollPolicy
	log       *logger.Logger
}

func NewVerificationPoller(lifecycle ILifecycleUseCase, policy PollPolicy, log *logger.Logger) *VerificationPoller {
	return &VerificationPoller{lifecycle: lifecycle, policy: policy, log: logger.OrDefault(log)}
}

// WaitFinished returns OutcomePending with a nil error when the policy gives up
// while the request is still in progress; the lifecycle stays pollable.
func (p *VerificationPoller) WaitFinished(ctx context.Context, lc *entities.RequestLifecycle, session Session) (entities.VerificationOutcome, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.policy.InitialInterval
	b.MaxInterval = p.policy.MaxInterval
	b.MaxElapsedTime = p.policy.MaxElapsed

	var last entities.VerificationOutcome
	attempt := 0
	op := func() error {
		attempt++
		outcome, err := p.lifecycle.PollVerification(ctx, lc, session)
		if outcome != "" {
			last = outcome
		}
		if err != nil {
			if failures.Is(err, failures.KindRemoteTransport) && ctx.Err() == nil {
				return err
			}
			return backoff.Permanent(err)
		}
		if outcome == entities.OutcomePending {
			return errStillPending
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		p.log.Debugf("[lifecycle][poller] poll again lifecycle_id=%s attempt=%d wait=%s reason=%v", lc.ID, attempt, wait, err)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errStillPending):
		p.log.Infof("[lifecycle][poller] gave up waiting lifecycle_id=%s attempts=%d", lc.ID, attempt)
		return entities.OutcomePending, nil
	case ctx.Err() != nil && failures.KindOf(err) == "":
		return last, failures.Wrap(ctx.Err(), failures.KindRemoteTransport, "verification wait cancelled")
	}
	return last, err
}
