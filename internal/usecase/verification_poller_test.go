package usecase

import (
	"context"
	"testing"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pollStep struct {
	outcome entities.VerificationOutcome
	err     error
}

// scriptedLifecycle answers PollVerification from a fixed script, repeating the last step.
type scriptedLifecycle struct {
	steps []pollStep
	calls int
}

func (s *scriptedLifecycle) Authenticate(context.Context, *entities.RequestLifecycle, interfaces.ISigner) (Session, error) {
	return Session{}, nil
}

func (s *scriptedLifecycle) SubmitQuery(context.Context, *entities.RequestLifecycle, Session, entities.QuerySpec) error {
	return nil
}

func (s *scriptedLifecycle) PollVerification(context.Context, *entities.RequestLifecycle, Session) (entities.VerificationOutcome, error) {
	i := min(s.calls, len(s.steps)-1)
	s.calls++
	return s.steps[i].outcome, s.steps[i].err
}

func fastPolicy(maxElapsed time.Duration) PollPolicy {
	return PollPolicy{InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond, MaxElapsed: maxElapsed}
}

func TestVerificationPoller_WaitFinished(t *testing.T) {
	transport := failures.New(failures.KindRemoteTransport, "connection reset")
	expired := failures.New(failures.KindRequestExpired, "request expired")

	tests := []struct {
		name        string
		steps       []pollStep
		wantOutcome entities.VerificationOutcome
		wantKind    failures.Kind
		wantCalls   int
	}{
		{
			name: "pending then finished",
			steps: []pollStep{
				{outcome: entities.OutcomePending},
				{outcome: entities.OutcomePending},
				{outcome: entities.OutcomeFinished},
			},
			wantOutcome: entities.OutcomeFinished,
			wantCalls:   3,
		},
		{
			name: "transport errors are retried",
			steps: []pollStep{
				{outcome: entities.OutcomeTransient, err: transport},
				{err: transport},
				{outcome: entities.OutcomeFinished},
			},
			wantOutcome: entities.OutcomeFinished,
			wantCalls:   3,
		},
		{
			name: "terminal outcome stops at once",
			steps: []pollStep{
				{outcome: entities.OutcomePending},
				{outcome: entities.OutcomeExpired, err: expired},
				{outcome: entities.OutcomeFinished},
			},
			wantOutcome: entities.OutcomeExpired,
			wantKind:    failures.KindRequestExpired,
			wantCalls:   2,
		},
		{
			name:      "illegal transition is not retried",
			steps:     []pollStep{{err: failures.New(failures.KindIllegalTransition, "cannot poll")}},
			wantKind:  failures.KindIllegalTransition,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &scriptedLifecycle{steps: tt.steps}
			p := NewVerificationPoller(script, fastPolicy(time.Second), logger.NewNop())
			lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)

			outcome, err := p.WaitFinished(context.Background(), lc, Session{})
			if tt.wantKind == "" {
				require.NoError(t, err)
			} else {
				assert.True(t, failures.Is(err, tt.wantKind), "got %v", err)
			}
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantCalls, script.calls)
		})
	}
}

func TestVerificationPoller_GivesUpWhilePending(t *testing.T) {
	script := &scriptedLifecycle{steps: []pollStep{{outcome: entities.OutcomePending}}}
	p := NewVerificationPoller(script, fastPolicy(20*time.Millisecond), logger.NewNop())
	lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)

	outcome, err := p.WaitFinished(context.Background(), lc, Session{})
	require.NoError(t, err)
	assert.Equal(t, entities.OutcomePending, outcome)
	assert.GreaterOrEqual(t, script.calls, 2)
}

func TestVerificationPoller_Cancelled(t *testing.T) {
	script := &scriptedLifecycle{steps: []pollStep{{outcome: entities.OutcomePending}}}
	p := NewVerificationPoller(script, PollPolicy{InitialInterval: time.Hour, MaxInterval: time.Hour}, logger.NewNop())
	lc := entities.NewRequestLifecycle("lc-1", entities.ServiceKindCfdi, fixedNow)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.WaitFinished(ctx, lc, Session{})
	assert.True(t, failures.Is(err, failures.KindRemoteTransport))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, script.calls)
}
