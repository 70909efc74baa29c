package usecase

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"descarga_masiva/internal/domain/credentials"
	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SubmitInput is one intake: the FIEL, the endpoint family and, optionally, a query.
// Without a query the credential is only authenticated and the lifecycle recorded.
type SubmitInput struct {
	Secret      entities.CredentialSecret
	ServiceKind entities.ServiceKind
	Query       *entities.QuerySpec
}

// DownloadReport is the result of a retrieval run over a stored lifecycle.
type DownloadReport struct {
	Snapshot entities.LifecycleSnapshot `json:"snapshot"`
	Result   RetrievalResult            `json:"result"`
}

// IDownloadRequestUseCase is the entry point used by the HTTP layer. Each method
// rebuilds the lifecycle from its latest snapshot, drives one step and saves a
// new snapshot.
type IDownloadRequestUseCase interface {
	Submit(ctx context.Context, in SubmitInput) (entities.LifecycleSnapshot, error)
	Verify(ctx context.Context, lifecycleID string, wait bool) (entities.LifecycleSnapshot, error)
	Download(ctx context.Context, lifecycleID string, opts RetrieveOptions) (DownloadReport, error)
	ReadPackage(ctx context.Context, lifecycleID, packageID string) ([]entities.InvoiceEntry, error)
	GetByID(ctx context.Context, lifecycleID string) (entities.LifecycleSnapshot, error)
	GetSnapshot(ctx context.Context, snapshotID string) (entities.LifecycleSnapshot, error)
	GetByRequestID(ctx context.Context, requestID string) (entities.LifecycleSnapshot, error)
	List(ctx context.Context) ([]entities.LifecycleSnapshot, error)
}

type DownloadRequestDeps struct {
	Staging   *credentials.StagingArea
	Signers   interfaces.ISignerFactory
	Lifecycle ILifecycleUseCase
	Poller    *VerificationPoller
	Retriever IPackageRetrieverUseCase
	Records   interfaces.IRecordStore
	Vault     interfaces.ISecretVault
	Log       *logger.Logger
}

type DownloadRequestUseCase struct {
	staging   *credentials.StagingArea
	signers   interfaces.ISignerFactory
	lifecycle ILifecycleUseCase
	poller    *VerificationPoller
	retriever IPackageRetrieverUseCase
	records   interfaces.IRecordStore
	vault     interfaces.ISecretVault
	log       *logger.Logger
	now       func() time.Time
	newID     func() string

	// locks serializes drivers working on the same lifecycle id.
	locks lifecycleLocks
}

var _ IDownloadRequestUseCase = (*DownloadRequestUseCase)(nil)

func NewDownloadRequestUseCase(d DownloadRequestDeps) *DownloadRequestUseCase {
	return &DownloadRequestUseCase{
		staging:   d.Staging,
		signers:   d.Signers,
		lifecycle: d.Lifecycle,
		poller:    d.Poller,
		retriever: d.Retriever,
		records:   d.Records,
		vault:     d.Vault,
		log:       logger.OrDefault(d.Log),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (u *DownloadRequestUseCase) Submit(ctx context.Context, in SubmitInput) (entities.LifecycleSnapshot, error) {
	if !in.Secret.IsComplete() {
		return entities.LifecycleSnapshot{}, failures.New(failures.KindValidation, "certificate, private key and passphrase are required")
	}
	kind, err := entities.ParseServiceKind(string(in.ServiceKind))
	if err != nil {
		return entities.LifecycleSnapshot{}, err
	}
	var spec *entities.QuerySpec
	if in.Query != nil {
		q := in.Query.WithDefaults()
		if err := q.Validate(); err != nil {
			return entities.LifecycleSnapshot{}, err
		}
		spec = &q
	}

	lc := entities.NewRequestLifecycle(u.newID(), kind, u.now())
	unlock := u.lock(lc.ID)
	defer unlock()

	u.log.Infof("[download][usecase] submit start lifecycle_id=%s kind=%s with_query=%t", lc.ID, kind, spec != nil)

	var stepErr error
	authenticated := false
	err = u.staging.Run(ctx, in.Secret, func(ctx context.Context, cred *credentials.StagedCredential) error {
		session, err := u.authenticate(ctx, lc, cred)
		if err != nil {
			return err
		}
		authenticated = true

		if err := u.vault.Put(ctx, lc.ID, in.Secret); err != nil {
			u.log.Errorf("[download][usecase] sealing credentials failed lifecycle_id=%s err=%v", lc.ID, err)
			return asFailure(err, failures.KindPersistence, "store credentials")
		}

		if spec == nil {
			return nil
		}
		if stepErr = u.lifecycle.SubmitQuery(ctx, lc, session, *spec); stepErr != nil {
			return nil
		}
		if _, perr := u.lifecycle.PollVerification(ctx, lc, session); perr != nil {
			stepErr = perr
			if failures.Is(perr, failures.KindRemoteTransport) {
				u.log.Warnf("[download][usecase] first verification deferred lifecycle_id=%s err=%v", lc.ID, perr)
				stepErr = nil
			}
		}
		return nil
	})
	if !authenticated {
		return entities.LifecycleSnapshot{}, err
	}

	snap, saveErr := u.save(ctx, lc)
	return snap, firstErr(err, stepErr, saveErr)
}

// Verify polls the request once, or until it leaves verifying when wait is set.
func (u *DownloadRequestUseCase) Verify(ctx context.Context, lifecycleID string, wait bool) (entities.LifecycleSnapshot, error) {
	unlock := u.lock(lifecycleID)
	defer unlock()

	lc, err := u.load(ctx, lifecycleID)
	if err != nil {
		return entities.LifecycleSnapshot{}, err
	}
	if lc.State != entities.StateVerifying && lc.State != entities.StateQuerySubmitted {
		return lc.Snapshot(u.now()), failures.Newf(failures.KindIllegalTransition, "cannot poll verification while lifecycle %s is %s", lc.ID, lc.State)
	}

	var stepErr error
	err = u.replay(ctx, lc, func(ctx context.Context, session Session) {
		if wait && u.poller != nil {
			_, stepErr = u.poller.WaitFinished(ctx, lc, session)
			return
		}
		_, stepErr = u.lifecycle.PollVerification(ctx, lc, session)
	})
	snap, saveErr := u.save(ctx, lc)
	return snap, firstErr(err, stepErr, saveErr)
}

func (u *DownloadRequestUseCase) Download(ctx context.Context, lifecycleID string, opts RetrieveOptions) (DownloadReport, error) {
	unlock := u.lock(lifecycleID)
	defer unlock()

	lc, err := u.load(ctx, lifecycleID)
	if err != nil {
		return DownloadReport{}, err
	}
	if lc.State != entities.StateFinished {
		return DownloadReport{Snapshot: lc.Snapshot(u.now())}, failures.Newf(failures.KindIllegalTransition, "cannot retrieve packages while lifecycle %s is %s", lc.ID, lc.State)
	}

	var report DownloadReport
	var stepErr error
	err = u.replay(ctx, lc, func(ctx context.Context, session Session) {
		report.Result, stepErr = u.retriever.Retrieve(ctx, lc, session, opts)
	})
	snap, saveErr := u.save(ctx, lc)
	report.Snapshot = snap
	return report, firstErr(err, stepErr, saveErr)
}

func (u *DownloadRequestUseCase) ReadPackage(ctx context.Context, lifecycleID, packageID string) ([]entities.InvoiceEntry, error) {
	snap, err := u.GetByID(ctx, lifecycleID)
	if err != nil {
		return nil, err
	}
	if !lo.Contains(snap.PackageIDs, packageID) {
		return nil, failures.Newf(failures.KindNotFound, "package %s is not part of lifecycle %s", packageID, lifecycleID)
	}
	return u.retriever.Read(ctx, snap.RequestID, packageID)
}

func (u *DownloadRequestUseCase) GetByID(ctx context.Context, lifecycleID string) (entities.LifecycleSnapshot, error) {
	lifecycleID = strings.TrimSpace(lifecycleID)
	if lifecycleID == "" {
		return entities.LifecycleSnapshot{}, failures.New(failures.KindValidation, "lifecycle id is required")
	}
	snap, err := u.records.FindLatestByLifecycleID(ctx, lifecycleID)
	if err != nil {
		return entities.LifecycleSnapshot{}, asFailure(err, failures.KindPersistence, "load lifecycle")
	}
	if snap.ID == "" {
		return entities.LifecycleSnapshot{}, failures.Newf(failures.KindNotFound, "lifecycle %s not found", lifecycleID)
	}
	return snap, nil
}

func (u *DownloadRequestUseCase) GetSnapshot(ctx context.Context, snapshotID string) (entities.LifecycleSnapshot, error) {
	snapshotID = strings.TrimSpace(snapshotID)
	if snapshotID == "" {
		return entities.LifecycleSnapshot{}, failures.New(failures.KindValidation, "snapshot id is required")
	}
	snap, err := u.records.Load(ctx, snapshotID)
	if err != nil {
		return entities.LifecycleSnapshot{}, asFailure(err, failures.KindPersistence, "load snapshot")
	}
	if snap.ID == "" {
		return entities.LifecycleSnapshot{}, failures.Newf(failures.KindNotFound, "snapshot %s not found", snapshotID)
	}
	return snap, nil
}

func (u *DownloadRequestUseCase) GetByRequestID(ctx context.Context, requestID string) (entities.LifecycleSnapshot, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.LifecycleSnapshot{}, failures.New(failures.KindValidation, "request id is required")
	}
	snap, err := u.records.FindLatestByRequestID(ctx, requestID)
	if err != nil {
		return entities.LifecycleSnapshot{}, asFailure(err, failures.KindPersistence, "load request")
	}
	if snap.ID == "" {
		return entities.LifecycleSnapshot{}, failures.Newf(failures.KindNotFound, "request %s not found", requestID)
	}
	return snap, nil
}

// List returns the latest snapshot of every lifecycle, newest first.
func (u *DownloadRequestUseCase) List(ctx context.Context) ([]entities.LifecycleSnapshot, error) {
	snaps, err := u.records.List(ctx)
	if err != nil {
		return nil, asFailure(err, failures.KindPersistence, "list lifecycles")
	}
	byLifecycle := lo.GroupBy(snaps, func(s entities.LifecycleSnapshot) string {
		return lo.Ternary(s.LifecycleID != "", s.LifecycleID, s.ID)
	})
	latest := lo.MapToSlice(byLifecycle, func(_ string, group []entities.LifecycleSnapshot) entities.LifecycleSnapshot {
		return lo.MaxBy(group, func(a, b entities.LifecycleSnapshot) bool { return a.SnapshotAt.After(b.SnapshotAt) })
	})
	slices.SortFunc(latest, func(a, b entities.LifecycleSnapshot) int {
		if c := b.SnapshotAt.Compare(a.SnapshotAt); c != 0 {
			return c
		}
		return strings.Compare(a.LifecycleID, b.LifecycleID)
	})
	return latest, nil
}

// replay stages the stored credentials of lc, re-authenticates and runs step.
// Staged material is released before replay returns.
func (u *DownloadRequestUseCase) replay(ctx context.Context, lc *entities.RequestLifecycle, step func(ctx context.Context, session Session)) error {
	secret, ok, err := u.vault.Get(ctx, lc.ID)
	if err != nil {
		return asFailure(err, failures.KindPersistence, "load credentials")
	}
	if !ok {
		return failures.Newf(failures.KindCredentialInvalid, "no stored credentials for lifecycle %s", lc.ID)
	}
	defer secret.Wipe()

	return u.staging.Run(ctx, secret, func(ctx context.Context, cred *credentials.StagedCredential) error {
		session, err := u.authenticate(ctx, lc, cred)
		if err != nil {
			return err
		}
		step(ctx, session)
		return nil
	})
}

func (u *DownloadRequestUseCase) authenticate(ctx context.Context, lc *entities.RequestLifecycle, cred *credentials.StagedCredential) (Session, error) {
	signer, err := u.signers.NewSigner(ctx, cred)
	if err != nil {
		return Session{}, asFailure(err, failures.KindCredentialInvalid, "load FIEL")
	}
	return u.lifecycle.Authenticate(ctx, lc, signer)
}

func (u *DownloadRequestUseCase) load(ctx context.Context, lifecycleID string) (*entities.RequestLifecycle, error) {
	snap, err := u.GetByID(ctx, lifecycleID)
	if err != nil {
		return nil, err
	}
	return entities.FromSnapshot(snap), nil
}

// save writes a new snapshot. A failed save leaves the in-memory lifecycle as it is.
func (u *DownloadRequestUseCase) save(ctx context.Context, lc *entities.RequestLifecycle) (entities.LifecycleSnapshot, error) {
	lc.Lock()
	snap := lc.Snapshot(u.now())
	lc.Unlock()
	snap.ID = u.newID()

	id, err := u.records.Save(context.WithoutCancel(ctx), snap)
	if err != nil {
		u.log.Errorf("[download][usecase] snapshot save failed lifecycle_id=%s state=%s err=%v", lc.ID, snap.State, err)
		return snap, asFailure(err, failures.KindPersistence, "save lifecycle snapshot")
	}
	snap.ID = id
	u.log.Infof("[download][usecase] snapshot saved lifecycle_id=%s snapshot_id=%s state=%s", lc.ID, id, snap.State)
	return snap, nil
}

func (u *DownloadRequestUseCase) lock(id string) func() {
	return u.locks.acquire(id)
}

// lifecycleLocks hands out one mutex per lifecycle id. An entry lives only
// while some driver holds or waits for it.
type lifecycleLocks struct {
	mu      sync.Mutex
	entries map[string]*lifecycleLock
}

type lifecycleLock struct {
	mu   sync.Mutex
	refs int
}

func (l *lifecycleLocks) acquire(id string) func() {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = map[string]*lifecycleLock{}
	}
	e, ok := l.entries[id]
	if !ok {
		e = &lifecycleLock{}
		l.entries[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

func (l *lifecycleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
