package usecase

import (
	"context"
	"slices"
	"time"

	"descarga_masiva/internal/domain/cfdi"
	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/domain/packagereader"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

const DefaultRetrieverConcurrency = 4

type RetrieveOptions struct {
	// Force downloads packages again even when storage already holds them.
	Force bool
}

// RetrievalResult lists stored records and per-package failures, each in PackageIDs order.
type RetrievalResult struct {
	Records  []entities.PackageRecord  `json:"records"`
	Failures []entities.PackageFailure `json:"failures"`
}

func (r RetrievalResult) Complete() bool {
	return len(r.Failures) == 0
}

type IPackageRetrieverUseCase interface {
	Retrieve(ctx context.Context, lc *entities.RequestLifecycle, session Session, opts RetrieveOptions) (RetrievalResult, error)
	Read(ctx context.Context, requestID, packageID string) ([]entities.InvoiceEntry, error)
}

type PackageRetrieverUseCase struct {
	storage     interfaces.IPackageStorage
	metrics     interfaces.IMetricsRecorder
	log         *logger.Logger
	concurrency int
	now         func() time.Time
}

var _ IPackageRetrieverUseCase = (*PackageRetrieverUseCase)(nil)

func NewPackageRetrieverUseCase(storage interfaces.IPackageStorage, metrics interfaces.IMetricsRecorder, log *logger.Logger, concurrency int) *PackageRetrieverUseCase {
	if concurrency < 1 {
		concurrency = DefaultRetrieverConcurrency
	}
	return &PackageRetrieverUseCase{
		storage:     storage,
		metrics:     metricsOrNop(metrics),
		log:         logger.OrDefault(log),
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type packageOutcome struct {
	record  *entities.PackageRecord
	failure *entities.PackageFailure
}

// Retrieve downloads every package of a finished lifecycle. One package failing
// never stops the others; the error is non-nil only for a precondition failure
// or when ctx ends before all packages were attempted.
func (u *PackageRetrieverUseCase) Retrieve(ctx context.Context, lc *entities.RequestLifecycle, session Session, opts RetrieveOptions) (RetrievalResult, error) {
	lc.Lock()
	now := u.now()
	err := lc.EnsureCanRetrieve(now)
	if err == nil {
		err = session.check(lc, now)
	}
	requestID := lc.RequestID
	packageIDs := slices.Clone(lc.PackageIDs)
	lc.Unlock()
	if err != nil {
		return RetrievalResult{}, withReauthHint(err)
	}

	u.log.Infof("[retriever][usecase] start request_id=%s packages=%d force=%t", requestID, len(packageIDs), opts.Force)

	outcomes := make([]packageOutcome, len(packageIDs))
	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, packageID := range packageIDs {
		g.Go(func() error {
			outcomes[i] = u.retrieveOne(ctx, session, requestID, packageID, opts)
			return nil
		})
	}
	_ = g.Wait()

	res := RetrievalResult{Records: []entities.PackageRecord{}, Failures: []entities.PackageFailure{}}
	for _, o := range outcomes {
		if o.record != nil {
			res.Records = append(res.Records, *o.record)
		}
		if o.failure != nil {
			res.Failures = append(res.Failures, *o.failure)
		}
	}
	u.log.Infof("[retriever][usecase] done request_id=%s stored=%d failed=%d", requestID, len(res.Records), len(res.Failures))

	if err := ctx.Err(); err != nil {
		return res, failures.Wrap(err, failures.KindRemoteTransport, "package retrieval cancelled")
	}
	return res, nil
}

func (u *PackageRetrieverUseCase) retrieveOne(ctx context.Context, session Session, requestID, packageID string, opts RetrieveOptions) packageOutcome {
	fail := func(kind failures.Kind, code int, msg string) packageOutcome {
		u.metrics.ObserveDownload("failed")
		u.log.Warnf("[retriever][usecase] package failed request_id=%s package_id=%s kind=%s code=%d message=%q", requestID, packageID, kind, code, msg)
		return packageOutcome{failure: &entities.PackageFailure{
			PackageID:  packageID,
			RequestID:  requestID,
			Kind:       kind,
			RemoteCode: code,
			Message:    msg,
			FailedAt:   u.now(),
		}}
	}

	if err := ctx.Err(); err != nil {
		return fail(failures.KindRemoteTransport, 0, "retrieval cancelled before download")
	}

	if !opts.Force {
		rec, ok, err := u.storage.Stat(ctx, requestID, packageID)
		if err != nil {
			u.log.Warnf("[retriever][usecase] stat failed, downloading anyway request_id=%s package_id=%s err=%v", requestID, packageID, err)
		} else if ok {
			u.metrics.ObserveDownload("skipped")
			rec.Skipped = true
			return packageOutcome{record: &rec}
		}
	}

	start := time.Now()
	dl, err := session.client.DownloadPackage(ctx, session.token, packageID)
	u.metrics.ObserveRemoteCall("download", time.Since(start), err)
	if err != nil {
		code := 0
		if f, ok := failures.As(err); ok {
			code = f.RemoteCode
		}
		return fail(failures.KindPackageDownload, code, err.Error())
	}
	if !dl.Status.IsAccepted() {
		return fail(failures.KindPackageDownload, dl.Status.Code, dl.Status.Message)
	}
	if len(dl.Content) == 0 {
		return fail(failures.KindPackageDownload, dl.Status.Code, "remote service returned an empty package")
	}

	rec, err := u.storage.Put(ctx, requestID, packageID, dl.Content)
	if err != nil {
		kind := failures.KindPersistence
		if k := failures.KindOf(err); k != "" {
			kind = k
		}
		return fail(kind, 0, err.Error())
	}
	u.metrics.ObserveDownload("stored")
	u.log.Infof("[retriever][usecase] package stored request_id=%s package_id=%s size=%d location=%s", requestID, packageID, rec.Size, rec.Location)
	return packageOutcome{record: &rec}
}

// Read opens a stored package and pairs each manifest row with its parsed
// document. Per-document parse errors are reported on the entry, not returned.
func (u *PackageRetrieverUseCase) Read(ctx context.Context, requestID, packageID string) ([]entities.InvoiceEntry, error) {
	data, err := u.storage.Get(ctx, requestID, packageID)
	if err != nil {
		return nil, err
	}
	return ExtractInvoices(data)
}

// ExtractInvoices reads every entry of a package archive.
func ExtractInvoices(data []byte) ([]entities.InvoiceEntry, error) {
	pkg, err := packagereader.Open(data)
	if err != nil {
		return nil, err
	}

	out := []entities.InvoiceEntry{}
	for e, err := range pkg.Entries() {
		entry := entities.InvoiceEntry{Metadata: e.Metadata}
		if err != nil {
			if !pkg.HasManifest() || e.Metadata.UUID != "" {
				entry.Error = err.Error()
				out = append(out, entry)
				continue
			}
			return nil, err
		}
		if e.XML != nil {
			doc, perr := cfdi.Parse(e.XML)
			if perr != nil {
				entry.Error = perr.Error()
			} else {
				entry.Document = &doc
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
