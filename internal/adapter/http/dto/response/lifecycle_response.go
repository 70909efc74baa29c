package response

import (
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/usecase"
)

type QueryResponse struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DocumentType   string `json:"document_type"`
	DownloadType   string `json:"download_type"`
	DocumentStatus string `json:"document_status"`
	RequestType    string `json:"request_type"`
}

type LifecycleResponse struct {
	LifecycleID     string         `json:"lifecycle_id"`
	SnapshotID      string         `json:"snapshot_id"`
	RFC             string         `json:"rfc"`
	ServiceType     string         `json:"service_type"`
	State           string         `json:"state"`
	TokenCreated    time.Time      `json:"token_created"`
	TokenValidUntil time.Time      `json:"token_valid_until"`
	RequestID       string         `json:"request_id,omitempty"`
	StatusCode      int            `json:"status_code,omitempty"`
	StatusMessage   string         `json:"status_message,omitempty"`
	Query           *QueryResponse `json:"query,omitempty"`
	PackagesCount   int            `json:"packages_count"`
	Packages        []string       `json:"packages"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// SubmitResponse keeps the envelope the intake form has always returned.
type SubmitResponse struct {
	Success bool              `json:"success"`
	Data    LifecycleResponse `json:"data"`
	DBID    string            `json:"db_id"`
}

type PackageRecordResponse struct {
	PackageID   string    `json:"package_id"`
	Location    string    `json:"location"`
	Size        int64     `json:"size"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Skipped     bool      `json:"skipped"`
}

type PackageFailureResponse struct {
	PackageID  string    `json:"package_id"`
	Kind       string    `json:"kind"`
	RemoteCode int       `json:"remote_code,omitempty"`
	Message    string    `json:"message"`
	FailedAt   time.Time `json:"failed_at"`
}

type DownloadResponse struct {
	Lifecycle LifecycleResponse        `json:"lifecycle"`
	Complete  bool                     `json:"complete"`
	Records   []PackageRecordResponse  `json:"records"`
	Failures  []PackageFailureResponse `json:"failures"`
}

type InvoicesResponse struct {
	LifecycleID string                  `json:"lifecycle_id"`
	PackageID   string                  `json:"package_id"`
	Count       int                     `json:"count"`
	Invoices    []entities.InvoiceEntry `json:"invoices"`
}

func FromSnapshot(s entities.LifecycleSnapshot) LifecycleResponse {
	res := LifecycleResponse{
		LifecycleID:     s.LifecycleID,
		SnapshotID:      s.ID,
		RFC:             s.SubjectID,
		ServiceType:     string(s.ServiceKind),
		State:           string(s.State),
		TokenCreated:    s.TokenCreated,
		TokenValidUntil: s.TokenValidUntil,
		RequestID:       s.RequestID,
		StatusCode:      s.StatusCode,
		StatusMessage:   s.StatusMessage,
		PackagesCount:   len(s.PackageIDs),
		Packages:        append([]string{}, s.PackageIDs...),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.SnapshotAt,
	}
	if q := s.Query; q != nil {
		res.Query = &QueryResponse{
			StartDate:      q.PeriodStart.Format(entities.DateLayout),
			EndDate:        q.PeriodEnd.Format(entities.DateLayout),
			DocumentType:   string(q.DocumentType),
			DownloadType:   string(q.DownloadType),
			DocumentStatus: string(q.DocumentStatus),
			RequestType:    string(q.RequestType),
		}
	}
	return res
}

func FromSnapshots(snaps []entities.LifecycleSnapshot) []LifecycleResponse {
	out := make([]LifecycleResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, FromSnapshot(s))
	}
	return out
}

func FromSubmission(s entities.LifecycleSnapshot) SubmitResponse {
	return SubmitResponse{Success: true, Data: FromSnapshot(s), DBID: s.ID}
}

func FromDownloadReport(r usecase.DownloadReport) DownloadResponse {
	res := DownloadResponse{
		Lifecycle: FromSnapshot(r.Snapshot),
		Complete:  r.Result.Complete(),
		Records:   make([]PackageRecordResponse, 0, len(r.Result.Records)),
		Failures:  make([]PackageFailureResponse, 0, len(r.Result.Failures)),
	}
	for _, rec := range r.Result.Records {
		res.Records = append(res.Records, PackageRecordResponse{
			PackageID:   rec.PackageID,
			Location:    rec.Location,
			Size:        rec.Size,
			RetrievedAt: rec.RetrievedAt,
			Skipped:     rec.Skipped,
		})
	}
	for _, f := range r.Result.Failures {
		res.Failures = append(res.Failures, PackageFailureResponse{
			PackageID:  f.PackageID,
			Kind:       string(f.Kind),
			RemoteCode: f.RemoteCode,
			Message:    f.Message,
			FailedAt:   f.FailedAt,
		})
	}
	return res
}

func FromInvoices(lifecycleID, packageID string, entries []entities.InvoiceEntry) InvoicesResponse {
	if entries == nil {
		entries = []entities.InvoiceEntry{}
	}
	return InvoicesResponse{LifecycleID: lifecycleID, PackageID: packageID, Count: len(entries), Invoices: entries}
}
