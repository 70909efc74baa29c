package entities

import (
	"strings"
	"time"

	"descarga_masiva/internal/domain/failures"
)

// ServiceKind selects the SAT endpoint family.
type ServiceKind string

const (
	ServiceKindCfdi        ServiceKind = "cfdi"
	ServiceKindRetenciones ServiceKind = "retenciones"
)

type DownloadType string

const (
	DownloadTypeIssued   DownloadType = "issued"
	DownloadTypeReceived DownloadType = "received"
)

type RequestType string

const (
	RequestTypeXML      RequestType = "xml"
	RequestTypeMetadata RequestType = "metadata"
)

type DocumentType string

const (
	DocumentTypeUndefined DocumentType = "undefined"
	DocumentTypeIngreso   DocumentType = "ingreso"
	DocumentTypeEgreso    DocumentType = "egreso"
	DocumentTypeTraslado  DocumentType = "traslado"
	DocumentTypeNomina    DocumentType = "nomina"
	DocumentTypePago      DocumentType = "pago"
)

type DocumentStatus string

const (
	DocumentStatusUndefined DocumentStatus = "undefined"
	DocumentStatusActive    DocumentStatus = "active"
	DocumentStatusCancelled DocumentStatus = "cancelled"
)

// DateLayout is the calendar-day layout accepted for period bounds.
const DateLayout = "2006-01-02"

// QuerySpec describes what a bulk-download request asks for.
//
// PeriodStart and PeriodEnd are calendar days; the query sent to SAT always
// covers the closed interval [PeriodStart 00:00:00, PeriodEnd 23:59:59].
type QuerySpec struct {
	PeriodStart    time.Time      `json:"period_start"`
	PeriodEnd      time.Time      `json:"period_end"`
	DocumentType   DocumentType   `json:"document_type"`
	DownloadType   DownloadType   `json:"download_type"`
	DocumentStatus DocumentStatus `json:"document_status"`
	RequestType    RequestType    `json:"request_type"`
}

// RemoteQuery is the normalized query handed to the Remote Service Client.
type RemoteQuery struct {
	Start          time.Time
	End            time.Time
	DocumentType   DocumentType
	DownloadType   DownloadType
	DocumentStatus DocumentStatus
	RequestType    RequestType
}

// WithDefaults fills the optional selectors the same way the intake form does.
func (q QuerySpec) WithDefaults() QuerySpec {
	if q.DocumentType == "" {
		q.DocumentType = DocumentTypeUndefined
	}
	if q.DownloadType == "" {
		q.DownloadType = DownloadTypeReceived
	}
	if q.DocumentStatus == "" {
		q.DocumentStatus = DocumentStatusUndefined
	}
	if q.RequestType == "" {
		q.RequestType = RequestTypeMetadata
	}
	return q
}

func (q QuerySpec) Validate() error {
	if q.PeriodStart.IsZero() || q.PeriodEnd.IsZero() {
		return failures.New(failures.KindValidation, "period start and end are both required")
	}
	if dayOf(q.PeriodEnd).Before(dayOf(q.PeriodStart)) {
		return failures.New(failures.KindValidation, "period end must not be before period start")
	}
	if !oneOf(string(q.DocumentType), DocumentTypeUndefined, DocumentTypeIngreso, DocumentTypeEgreso, DocumentTypeTraslado, DocumentTypeNomina, DocumentTypePago) {
		return failures.Newf(failures.KindValidation, "unknown document type %q", q.DocumentType)
	}
	if !oneOf(string(q.DownloadType), DownloadTypeIssued, DownloadTypeReceived) {
		return failures.Newf(failures.KindValidation, "unknown download type %q", q.DownloadType)
	}
	if !oneOf(string(q.DocumentStatus), DocumentStatusUndefined, DocumentStatusActive, DocumentStatusCancelled) {
		return failures.Newf(failures.KindValidation, "unknown document status %q", q.DocumentStatus)
	}
	if !oneOf(string(q.RequestType), RequestTypeXML, RequestTypeMetadata) {
		return failures.Newf(failures.KindValidation, "unknown request type %q", q.RequestType)
	}
	return nil
}

// RemoteQuery expands the calendar-day period into the inclusive second range SAT expects.
func (q QuerySpec) RemoteQuery() RemoteQuery {
	start := dayOf(q.PeriodStart)
	end := dayOf(q.PeriodEnd).Add(24*time.Hour - time.Second)
	return RemoteQuery{
		Start:          start,
		End:            end,
		DocumentType:   q.DocumentType,
		DownloadType:   q.DownloadType,
		DocumentStatus: q.DocumentStatus,
		RequestType:    q.RequestType,
	}
}

// ParseServiceKind accepts the labels used by stored records ("CFDI", "Retenciones") as well as the canonical ones.
func ParseServiceKind(v string) (ServiceKind, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "cfdi":
		return ServiceKindCfdi, nil
	case "retenciones":
		return ServiceKindRetenciones, nil
	}
	return "", failures.Newf(failures.KindValidation, "unknown service kind %q", v)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func oneOf[T ~string](v string, allowed ...T) bool {
	for _, a := range allowed {
		if v == string(a) {
			return true
		}
	}
	return false
}
