package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceMetadata is one row of a metadata package manifest.
type InvoiceMetadata struct {
	UUID              string          `json:"uuid"`
	IssuerID          string          `json:"issuer_id"`
	IssuerName        string          `json:"issuer_name"`
	RecipientID       string          `json:"recipient_id"`
	RecipientName     string          `json:"recipient_name"`
	PacID             string          `json:"pac_id,omitempty"`
	IssueDate         time.Time       `json:"issue_date"`
	CertificationDate *time.Time      `json:"certification_date,omitempty"`
	Total             decimal.Decimal `json:"total"`
	EffectStatus      string          `json:"effect_status"`
	DocumentStatus    DocumentStatus  `json:"document_status"`
	CancellationDate  *time.Time      `json:"cancellation_date,omitempty"`
}

func (m InvoiceMetadata) IsCancelled() bool {
	return m.DocumentStatus == DocumentStatusCancelled
}
