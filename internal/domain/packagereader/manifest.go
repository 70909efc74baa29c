package packagereader

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"

	"github.com/shopspring/decimal"
)

// Manifest column names, as they appear in the header row of a SAT metadata file.
const (
	colUUID              = "uuid"
	colIssuerID          = "rfcemisor"
	colIssuerName        = "nombreemisor"
	colRecipientID       = "rfcreceptor"
	colRecipientName     = "nombrereceptor"
	colPacID             = "rfcpac"
	colIssueDate         = "fechaemision"
	colCertificationDate = "fechacertificacionsat"
	colTotal             = "monto"
	colEffect            = "efectocomprobante"
	colStatus            = "estatus"
	colCancellationDate  = "fechacancelacion"
)

var manifestHeader = []string{
	"Uuid", "RfcEmisor", "NombreEmisor", "RfcReceptor", "NombreReceptor", "RfcPac",
	"FechaEmision", "FechaCertificacionSat", "Monto", "EfectoComprobante", "Estatus", "FechaCancelacion",
}

const manifestTimeLayout = "2006-01-02 15:04:05"

// SAT timestamps carry no offset; they are central Mexico time, which has no DST since 2022.
var satLocation = time.FixedZone("CST", -6*60*60)

func newManifestReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '~'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// readManifest parses one metadata text file into rows, in file order.
func readManifest(name string, r io.Reader) ([]entities.InvoiceMetadata, error) {
	cr := newManifestReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, failures.Wrap(err, failures.KindMalformedDocument, "read manifest header of "+name)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols[colUUID]; !ok {
		return nil, failures.Newf(failures.KindMalformedDocument, "manifest %s has no Uuid column", name)
	}

	var rows []entities.InvoiceMetadata
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, failures.Wrap(err, failures.KindMalformedDocument, "read manifest "+name)
		}
		line, _ := cr.FieldPos(0)
		m, err := parseRow(cols, rec)
		if err != nil {
			return nil, failures.Wrap(err, failures.KindMalformedDocument, "manifest "+name+" line "+strconv.Itoa(line))
		}
		if m.UUID == "" {
			continue
		}
		rows = append(rows, m)
	}
}

func parseRow(cols map[string]int, rec []string) (entities.InvoiceMetadata, error) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	m := entities.InvoiceMetadata{
		UUID:          strings.ToUpper(get(colUUID)),
		IssuerID:      get(colIssuerID),
		IssuerName:    get(colIssuerName),
		RecipientID:   get(colRecipientID),
		RecipientName: get(colRecipientName),
		PacID:         get(colPacID),
		EffectStatus:  get(colEffect),
	}

	var err error
	if m.IssueDate, err = parseTime(get(colIssueDate)); err != nil {
		return m, err
	}
	if m.CertificationDate, err = parseOptionalTime(get(colCertificationDate)); err != nil {
		return m, err
	}
	if m.CancellationDate, err = parseOptionalTime(get(colCancellationDate)); err != nil {
		return m, err
	}
	if v := get(colTotal); v != "" {
		if m.Total, err = decimal.NewFromString(v); err != nil {
			return m, err
		}
	}
	switch get(colStatus) {
	case "1":
		m.DocumentStatus = entities.DocumentStatusActive
	case "0":
		m.DocumentStatus = entities.DocumentStatusCancelled
	default:
		m.DocumentStatus = entities.DocumentStatusUndefined
	}
	return m, nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(manifestTimeLayout, v, satLocation); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", v, satLocation)
}

func parseOptionalTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(satLocation).Format(manifestTimeLayout)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func manifestRow(m entities.InvoiceMetadata) []string {
	status := ""
	switch m.DocumentStatus {
	case entities.DocumentStatusActive:
		status = "1"
	case entities.DocumentStatusCancelled:
		status = "0"
	}
	return []string{
		m.UUID, m.IssuerID, m.IssuerName, m.RecipientID, m.RecipientName, m.PacID,
		formatTime(m.IssueDate), formatOptionalTime(m.CertificationDate), m.Total.StringFixed(2),
		m.EffectStatus, status, formatOptionalTime(m.CancellationDate),
	}
}
