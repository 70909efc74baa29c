package request

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"

	"github.com/cockroachdb/errors"
)

// MaxCredentialFileSize is the upload limit for each FIEL file.
const MaxCredentialFileSize = 5 << 20

// SubmitRequest is the multipart intake form: the FIEL files, the passphrase
// and an optional query. Without dates only the credential is authenticated.
type SubmitRequest struct {
	Certificate    *multipart.FileHeader `form:"certificate" binding:"required"`
	PrivateKey     *multipart.FileHeader `form:"privateKey" binding:"required"`
	Password       string                `form:"password" binding:"required"`
	StartDate      string                `form:"startDate"`
	EndDate        string                `form:"endDate"`
	DocumentType   string                `form:"documentType"`
	DownloadType   string                `form:"downloadType"`
	DocumentStatus string                `form:"documentStatus"`
	RequestType    string                `form:"requestType"`
	ServiceKind    string                `form:"serviceKind"`
}

// ResolveQuery returns nil when neither date is given.
func (r SubmitRequest) ResolveQuery() (*entities.QuerySpec, error) {
	start, end := strings.TrimSpace(r.StartDate), strings.TrimSpace(r.EndDate)
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, failures.New(failures.KindValidation, "startDate and endDate must be given together")
	}

	from, err := time.Parse(entities.DateLayout, start)
	if err != nil {
		return nil, failures.Wrap(err, failures.KindValidation, "startDate must be YYYY-MM-DD")
	}
	to, err := time.Parse(entities.DateLayout, end)
	if err != nil {
		return nil, failures.Wrap(err, failures.KindValidation, "endDate must be YYYY-MM-DD")
	}

	return &entities.QuerySpec{
		PeriodStart:    from,
		PeriodEnd:      to,
		DocumentType:   entities.DocumentType(normalize(r.DocumentType)),
		DownloadType:   downloadType(r.DownloadType),
		DocumentStatus: entities.DocumentStatus(normalize(r.DocumentStatus)),
		RequestType:    entities.RequestType(normalize(r.RequestType)),
	}, nil
}

// ReadSecret reads both uploads. The caller owns the returned buffers and wipes them.
func (r SubmitRequest) ReadSecret() (entities.CredentialSecret, error) {
	cer, err := readUpload("certificate", r.Certificate, ".cer")
	if err != nil {
		return entities.CredentialSecret{}, err
	}
	key, err := readUpload("privateKey", r.PrivateKey, ".key")
	if err != nil {
		clear(cer)
		return entities.CredentialSecret{}, err
	}
	return entities.CredentialSecret{Certificate: cer, PrivateKey: key, Passphrase: []byte(r.Password)}, nil
}

func readUpload(field string, fh *multipart.FileHeader, ext string) ([]byte, error) {
	if fh == nil {
		return nil, failures.Newf(failures.KindValidation, "%s is required", field)
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ext) {
		return nil, failures.Newf(failures.KindValidation, "%s must be a %s file", field, ext)
	}
	if fh.Size <= 0 || fh.Size > MaxCredentialFileSize {
		return nil, failures.Newf(failures.KindValidation, "%s must be between 1 byte and %d MiB", field, MaxCredentialFileSize>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s upload", field)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxCredentialFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s upload", field)
	}
	if len(data) > MaxCredentialFileSize {
		clear(data)
		return nil, failures.Newf(failures.KindValidation, "%s exceeds %d MiB", field, MaxCredentialFileSize>>20)
	}
	return data, nil
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// downloadType also accepts the Spanish labels of the SAT portal.
func downloadType(v string) entities.DownloadType {
	switch n := normalize(v); n {
	case "emitidos", "emitidas":
		return entities.DownloadTypeIssued
	case "recibidos", "recibidas":
		return entities.DownloadTypeReceived
	default:
		return entities.DownloadType(n)
	}
}
