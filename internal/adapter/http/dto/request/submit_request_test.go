package request

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
)

func TestSubmitRequest_ResolveQuery(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRequest
		wantNil bool
		wantErr bool
	}{
		{name: "no dates", req: SubmitRequest{}, wantNil: true},
		{name: "only start", req: SubmitRequest{StartDate: "2024-01-01"}, wantErr: true},
		{name: "bad layout", req: SubmitRequest{StartDate: "01/01/2024", EndDate: "2024-01-31"}, wantErr: true},
		{name: "valid", req: SubmitRequest{StartDate: " 2024-01-01 ", EndDate: "2024-01-31", DocumentType: "Ingreso", DownloadType: "emitidos", RequestType: "XML"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.req.ResolveQuery()
			if tt.wantErr {
				if !failures.Is(err, failures.KindValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if q != nil {
					t.Fatalf("expected nil query, got %+v", q)
				}
				return
			}
			if !q.PeriodStart.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected start: %s", q.PeriodStart)
			}
			if q.DocumentType != entities.DocumentTypeIngreso || q.DownloadType != entities.DownloadTypeIssued || q.RequestType != entities.RequestTypeXML {
				t.Fatalf("unexpected selectors: %+v", q)
			}
			if q.DocumentStatus != "" {
				t.Fatalf("document status should be left for defaults, got %q", q.DocumentStatus)
			}
		})
	}
}

// uploads builds real multipart headers by parsing a request body.
func uploads(t *testing.T, files map[string][2]string) map[string]*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write([]byte(f[1]))
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	out := map[string]*multipart.FileHeader{}
	for field := range files {
		out[field] = req.MultipartForm.File[field][0]
	}
	return out
}

func TestSubmitRequest_ReadSecret(t *testing.T) {
	t.Run("reads both files", func(t *testing.T) {
		fh := uploads(t, map[string][2]string{"certificate": {"fiel.CER", "cer-bytes"}, "privateKey": {"fiel.key", "key-bytes"}})
		secret, err := SubmitRequest{Certificate: fh["certificate"], PrivateKey: fh["privateKey"], Password: "pw"}.ReadSecret()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(secret.Certificate) != "cer-bytes" || string(secret.PrivateKey) != "key-bytes" || string(secret.Passphrase) != "pw" {
			t.Fatalf("unexpected secret contents")
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		fh := uploads(t, map[string][2]string{"certificate": {"fiel.pem", "cer"}, "privateKey": {"fiel.key", "key"}})
		_, err := SubmitRequest{Certificate: fh["certificate"], PrivateKey: fh["privateKey"], Password: "pw"}.ReadSecret()
		if !failures.Is(err, failures.KindValidation) || !strings.Contains(err.Error(), ".cer") {
			t.Fatalf("expected extension error, got %v", err)
		}
	})

	t.Run("empty key", func(t *testing.T) {
		fh := uploads(t, map[string][2]string{"certificate": {"fiel.cer", "cer"}, "privateKey": {"fiel.key", ""}})
		_, err := SubmitRequest{Certificate: fh["certificate"], PrivateKey: fh["privateKey"], Password: "pw"}.ReadSecret()
		if !failures.Is(err, failures.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("oversized certificate", func(t *testing.T) {
		fh := uploads(t, map[string][2]string{"certificate": {"fiel.cer", "x"}, "privateKey": {"fiel.key", "key"}})
		fh["certificate"].Size = MaxCredentialFileSize + 1
		_, err := SubmitRequest{Certificate: fh["certificate"], PrivateKey: fh["privateKey"], Password: "pw"}.ReadSecret()
		if !failures.Is(err, failures.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
