package satws

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"strings"
	"time"

	"descarga_masiva/internal/domain/credentials"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/usecase/interfaces"
)

// GenericSubjectID is the RFC reported for certificates that carry none.
const GenericSubjectID = "XAXX010101000"

// oidUniqueIdentifier (x500UniqueIdentifier) holds "RFC / CURP" in SAT-issued certificates.
var oidUniqueIdentifier = asn1.ObjectIdentifier{2, 5, 4, 45}

// MockSignerFactory builds signers that need no SAT tooling. The subject comes
// from the certificate when it parses as X.509; signatures are HMAC-SHA256 keyed
// by the private key bytes.
type MockSignerFactory struct {
	now func() time.Time
}

var _ interfaces.ISignerFactory = (*MockSignerFactory)(nil)

func NewMockSignerFactory() *MockSignerFactory {
	return &MockSignerFactory{now: time.Now}
}

func (f *MockSignerFactory) NewSigner(_ context.Context, cred *credentials.StagedCredential) (interfaces.ISigner, error) {
	secret, err := cred.Secret()
	if err != nil {
		return nil, failures.Wrap(err, failures.KindCredentialInvalid, "read staged credential")
	}

	s := &mockSigner{cred: cred, subjectID: GenericSubjectID, valid: len(secret.PrivateKey) > 0 && len(secret.Passphrase) > 0}
	if cert, ok := parseCertificate(secret.Certificate); ok {
		if rfc := subjectRFC(cert); rfc != "" {
			s.subjectID = rfc
		}
		now := f.now()
		s.valid = s.valid && !now.Before(cert.NotBefore) && now.Before(cert.NotAfter)
	}
	return s, nil
}

type mockSigner struct {
	cred      *credentials.StagedCredential
	subjectID string
	valid     bool
}

func (s *mockSigner) SubjectID() string { return s.subjectID }

func (s *mockSigner) IsValid(context.Context) bool {
	return s.valid && !s.cred.Released()
}

func (s *mockSigner) Sign(_ context.Context, challenge []byte) ([]byte, error) {
	secret, err := s.cred.Secret()
	if err != nil {
		return nil, failures.Wrap(err, failures.KindCredentialInvalid, "sign")
	}
	mac := hmac.New(sha256.New, secret.PrivateKey)
	mac.Write(challenge)
	return mac.Sum(nil), nil
}

// parseCertificate accepts DER (the .cer SAT hands out) or PEM.
func parseCertificate(data []byte) (*x509.Certificate, bool) {
	if block, _ := pem.Decode(data); block != nil {
		data = block.Bytes
	}
	cert, err := x509.ParseCertificate(data)
	if err != nil {
		return nil, false
	}
	return cert, true
}

func subjectRFC(cert *x509.Certificate) string {
	for _, n := range cert.Subject.Names {
		if !n.Type.Equal(oidUniqueIdentifier) {
			continue
		}
		v := strings.TrimSpace(fmt.Sprint(n.Value))
		if rfc, _, ok := strings.Cut(v, "/"); ok {
			v = rfc
		}
		return strings.ToUpper(strings.TrimSpace(v))
	}
	return ""
}
