package interfaces

import (
	"context"

	"descarga_masiva/internal/domain/credentials"
)

// ISigner is a FIEL signing identity.
type ISigner interface {
	// SubjectID is the taxpayer RFC the certificate was issued to.
	SubjectID() string
	// IsValid reports whether the certificate is a usable FIEL (not expired, key matches).
	IsValid(ctx context.Context) bool
	Sign(ctx context.Context, challenge []byte) ([]byte, error)
}

// ISignerFactory builds a signer over staged credentials. The signer must not
// outlive the staged credential it was built from.
type ISignerFactory interface {
	NewSigner(ctx context.Context, cred *credentials.StagedCredential) (ISigner, error)
}
