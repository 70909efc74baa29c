package credentials

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"

	"github.com/cockroachdb/errors"
)

var ErrReleased = errors.New("staged credential already released")

// StagedFiles are the on-disk copies some signers need; they live in a private
// directory that Release removes.
type StagedFiles struct {
	CertificatePath string
	KeyPath         string
}

// StagedCredential owns decrypted FIEL material for the length of one run.
type StagedCredential struct {
	mu       sync.Mutex
	area     *StagingArea
	secret   entities.CredentialSecret
	dir      string
	files    *StagedFiles
	released bool
}

// StagingArea hands out StagedCredentials and tracks the ones not yet released.
type StagingArea struct {
	tempDir string

	mu     sync.Mutex
	staged map[*StagedCredential]struct{}
}

// NewStagingArea stages temporary files under tempDir, or os.TempDir() when empty.
func NewStagingArea(tempDir string) *StagingArea {
	return &StagingArea{tempDir: tempDir, staged: map[*StagedCredential]struct{}{}}
}

// Stage copies the secret so the caller may wipe its own buffers right away.
func (a *StagingArea) Stage(secret entities.CredentialSecret) (*StagedCredential, error) {
	if len(secret.Certificate) == 0 {
		return nil, failures.New(failures.KindValidation, "certificate is required")
	}
	if len(secret.PrivateKey) == 0 {
		return nil, failures.New(failures.KindValidation, "private key is required")
	}
	if len(secret.Passphrase) == 0 {
		return nil, failures.New(failures.KindValidation, "passphrase is required")
	}

	s := &StagedCredential{
		area: a,
		secret: entities.CredentialSecret{
			Certificate: append([]byte(nil), secret.Certificate...),
			PrivateKey:  append([]byte(nil), secret.PrivateKey...),
			Passphrase:  append([]byte(nil), secret.Passphrase...),
		},
	}

	a.mu.Lock()
	a.staged[s] = struct{}{}
	a.mu.Unlock()
	return s, nil
}

// Run stages secret, calls fn and releases the staged material on every exit path,
// including a panic inside fn.
func (a *StagingArea) Run(ctx context.Context, secret entities.CredentialSecret, fn func(ctx context.Context, cred *StagedCredential) error) (err error) {
	cred, err := a.Stage(secret)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := cred.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(ctx, cred)
}

// Outstanding is the number of staged credentials not yet released.
func (a *StagingArea) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.staged)
}

func (a *StagingArea) forget(s *StagedCredential) {
	a.mu.Lock()
	delete(a.staged, s)
	a.mu.Unlock()
}

// Secret returns the staged buffers. They are zeroed by Release and must not be kept.
func (s *StagedCredential) Secret() (entities.CredentialSecret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return entities.CredentialSecret{}, ErrReleased
	}
	return s.secret, nil
}

// MaterializeFiles writes the certificate and key into a private temp directory.
// Calling it twice returns the same files.
func (s *StagedCredential) MaterializeFiles() (StagedFiles, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return StagedFiles{}, ErrReleased
	}
	if s.files != nil {
		return *s.files, nil
	}

	dir, err := os.MkdirTemp(s.area.tempDir, "fiel-*")
	if err != nil {
		return StagedFiles{}, errors.Wrap(err, "create staging dir")
	}
	s.dir = dir

	files := StagedFiles{
		CertificatePath: filepath.Join(dir, "fiel.cer"),
		KeyPath:         filepath.Join(dir, "fiel.key"),
	}
	if err := os.WriteFile(files.CertificatePath, s.secret.Certificate, 0o600); err != nil {
		return StagedFiles{}, errors.Wrap(err, "stage certificate")
	}
	if err := os.WriteFile(files.KeyPath, s.secret.PrivateKey, 0o600); err != nil {
		return StagedFiles{}, errors.Wrap(err, "stage private key")
	}
	s.files = &files
	return files, nil
}

// Release zeroes the in-memory buffers and removes staged files. It is idempotent.
func (s *StagedCredential) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	s.secret.Wipe()
	s.area.forget(s)

	if s.dir == "" {
		return nil
	}
	dir := s.dir
	s.dir = ""
	s.files = nil
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "remove staging dir %s", dir)
	}
	return nil
}

func (s *StagedCredential) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
