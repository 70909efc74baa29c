package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sealer seals secrets with AES-256-GCM. The sealed form is base64(nonce || ciphertext).
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a sealer from a raw AES key of 16, 24 or 32 bytes.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "new cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "new gcm")
	}
	return &Sealer{aead: aead}, nil
}

// NewSealerFromConfig accepts VAULT_KEY as base64 of a valid AES key. Any other
// non-empty value is stretched to 32 bytes with SHA-256.
func NewSealerFromConfig(key string) (*Sealer, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("VAULT_KEY is not configured")
	}
	if raw, err := base64.StdEncoding.DecodeString(key); err == nil {
		switch len(raw) {
		case 16, 24, 32:
			return NewSealer(raw)
		}
	}
	sum := sha256.Sum256([]byte(key))
	return NewSealer(sum[:])
}

// NewEphemeralSealer uses a random key; whatever it seals is unreadable after a restart.
func NewEphemeralSealer() (*Sealer, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, errors.Wrap(err, "read key")
	}
	return NewSealer(key)
}

// Seal encrypts plaintext bound to aad; Open must be given the same aad.
func (s *Sealer) Seal(plaintext, aad []byte) (string, error) {
	if s == nil || s.aead == nil {
		return "", errors.New("sealer is not configured")
	}
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "read nonce")
	}
	payload := s.aead.Seal(nonce, nonce, plaintext, aad)
	return base64.RawStdEncoding.EncodeToString(payload), nil
}

func (s *Sealer) Open(sealed string, aad []byte) ([]byte, error) {
	if s == nil || s.aead == nil {
		return nil, errors.New("sealer is not configured")
	}
	payload, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errors.Wrap(err, "decode sealed value")
	}
	n := s.aead.NonceSize()
	if len(payload) < n {
		return nil, errors.New("sealed value is too short")
	}
	plaintext, err := s.aead.Open(nil, payload[:n], payload[n:], aad)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt sealed value")
	}
	return plaintext, nil
}
