package interfaces

import (
	"context"

	"descarga_masiva/internal/domain/entities"
)

// ISecretVault stores FIEL material sealed at rest, keyed by lifecycle id and
// kept apart from lifecycle snapshots.
type ISecretVault interface {
	Put(ctx context.Context, lifecycleID string, secret entities.CredentialSecret) error
	// Get returns ok=false when no secret is stored for the lifecycle.
	Get(ctx context.Context, lifecycleID string) (secret entities.CredentialSecret, ok bool, err error)
}
