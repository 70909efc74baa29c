package interfaces

import (
	"context"

	"descarga_masiva/internal/domain/entities"
)

// IPackageStorage keeps one archive per (requestID, packageID).
type IPackageStorage interface {
	Put(ctx context.Context, requestID, packageID string, content []byte) (entities.PackageRecord, error)
	Get(ctx context.Context, requestID, packageID string) ([]byte, error)
	// Stat returns ok=false when the package has not been stored.
	Stat(ctx context.Context, requestID, packageID string) (rec entities.PackageRecord, ok bool, err error)
}
