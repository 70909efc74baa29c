package interfaces

import (
	"context"

	"descarga_masiva/internal/domain/entities"
)

// IRecordStore persists lifecycle snapshots, one row per save.
//
// Load and FindLatestByRequestID return a zero snapshot (empty ID) when nothing matches.
type IRecordStore interface {
	Save(ctx context.Context, s entities.LifecycleSnapshot) (string, error)
	Load(ctx context.Context, id string) (entities.LifecycleSnapshot, error)
	List(ctx context.Context) ([]entities.LifecycleSnapshot, error)
	FindLatestByRequestID(ctx context.Context, requestID string) (entities.LifecycleSnapshot, error)
	FindLatestByLifecycleID(ctx context.Context, lifecycleID string) (entities.LifecycleSnapshot, error)
}
