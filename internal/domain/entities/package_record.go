package entities

import (
	"time"

	"descarga_masiva/internal/domain/failures"
)

// PackageRecord is one downloaded package as held by package storage.
//
// Immutable once stored; a forced retrieval produces a fresh record.
type PackageRecord struct {
	PackageID   string    `json:"package_id"`
	RequestID   string    `json:"request_id"`
	Location    string    `json:"location"`
	Size        int64     `json:"size"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Skipped     bool      `json:"skipped"`
	Content     []byte    `json:"-"`
}

// PackageFailure describes a package that could not be downloaded or stored.
type PackageFailure struct {
	PackageID  string        `json:"package_id"`
	RequestID  string        `json:"request_id"`
	Kind       failures.Kind `json:"kind"`
	RemoteCode int           `json:"remote_code,omitempty"`
	Message    string        `json:"message"`
	FailedAt   time.Time     `json:"failed_at"`
}

// PackageKey builds the storage key shared by every package storage backend.
func PackageKey(requestID, packageID string) string {
	return requestID + "/" + packageID + ".zip"
}
