package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/cockroachdb/errors"
)

// FSPackageStorage keeps packages under baseDir/<requestID>/<packageID>.zip.
//
// Writes go to a temp file in the same directory and are renamed into place, so a
// reader never sees a partial archive.
type FSPackageStorage struct {
	baseDir  string
	maxBytes int64
	log      *logger.Logger
	now      func() time.Time
}

var _ interfaces.IPackageStorage = (*FSPackageStorage)(nil)

func NewFSPackageStorage(baseDir string, maxBytes int64, log *logger.Logger) *FSPackageStorage {
	return &FSPackageStorage{
		baseDir:  baseDir,
		maxBytes: maxBytes,
		log:      logger.OrDefault(log),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *FSPackageStorage) Put(ctx context.Context, requestID, packageID string, content []byte) (entities.PackageRecord, error) {
	if err := checkSize(content, s.maxBytes); err != nil {
		return entities.PackageRecord{}, err
	}
	path, err := s.path(requestID, packageID)
	if err != nil {
		return entities.PackageRecord{}, err
	}
	if err := ctx.Err(); err != nil {
		return entities.PackageRecord{}, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return entities.PackageRecord{}, errors.Wrapf(err, "create package dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".pkg-*")
	if err != nil {
		return entities.PackageRecord{}, errors.Wrap(err, "create temp package file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return entities.PackageRecord{}, errors.Wrap(err, "write package")
	}
	if err := tmp.Close(); err != nil {
		return entities.PackageRecord{}, errors.Wrap(err, "close package")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return entities.PackageRecord{}, errors.Wrapf(err, "move package into %s", path)
	}

	s.log.Debugf("[storage][fs] stored request_id=%s package_id=%s size=%d", requestID, packageID, len(content))
	return entities.PackageRecord{
		PackageID:   packageID,
		RequestID:   requestID,
		Location:    path,
		Size:        int64(len(content)),
		RetrievedAt: s.now(),
	}, nil
}

func (s *FSPackageStorage) Get(_ context.Context, requestID, packageID string) ([]byte, error) {
	path, err := s.path(requestID, packageID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, failures.Newf(failures.KindNotFound, "package %s of request %s is not stored", packageID, requestID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read package %s", path)
	}
	return data, nil
}

func (s *FSPackageStorage) Stat(_ context.Context, requestID, packageID string) (entities.PackageRecord, bool, error) {
	path, err := s.path(requestID, packageID)
	if err != nil {
		return entities.PackageRecord{}, false, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return entities.PackageRecord{}, false, nil
	}
	if err != nil {
		return entities.PackageRecord{}, false, errors.Wrapf(err, "stat package %s", path)
	}
	return entities.PackageRecord{
		PackageID:   packageID,
		RequestID:   requestID,
		Location:    path,
		Size:        info.Size(),
		RetrievedAt: info.ModTime().UTC(),
	}, true, nil
}

func (s *FSPackageStorage) path(requestID, packageID string) (string, error) {
	if err := checkSegment("request id", requestID); err != nil {
		return "", err
	}
	if err := checkSegment("package id", packageID); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(entities.PackageKey(requestID, packageID))), nil
}

// checkSegment rejects ids that would escape their directory once used as a path element.
func checkSegment(what, v string) error {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) || strings.ContainsRune(v, 0) {
		return failures.Newf(failures.KindValidation, "invalid %s %q", what, v)
	}
	return nil
}

func checkSize(content []byte, maxBytes int64) error {
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return failures.Newf(failures.KindPackageDownload, "package of %d bytes exceeds the %d byte limit", len(content), maxBytes)
	}
	return nil
}
