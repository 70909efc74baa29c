package storage

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
)

const packageContentType = "application/zip"

// S3API is the subset of the S3 client the package storage uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3PackageStorage keeps packages as objects <prefix>/<requestID>/<packageID>.zip.
type S3PackageStorage struct {
	client   S3API
	bucket   string
	prefix   string
	maxBytes int64
	log      *logger.Logger
	now      func() time.Time
}

var _ interfaces.IPackageStorage = (*S3PackageStorage)(nil)

func NewS3PackageStorage(client S3API, bucket, prefix string, maxBytes int64, log *logger.Logger) *S3PackageStorage {
	return &S3PackageStorage{
		client:   client,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		maxBytes: maxBytes,
		log:      logger.OrDefault(log),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *S3PackageStorage) Put(ctx context.Context, requestID, packageID string, content []byte) (entities.PackageRecord, error) {
	if err := checkSize(content, s.maxBytes); err != nil {
		return entities.PackageRecord{}, err
	}
	key, err := s.key(requestID, packageID)
	if err != nil {
		return entities.PackageRecord{}, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(packageContentType),
		Metadata: map[string]string{
			"request-id": requestID,
			"package-id": packageID,
		},
	})
	if err != nil {
		return entities.PackageRecord{}, errors.Wrapf(err, "put object bucket:%s key:%s", s.bucket, key)
	}

	s.log.Debugf("[storage][s3] stored bucket=%s key=%s size=%d", s.bucket, key, len(content))
	return entities.PackageRecord{
		PackageID:   packageID,
		RequestID:   requestID,
		Location:    s.location(key),
		Size:        int64(len(content)),
		RetrievedAt: s.now(),
	}, nil
}

func (s *S3PackageStorage) Get(ctx context.Context, requestID, packageID string) ([]byte, error) {
	key, err := s.key(requestID, packageID)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, failures.Newf(failures.KindNotFound, "package %s of request %s is not stored", packageID, requestID)
		}
		return nil, errors.Wrapf(err, "get object bucket:%s key:%s", s.bucket, key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read object bucket:%s key:%s", s.bucket, key)
	}
	return data, nil
}

func (s *S3PackageStorage) Stat(ctx context.Context, requestID, packageID string) (entities.PackageRecord, bool, error) {
	key, err := s.key(requestID, packageID)
	if err != nil {
		return entities.PackageRecord{}, false, err
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return entities.PackageRecord{}, false, nil
		}
		return entities.PackageRecord{}, false, errors.Wrapf(err, "head object bucket:%s key:%s", s.bucket, key)
	}

	rec := entities.PackageRecord{
		PackageID: packageID,
		RequestID: requestID,
		Location:  s.location(key),
		Size:      aws.ToInt64(out.ContentLength),
	}
	if out.LastModified != nil {
		rec.RetrievedAt = out.LastModified.UTC()
	}
	return rec, true, nil
}

func (s *S3PackageStorage) key(requestID, packageID string) (string, error) {
	if err := checkSegment("request id", requestID); err != nil {
		return "", err
	}
	if err := checkSegment("package id", packageID); err != nil {
		return "", err
	}
	return path.Join(s.prefix, entities.PackageKey(requestID, packageID)), nil
}

func (s *S3PackageStorage) location(key string) string {
	return "s3://" + s.bucket + "/" + key
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
