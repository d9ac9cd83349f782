package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"voltid/internal/platform/config"
	"voltid/pkg/platform/sentinel"
)

// MinIO stores objects in a single S3-compatible bucket.
type MinIO struct {
	client *minio.Client
	bucket string
	region string
	logger *slog.Logger
}

// NewMinIO connects to the configured endpoint and makes sure the bucket exists.
func NewMinIO(ctx context.Context, cfg config.Storage, logger *slog.Logger) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	s := &MinIO{client: client, bucket: cfg.Bucket, region: cfg.Region, logger: logger}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIO) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "created storage bucket", "bucket", s.bucket)
	}
	return nil
}

func (s *MinIO) PresignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, ttl, nil,
		http.Header{"Content-Type": []string{contentType}})
	if err != nil {
		return "", fmt.Errorf("presign upload %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinIO) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, mapMinioErr(err))
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, MaxObjectSize))
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, mapMinioErr(err))
	}
	return data, nil
}

func (s *MinIO) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, mapMinioErr(err))
	}
	return nil
}

func mapMinioErr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.Join(sentinel.ErrNotFound, err)
	}
	return err
}
