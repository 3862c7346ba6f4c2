package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pollpulse/api/internal/config"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

// FileStore uploads blobs to an S3-compatible bucket and hands back public URLs.
type FileStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewFileStore(cfg config.S3) (ports.FileStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = client.EndpointURL().String() + "/" + cfg.Bucket
	}

	return &FileStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores the blob under a timestamp-prefixed key. Failures are not
// retried; callers surface them as-is.
func (s *FileStore) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}

	return s.baseURL + "/" + key, nil
}
