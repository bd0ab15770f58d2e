package uploads

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "scribe/internal/app/errors"
)

// MinIOConfig configures the object storage archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinIOArchiver archives staged uploads to a MinIO or S3 bucket.
type MinIOArchiver struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewMinIOArchiver connects to the endpoint and creates the bucket when it
// does not exist.
func NewMinIOArchiver(ctx context.Context, cfg MinIOConfig) (*MinIOArchiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "create MinIO client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, apperrors.ErrStorageIO.Wrap(err, "check bucket existence")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, apperrors.ErrStorageIO.Wrap(err, "create bucket")
		}
	}

	return &MinIOArchiver{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// Archive uploads the file at path and returns its object key.
func (a *MinIOArchiver) Archive(ctx context.Context, path, originalName string) (string, error) {
	now := a.now()
	key := ObjectKey(now, originalName)

	contentType := mime.TypeByExtension(filepath.Ext(originalName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.client.FPutObject(ctx, a.bucket, key, path, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": originalName,
			"uploaded-at":   now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", apperrors.ErrStorageIO.Wrap(err, "upload to MinIO")
	}
	return key, nil
}

// ObjectKey names an archived upload: uploads/<unix>-<id8><ext>.
func ObjectKey(now time.Time, originalName string) string {
	return fmt.Sprintf("uploads/%d-%s%s", now.Unix(), uuid.New().String()[:8], filepath.Ext(originalName))
}
