package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// MinioBackend implements Backend for S3-compatible endpoints.
type MinioBackend struct {
	client *minio.Client
}

func NewMinioBackend(client *minio.Client) *MinioBackend {
	return &MinioBackend{client: client}
}

func (b *MinioBackend) Driver() Driver { return DriverMinio }

func (b *MinioBackend) CreateBucket(ctx context.Context, bucket, region string) error {
	if err := b.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, classifyCode(minio.ToErrorResponse(err).Code, err))
	}
	return nil
}

func (b *MinioBackend) PutEmptyObject(ctx context.Context, bucket, key string) error {
	if _, err := b.client.PutObject(ctx, bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return nil
}
