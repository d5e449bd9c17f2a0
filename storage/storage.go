// Package storage is the thin object-store surface the provisioner needs:
// create a bucket and write a zero-byte object. Adapters exist for AWS S3,
// S3-compatible services through minio-go, and process memory.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Driver identifies a Backend implementation.
type Driver string

const (
	DriverS3     Driver = "s3"     // AWS S3 via aws-sdk-go-v2
	DriverMinio  Driver = "minio"  // S3-compatible endpoint via minio-go
	DriverMemory Driver = "memory" // dry runs and tests
)

// Backend is one authenticated session against an object store.
type Backend interface {
	// CreateBucket issues a single create-bucket request. An empty region
	// sends no location constraint.
	CreateBucket(ctx context.Context, bucket, region string) error
	// PutEmptyObject writes a zero-byte object under key.
	PutEmptyObject(ctx context.Context, bucket, key string) error
	Driver() Driver
}

var (
	// ErrBucketAlreadyOwned means the bucket exists and belongs to the caller.
	ErrBucketAlreadyOwned = errors.New("storage: bucket already owned by you")
	// ErrBucketAlreadyExists means the name is taken by another account.
	ErrBucketAlreadyExists = errors.New("storage: bucket name already taken")
)

// Provider error codes shared by S3 and S3-compatible services.
const (
	codeBucketAlreadyOwnedByYou = "BucketAlreadyOwnedByYou"
	codeBucketAlreadyExists     = "BucketAlreadyExists"
)

func classifyCode(code string, err error) error {
	switch code {
	case codeBucketAlreadyOwnedByYou:
		return fmt.Errorf("%w: %w", ErrBucketAlreadyOwned, err)
	case codeBucketAlreadyExists:
		return fmt.Errorf("%w: %w", ErrBucketAlreadyExists, err)
	}
	return err
}
