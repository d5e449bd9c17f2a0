package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client used here.
type S3API interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend implements Backend on aws-sdk-go-v2.
type S3Backend struct {
	api S3API
}

// NewS3Backend wraps an S3 client (normally *s3.Client).
func NewS3Backend(api S3API) *S3Backend {
	return &S3Backend{api: api}
}

func (b *S3Backend) Driver() Driver { return DriverS3 }

func (b *S3Backend) CreateBucket(ctx context.Context, bucket, region string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	var optFns []func(*s3.Options)
	if region != "" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
		// sign for the target region, not whatever the client was built with
		optFns = append(optFns, func(o *s3.Options) { o.Region = region })
	}
	if _, err := b.api.CreateBucket(ctx, input, optFns...); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, classifyS3Error(err))
	}
	return nil
}

func (b *S3Backend) PutEmptyObject(ctx context.Context, bucket, key string) error {
	_, err := b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, classifyS3Error(err))
	}
	return nil
}

func classifyS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return classifyCode(apiErr.ErrorCode(), err)
	}
	return err
}
