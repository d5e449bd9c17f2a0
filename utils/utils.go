package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"create-s3-buckets/env"
	"create-s3-buckets/storage"
)

// fallbackRegion is what S3 calls the default region; used only when
// neither the config nor the SDK environment names one.
const fallbackRegion = "us-east-1"

// CreateBackend opens the session the run will use: memory for dry runs,
// minio-go when an endpoint is configured, AWS S3 otherwise.
func CreateBackend(ctx context.Context, cfg *env.Config) (storage.Backend, error) {
	switch {
	case cfg.DryRun:
		return storage.NewMemory(), nil
	case cfg.Endpoint != "":
		client, err := CreateMinioClient(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewMinioBackend(client), nil
	default:
		client, err := CreateS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Backend(client), nil
	}
}

// CreateS3Client builds an aws-sdk-go-v2 client. Static keys win when both
// are set; otherwise the SDK default credential chain applies.
func CreateS3Client(ctx context.Context, cfg *env.Config, optFns ...func(*s3.Options)) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.HasStaticKeys() {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = fallbackRegion
	}

	opts := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
	}}, optFns...)
	return s3.NewFromConfig(awsCfg, opts...), nil
}

// CreateMinioClient connects to the S3-compatible service at cfg.Endpoint.
func CreateMinioClient(cfg *env.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, minioOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return client, nil
}

func minioOptions(cfg *env.Config) *minio.Options {
	opts := &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	return opts
}
