// Package provision creates a bucket and seeds "folder" marker objects in it.
//
// Neither operation returns a Go error. Outcomes come back as typed results
// so the caller decides whether a failure should stop the run.
package provision

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"create-s3-buckets/storage"
)

// Separator is appended to folder names to form marker keys.
const Separator = "/"

// SeedPolicy decides what SeedFolders does after a failed write.
type SeedPolicy int

const (
	// AbortOnError stops at the first failure; later folders are skipped.
	AbortOnError SeedPolicy = iota
	// ContinueOnError attempts every folder and collects the failures.
	ContinueOnError
)

// ParseSeedPolicy maps "abort" and "continue" to a SeedPolicy. Empty means
// abort.
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch s {
	case "abort", "":
		return AbortOnError, nil
	case "continue":
		return ContinueOnError, nil
	}
	return AbortOnError, fmt.Errorf("unknown seed policy %q", s)
}

// Provisioner runs bucket and folder requests against one backend session.
type Provisioner struct {
	backend storage.Backend
	logger  *zap.Logger
	metrics *Metrics

	Policy SeedPolicy
}

// New returns a Provisioner. logger and metrics may be nil.
func New(backend storage.Backend, logger *zap.Logger, metrics *Metrics) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		backend: backend,
		logger:  logger,
		metrics: metrics,
	}
}

// EnsureBucket makes exactly one create-bucket request. An empty region
// means the provider default and sends no location constraint.
func (p *Provisioner) EnsureBucket(ctx context.Context, bucket, region string) BucketResult {
	res := BucketResult{Bucket: bucket, Region: region}
	err := p.backend.CreateBucket(ctx, bucket, region)
	switch {
	case err == nil:
		res.Status = BucketCreated
		p.logger.Info("Bucket created", zap.String("bucket", bucket), zap.String("region", region))
	case errors.Is(err, storage.ErrBucketAlreadyOwned):
		res.Status = BucketAlreadyOwned
		p.logger.Info("Bucket already owned", zap.String("bucket", bucket), zap.String("region", region))
	default:
		res.Status = BucketFailed
		res.Err = err
		p.logger.Error("Bucket creation failed", zap.String("bucket", bucket), zap.Error(err))
	}
	p.metrics.observeBucket(res.Status)
	return res
}

// SeedFolders writes an empty object at name+"/" for every name, in order.
// The bucket is not checked first.
func (p *Provisioner) SeedFolders(ctx context.Context, bucket string, names []string) SeedResult {
	res := SeedResult{Bucket: bucket, Folders: make([]FolderResult, 0, len(names))}
	aborted := false
	for _, name := range names {
		fr := FolderResult{Name: name, Key: name + Separator}
		if aborted {
			fr.Skipped = true
		} else if err := p.backend.PutEmptyObject(ctx, bucket, fr.Key); err != nil {
			fr.Err = err
			p.logger.Error("Folder creation failed", zap.String("folder", name), zap.Error(err))
			aborted = p.Policy == AbortOnError
		} else {
			p.logger.Info("Created folder", zap.String("folder", name))
		}
		p.metrics.observeFolder(fr)
		res.Folders = append(res.Folders, fr)
	}
	return res
}
