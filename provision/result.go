package provision

import (
	"github.com/fishy/errbatch"
)

// Status is the outcome of a bucket creation attempt.
type Status int

const (
	BucketFailed Status = iota
	BucketCreated
	// BucketAlreadyOwned means the bucket already existed under the caller's
	// account. It counts as success.
	BucketAlreadyOwned
)

func (s Status) String() string {
	switch s {
	case BucketCreated:
		return "created"
	case BucketAlreadyOwned:
		return "already_owned"
	default:
		return "failed"
	}
}

// BucketResult reports what EnsureBucket did.
type BucketResult struct {
	Bucket string
	Region string
	Status Status
	Err    error
}

// OK reports whether the bucket is usable after the call.
func (r BucketResult) OK() bool {
	return r.Status == BucketCreated || r.Status == BucketAlreadyOwned
}

// FolderResult is the outcome for a single folder marker.
type FolderResult struct {
	Name string
	Key  string
	Err  error
	// Skipped is set when an earlier failure aborted the loop before this
	// folder was attempted.
	Skipped bool
}

func (r FolderResult) OK() bool { return r.Err == nil && !r.Skipped }

// SeedResult reports every folder in input order.
type SeedResult struct {
	Bucket  string
	Folders []FolderResult
}

// Err compiles all folder failures into one error, nil if there were none.
// Skipped folders are not errors on their own.
//
// A single failure comes back as-is. Two or more come back as an
// *errbatch.ErrBatch, which does not unwrap, so errors.Is only sees through
// it in the single-failure case. Use Errors to inspect each failure.
func (r SeedResult) Err() error {
	var batch errbatch.ErrBatch
	for _, f := range r.Folders {
		batch.Add(f.Err)
	}
	return batch.Compile()
}

// Errors returns every folder failure in input order.
func (r SeedResult) Errors() []error {
	var errs []error
	for _, f := range r.Folders {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Created counts folders whose marker was written.
func (r SeedResult) Created() int {
	n := 0
	for _, f := range r.Folders {
		if f.OK() {
			n++
		}
	}
	return n
}

func (r SeedResult) OK() bool {
	for _, f := range r.Folders {
		if !f.OK() {
			return false
		}
	}
	return true
}

// Report is the outcome of a full Run.
type Report struct {
	Bucket BucketResult
	Seed   SeedResult
}

func (r Report) OK() bool { return r.Bucket.OK() && r.Seed.OK() }
