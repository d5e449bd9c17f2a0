package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Call records one request seen by a Memory backend.
type Call struct {
	Op     string // "CreateBucket" or "PutObject"
	Bucket string
	Region string
	Key    string
}

// Memory is a Backend kept in process memory. It backs dry runs and lets
// tests script provider failures.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]string
	objects map[string]map[string]struct{}
	calls   []Call

	// BucketErr, when set, is returned by every CreateBucket.
	BucketErr error
	// KeyErrs maps object keys to the error PutEmptyObject returns for them.
	KeyErrs map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		buckets: make(map[string]string),
		objects: make(map[string]map[string]struct{}),
		KeyErrs: make(map[string]error),
	}
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) CreateBucket(_ context.Context, bucket, region string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "CreateBucket", Bucket: bucket, Region: region})
	if m.BucketErr != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, m.BucketErr)
	}
	if _, ok := m.buckets[bucket]; ok {
		return fmt.Errorf("create bucket %s: %w", bucket, ErrBucketAlreadyOwned)
	}
	m.buckets[bucket] = region
	m.objects[bucket] = make(map[string]struct{})
	return nil
}

func (m *Memory) PutEmptyObject(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "PutObject", Bucket: bucket, Key: key})
	if err := m.KeyErrs[key]; err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	objs, ok := m.objects[bucket]
	if !ok {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, errNoSuchBucket)
	}
	objs[key] = struct{}{}
	return nil
}

var errNoSuchBucket = errors.New("NoSuchBucket")

// Calls returns a copy of every request made so far, in order.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Has reports whether key was written into bucket.
func (m *Memory) Has(bucket, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[bucket][key]
	return ok
}
