package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	conflict string
}

func (s *minioServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
	conflict := s.conflict
	s.mu.Unlock()

	if conflict != "" && strings.TrimSuffix(r.URL.Path, "/") == "/demo-bucket" {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?><Error><Code>"+conflict+
			"</Code><Message>conflict</Message><BucketName>demo-bucket</BucketName><RequestId>req-1</RequestId></Error>")
		return
	}
	w.Header().Set("ETag", "\"d41d8cd98f00b204e9800998ecf8427e\"")
	w.WriteHeader(http.StatusOK)
}

func (s *minioServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func newMinioTestBackend(t *testing.T, srv *minioServer) *MinioBackend {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client, err := minio.New(strings.TrimPrefix(ts.URL, "http://"), &minio.Options{
		Creds:        credentials.NewStaticV4("AKIA", "SECRET", ""),
		Secure:       false,
		Region:       "us-east-1",
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	return NewMinioBackend(client)
}

func TestMinioBackend_CreateBucket(t *testing.T) {
	srv := &minioServer{}
	b := newMinioTestBackend(t, srv)
	if err := b.CreateBucket(context.Background(), "demo-bucket", "us-west-2"); err != nil {
		t.Fatalf("create: %v", err)
	}
	reqs := srv.recorded()
	if len(reqs) != 1 || reqs[0].method != http.MethodPut || strings.TrimSuffix(reqs[0].path, "/") != "/demo-bucket" {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	if !strings.Contains(reqs[0].body, "<LocationConstraint>us-west-2</LocationConstraint>") {
		t.Fatalf("location constraint missing from body %q", reqs[0].body)
	}
}

func TestMinioBackend_CreateBucketConflict(t *testing.T) {
	for code, want := range map[string]error{
		"BucketAlreadyOwnedByYou": ErrBucketAlreadyOwned,
		"BucketAlreadyExists":     ErrBucketAlreadyExists,
	} {
		t.Run(code, func(t *testing.T) {
			b := newMinioTestBackend(t, &minioServer{conflict: code})
			err := b.CreateBucket(context.Background(), "demo-bucket", "")
			if !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}

func TestMinioBackend_PutEmptyObject(t *testing.T) {
	srv := &minioServer{}
	b := newMinioTestBackend(t, srv)
	if err := b.PutEmptyObject(context.Background(), "demo-bucket", "code/"); err != nil {
		t.Fatalf("put: %v", err)
	}
	reqs := srv.recorded()
	if len(reqs) != 1 || reqs[0].method != http.MethodPut || reqs[0].path != "/demo-bucket/code/" {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	if b.Driver() != DriverMinio {
		t.Fatalf("driver = %s", b.Driver())
	}
}
