// Package report writes a machine-readable summary of a provisioning run.
package report

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"create-s3-buckets/provision"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the JSON shape of a run report.
type Document struct {
	Driver       string    `json:"driver"`
	Bucket       string    `json:"bucket"`
	Region       string    `json:"region,omitempty"`
	BucketStatus string    `json:"bucket_status"`
	BucketError  string    `json:"bucket_error,omitempty"`
	Folders      []Folder  `json:"folders"`
	OK           bool      `json:"ok"`
	FinishedAt   time.Time `json:"finished_at"`
}

type Folder struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Created bool   `json:"created"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FromReport flattens a provision.Report.
func FromReport(driver string, rep provision.Report, finished time.Time) Document {
	doc := Document{
		Driver:       driver,
		Bucket:       rep.Bucket.Bucket,
		Region:       rep.Bucket.Region,
		BucketStatus: rep.Bucket.Status.String(),
		Folders:      make([]Folder, 0, len(rep.Seed.Folders)),
		OK:           rep.OK(),
		FinishedAt:   finished.UTC(),
	}
	if rep.Bucket.Err != nil {
		doc.BucketError = rep.Bucket.Err.Error()
	}
	for _, f := range rep.Seed.Folders {
		out := Folder{Name: f.Name, Key: f.Key, Created: f.OK(), Skipped: f.Skipped}
		if f.Err != nil {
			out.Error = f.Err.Error()
		}
		doc.Folders = append(doc.Folders, out)
	}
	return doc
}

// Write stores doc as indented JSON at path, replacing any previous report.
func Write(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
