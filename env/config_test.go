package env

import (
	"path/filepath"
	"reflect"
	"testing"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"AK": "key",
		"SK": "secret",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Region != DefaultRegion {
		t.Errorf("region = %q, want %q", cfg.Region, DefaultRegion)
	}
	if cfg.Bucket != DefaultBucket {
		t.Errorf("bucket = %q, want %q", cfg.Bucket, DefaultBucket)
	}
	if !reflect.DeepEqual(cfg.Folders, []string{"input", "output", "code"}) {
		t.Errorf("folders = %v", cfg.Folders)
	}
	if cfg.SeedPolicy != "abort" {
		t.Errorf("seed policy = %q", cfg.SeedPolicy)
	}
	if !cfg.Secure || cfg.PathStyle {
		t.Errorf("secure=%v pathStyle=%v", cfg.Secure, cfg.PathStyle)
	}
	if filepath.Base(cfg.LogFile) != DefaultLogFile {
		t.Errorf("log file = %q", cfg.LogFile)
	}
	if !cfg.HasStaticKeys() {
		t.Error("expected static keys")
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"ENDPOINT":        "localhost:9000",
		"ENDPOINT_SECURE": "false",
		"PATH_STYLE":      "TRUE",
		"DRY_RUN":         "true",
		"REGION":          "",
		"BUCKET_NAME":     "demo-bucket",
		"FOLDER_NAMES":    "input/, output ,,code//",
		"SEED_POLICY":     "Continue",
		"LOG_FILE":        "/tmp/run.log",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "localhost:9000" || cfg.Secure || !cfg.PathStyle {
		t.Errorf("endpoint settings wrong: %+v", cfg)
	}
	if !cfg.DryRun {
		t.Error("expected dry run")
	}
	if cfg.Region != "" {
		t.Errorf("region = %q, want empty", cfg.Region)
	}
	if !reflect.DeepEqual(cfg.Folders, []string{"input", "output", "code"}) {
		t.Errorf("folders = %v", cfg.Folders)
	}
	if cfg.SeedPolicy != "continue" {
		t.Errorf("seed policy = %q", cfg.SeedPolicy)
	}
	if cfg.LogFile != "/tmp/run.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
	if cfg.HasStaticKeys() {
		t.Error("expected no static keys")
	}
}

func TestFromLookupErrors(t *testing.T) {
	for name, vars := range map[string]map[string]string{
		"empty bucket": {"BUCKET_NAME": " "},
		"bad policy":   {"SEED_POLICY": "retry"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := FromLookup(lookupFrom(vars)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseFolders(t *testing.T) {
	if got := ParseFolders(""); len(got) != 0 {
		t.Errorf("ParseFolders(\"\") = %v", got)
	}
	if got := ParseFolders("a,b/"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ParseFolders = %v", got)
	}
}
