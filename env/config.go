package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultRegion  = "us-west-2"
	DefaultBucket  = "rsimpao-aws-demonstration"
	DefaultLogFile = "create_s3_buckets.log"
)

// DefaultFolders is the folder list seeded when FOLDER_NAMES is unset.
var DefaultFolders = []string{"input", "output", "code"}

// Config is everything the command needs, read once at startup.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint selects an S3-compatible service through minio-go when set.
	Endpoint  string
	Secure    bool
	PathStyle bool
	// DryRun swaps the remote store for an in-memory one.
	DryRun bool

	Region  string
	Bucket  string
	Folders []string

	SeedPolicy  string
	LogFile     string
	MetricsFile string
	ReportFile  string
}

// HasStaticKeys reports whether both halves of the key pair were provided.
func (c *Config) HasStaticKeys() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Load reads .env (if any) into the process environment and builds a Config
// from it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		AccessKeyID:     get("AK", ""),
		SecretAccessKey: get("SK", ""),
		Endpoint:        get("ENDPOINT", ""),
		Secure:          !strings.EqualFold(get("ENDPOINT_SECURE", "true"), "false"),
		PathStyle:       strings.EqualFold(get("PATH_STYLE", "false"), "true"),
		DryRun:          strings.EqualFold(get("DRY_RUN", "false"), "true"),
		Region:          get("REGION", DefaultRegion),
		Bucket:          get("BUCKET_NAME", DefaultBucket),
		SeedPolicy:      strings.ToLower(get("SEED_POLICY", "abort")),
		LogFile:         get("LOG_FILE", defaultLogPath()),
		MetricsFile:     get("METRICS_FILE", ""),
		ReportFile:      get("REPORT_FILE", ""),
	}

	if raw, ok := lookup("FOLDER_NAMES"); ok {
		cfg.Folders = ParseFolders(raw)
	} else {
		cfg.Folders = append([]string(nil), DefaultFolders...)
	}

	if cfg.Bucket == "" {
		return nil, errors.New("BUCKET_NAME must not be empty")
	}
	switch cfg.SeedPolicy {
	case "abort", "continue":
	default:
		return nil, fmt.Errorf("invalid SEED_POLICY %q: want abort or continue", cfg.SeedPolicy)
	}
	return cfg, nil
}

// ParseFolders splits a comma separated list, dropping blanks and any
// trailing "/" since the seeder adds its own.
func ParseFolders(raw string) []string {
	folders := []string{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimRight(strings.TrimSpace(part), "/")
		if name == "" {
			continue
		}
		folders = append(folders, name)
	}
	return folders
}

// the log lives next to the binary, like the old script did
func defaultLogPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultLogFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultLogFile)
}
