package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"create-s3-buckets/env"
	"create-s3-buckets/logging"
	"create-s3-buckets/provision"
	"create-s3-buckets/report"
	"create-s3-buckets/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	cfg, err := env.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 2
	}
	policy, err := provision.ParseSeedPolicy(cfg.SeedPolicy)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 2
	}

	logger, closeLog, err := logging.New(cfg.LogFile)
	if err != nil {
		log.Printf("failed to set up logging: %v", err)
		return 2
	}
	defer closeLog()

	if msg := credentialWarning(cfg); msg != "" {
		logger.Warn(msg)
	}

	backend, err := utils.CreateBackend(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage session", zap.Error(err))
		return 1
	}

	var metrics *provision.Metrics
	if cfg.MetricsFile != "" {
		metrics = provision.NewMetrics()
	}
	p := provision.New(backend, logger.With(zap.String("driver", string(backend.Driver()))), metrics)
	p.Policy = policy

	rep := p.Run(ctx, provision.Plan{
		Bucket:  cfg.Bucket,
		Region:  cfg.Region,
		Folders: cfg.Folders,
	})
	if err := rep.Seed.Err(); err != nil {
		logger.Error("folder seeding incomplete", zap.Error(err))
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", zap.Error(err))
		}
	}
	if cfg.ReportFile != "" {
		doc := report.FromReport(string(backend.Driver()), rep, time.Now())
		if err := report.Write(cfg.ReportFile, doc); err != nil {
			logger.Error("failed to write report", zap.Error(err))
		}
	}

	if !rep.OK() {
		return 1
	}
	return 0
}

// credentialWarning explains what happens without AK/SK, or returns "".
func credentialWarning(cfg *env.Config) string {
	switch {
	case cfg.DryRun || cfg.HasStaticKeys():
		return ""
	case cfg.Endpoint != "":
		return "AK/SK not set, requests to " + cfg.Endpoint + " will be unsigned"
	default:
		return "AK/SK not set, falling back to the default credential chain"
	}
}
