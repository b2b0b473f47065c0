// Package app wires configuration, the file index for the selected
// backend, the resolver, and the fetcher into a single Run call that maps
// every outcome to a process exit status.
package app

import (
	"context"
	"io"
	"os"

	"github.com/tealrobotco/drivefetch/internal/common"
	"github.com/tealrobotco/drivefetch/internal/config"
	"github.com/tealrobotco/drivefetch/internal/fetcher"
	"github.com/tealrobotco/drivefetch/internal/index"
	"github.com/tealrobotco/drivefetch/internal/index/drive"
	"github.com/tealrobotco/drivefetch/internal/index/s3"
	"github.com/tealrobotco/drivefetch/internal/logging"
	"github.com/tealrobotco/drivefetch/internal/progress"
	"github.com/tealrobotco/drivefetch/internal/resolver"
)

// Exit codes. Everything that goes wrong — missing configuration, a file
// that never appeared, a failed transfer — maps to ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

type App struct {
	cfg *config.Config
	log logging.Logger

	// progressOut receives the console progress lines; newIndex builds the
	// backend client. Both are replaceable in tests.
	progressOut io.Writer
	newIndex    func(ctx context.Context, cfg *config.Config) (index.Index, error)
}

func New(cfg *config.Config, log logging.Logger) *App {
	return &App{
		cfg:         cfg,
		log:         log,
		progressOut: os.Stdout,
		newIndex:    buildIndex,
	}
}

func buildIndex(ctx context.Context, cfg *config.Config) (index.Index, error) {
	switch cfg.Backend {
	case config.BackendDrive:
		return drive.New(ctx, cfg.CredentialsBase64)
	case config.BackendS3:
		return s3.New(ctx, s3.Options{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, common.ErrUnknownBackend
	}
}

// Run locates the configured file and downloads it to the output path.
// No error escapes: every failure is logged and converted to ExitFailure.
func (a *App) Run(ctx context.Context) int {
	if err := a.cfg.Validate(); err != nil {
		a.log.Error(ctx, "invalid configuration", "error", err)
		return ExitFailure
	}

	ix, err := a.newIndex(ctx, a.cfg)
	if err != nil {
		a.log.Error(ctx, "storage client setup failed", "backend", a.cfg.Backend, "error", err)
		return ExitFailure
	}

	a.log.Info(ctx, "looking for file",
		"name", a.cfg.FileName,
		"container", a.cfg.ContainerID,
		"backend", a.cfg.Backend,
	)

	res := resolver.New(ix, a.log, a.cfg.Verbose)
	handle, err := res.Resolve(ctx,
		index.Query{Name: a.cfg.FileName, ContainerID: a.cfg.ContainerID},
		resolver.Policy{MaxAttempts: a.cfg.MaxAttempts, Delay: a.cfg.RetryDelay},
	)
	if err != nil {
		a.log.Error(ctx, "file could not be resolved", "name", a.cfg.FileName, "error", err)
		return ExitFailure
	}

	reporter := progress.NewReporter(a.progressOut)
	fet := fetcher.New(ix, a.log, fetcher.Options{
		ChunkSize: a.cfg.ChunkSize,
		Progress:  reporter.Report,
	})
	if err := fet.Fetch(ctx, handle, a.cfg.OutputPath); err != nil {
		a.log.Error(ctx, "download failed", "name", handle.Name, "error", err)
		return ExitFailure
	}

	a.log.Info(ctx, "successfully downloaded", "name", handle.Name, "dest", a.cfg.OutputPath)
	return ExitSuccess
}
