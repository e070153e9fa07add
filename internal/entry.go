// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/logicossoftware/go-stackfile/internal/report"
	"github.com/logicossoftware/go-stackfile/internal/scan"
	"github.com/logicossoftware/go-stackfile/internal/source"
)

// ErrCheckFailed is returned by check mode when any file has errors.
var ErrCheckFailed = errors.New("check failed")

// Run processes the configured files with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		mode:   ModeInspect,
		out:    os.Stdout,
		logOut: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if len(app.files) == 0 {
		return fmt.Errorf("no input files")
	}
	if app.mode != ModeInspect && app.mode != ModeCheck {
		return fmt.Errorf("unknown mode %q", app.mode)
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("mode", string(app.mode)),
		slog.Int("files", len(app.files)),
		slog.Int("concurrency", cfg.Inspect.Concurrency),
		slog.String("revision", cfg.Inspect.Revision),
		slog.String("charset", cfg.Inspect.Charset),
		slog.String("log_level", cfg.App.LogLevel.String()))

	reports, err := processAll(ctx, cfg, app.files, logger)
	if err != nil {
		return err
	}

	switch app.mode {
	case ModeCheck:
		return check(reports, logger)
	default:
		return report.Write(app.out, reports)
	}
}

// processAll loads and scans every file, at most cfg.Inspect.Concurrency at
// a time. Reports keep the order of files.
func processAll(ctx context.Context, cfg *Config, files []string, logger *slog.Logger) ([]*report.Report, error) {
	reports := make([]*report.Report, len(files))
	scanOpts := cfg.ScanOptions()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Inspect.Concurrency)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r, err := processFile(path, cfg, scanOpts)
			if err != nil {
				logger.Warn("load failed", slog.String("file", path), slog.String("error", err.Error()))
				r = report.Failed(path, err)
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func processFile(path string, cfg *Config, opts scan.Options) (*report.Report, error) {
	data, codec, err := source.Load(path, cfg.Source.MaxSize)
	if err != nil {
		return nil, err
	}
	res := scan.Scan(data, opts)
	return report.Build(report.Input{
		File:        path,
		Codec:       codec.String(),
		Size:        len(data),
		Fingerprint: cfg.Inspect.Fingerprint,
	}, res)
}

// check logs one line per file and one per failing block.
func check(reports []*report.Report, logger *slog.Logger) error {
	failed := 0
	for _, r := range reports {
		if r.Error != "" {
			failed++
			logger.Error("stack unreadable", slog.String("file", r.File), slog.String("error", r.Error))
			continue
		}
		for _, b := range r.Blocks {
			if b.Error != "" {
				logger.Warn("block error",
					slog.String("file", r.File),
					slog.Int("offset", b.Offset),
					slog.String("type", b.Type),
					slog.Int("id", int(b.ID)),
					slog.String("error", b.Error))
			}
		}
		level := slog.LevelInfo
		if !r.OK() {
			failed++
			level = slog.LevelError
		}
		logger.Log(context.Background(), level, "stack checked",
			slog.String("file", r.File),
			slog.String("codec", r.Codec),
			slog.Int("blocks", r.Summary.Blocks),
			slog.Int("errors", r.Summary.Errors),
			slog.Bool("terminated", r.Terminated),
			slog.String("stopped", r.Stopped))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failed, len(reports))
	}
	return nil
}
