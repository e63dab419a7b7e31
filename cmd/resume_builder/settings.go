package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// loadSettings resolves configuration: flags override the config file, which
// overrides built-in defaults. DATABASE_URL overrides the file's database URL.
func loadSettings(opts *rootOptions) (config.Config, error) {
	var fileCfg config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.Defaults())
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}
	if opts.verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	cfg.DatabaseURL = config.DatabaseURLFromEnv(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger and installs it as the slog default.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return logging.Setup(w, cfg.LogFormat, cfg.LogLevel)
}

func previewOptions(cfg config.Config) preview.Options {
	return preview.Options{
		SummaryLength: cfg.SummaryPreviewLength,
		SkillCount:    cfg.PreviewSkillCount,
	}
}

// sessionOptions are the wizard options every session created by a command gets.
func sessionOptions(cfg config.Config) []wizard.Option {
	return []wizard.Option{
		wizard.WithCatalog(cfg.SkillCatalog),
		wizard.WithPreviewOptions(previewOptions(cfg)),
	}
}

// exportStack is the export service with every configured sink.
type exportStack struct {
	service *export.Service
	db      *db.DB
}

// exportSetup selects the sinks built by newExportStack.
type exportSetup struct {
	outputDir string
	format    string
	database  bool
	s3        bool
}

// newExportStack wires the file sink plus, when configured, the PostgreSQL
// store and the S3 bucket.
func newExportStack(ctx context.Context, cfg config.Config, setup exportSetup, logger *slog.Logger) (*exportStack, error) {
	stack := &exportStack{}
	var sinks []export.Sink

	if setup.outputDir != "" {
		sinks = append(sinks, export.NewFileSink(setup.outputDir))
	}

	if setup.database && cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		stack.db = database
		sinks = append(sinks, db.NewExportStore(database))
		logger.Info("export store enabled", "sink", "postgres")
	}

	if setup.s3 {
		s3Cfg, err := config.NewS3Config()
		if err != nil {
			stack.Close()
			return nil, err
		}
		if s3Cfg != nil {
			sink, err := storage.NewS3SinkFromConfig(ctx, s3Cfg)
			if err != nil {
				stack.Close()
				return nil, fmt.Errorf("failed to configure S3 export sink: %w", err)
			}
			sinks = append(sinks, sink)
			logger.Info("export store enabled", "sink", sink.Name(), "bucket", s3Cfg.Bucket)
		}
	}

	format := setup.format
	if format == "" {
		format = types.FormatLaTeX
	}
	stack.service = export.NewService(
		export.WithTemplate(cfg.Template),
		export.WithFormat(format),
		export.WithSinks(sinks...),
		export.WithLogger(logger),
	)
	return stack, nil
}

// Close releases the database pool, if any.
func (s *exportStack) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
