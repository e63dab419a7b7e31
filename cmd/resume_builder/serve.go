package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port      int
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes wizard sessions, live previews, ATS scores and exports over REST and server-sent events.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outputDir
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVarP(&outputDir, "out", "o", config.DefaultOutputDir, "Directory exported resumes are written to")
	return cmd
}

func runServe(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, cfg)

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	if jwtCfg == nil {
		logger.Warn("JWT_SECRET not set, API runs without authentication")
	}

	stack, err := newExportStack(ctx, cfg, exportSetup{
		outputDir: cfg.OutputDir,
		database:  true,
		s3:        true,
	}, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	srvCfg := server.Config{
		Port:           cfg.Port,
		SessionTTL:     time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		Exporter:       stack.service,
		JWT:            jwtCfg,
		RateLimit:      ratelimit.LoadConfig(),
		SessionOptions: sessionOptions(cfg),
		TemplatePath:   cfg.Template,
		Logger:         logger,
	}
	if stack.db != nil {
		srvCfg.Exports = stack.db
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	return srv.Start(ctx)
}
