package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/tui"
	"github.com/jonathan/resume-builder/internal/wizard"
	"github.com/spf13/cobra"
)

func newWizardCmd(root *rootOptions) *cobra.Command {
	var (
		resumeFile string
		outputDir  string
		logFile    string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Build a resume in the interactive terminal wizard",
		Long: `Open the five-step resume wizard in the terminal. Edits update the live
preview and ATS score immediately; advancing from the last step exports the
resume.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outputDir
			}

			// The terminal belongs to the TUI, so logs go to a file or nowhere.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}
			logger := newLogger(logOut, cfg)

			opts := sessionOptions(cfg)
			if resumeFile != "" {
				doc, err := schemas.LoadDocument(resumeFile)
				if err != nil {
					return err
				}
				opts = append(opts, wizard.WithDocument(doc))
				logger.Info("resuming document", "file", resumeFile)
			}

			stack, err := newExportStack(cmd.Context(), cfg, exportSetup{
				outputDir: cfg.OutputDir,
				format:    format,
				database:  true,
				s3:        true,
			}, logger)
			if err != nil {
				return err
			}
			defer stack.Close()
			opts = append(opts, wizard.WithExporter(stack.service))

			return tui.Run(cmd.Context(), wizard.NewSession(opts...), tui.WithLogger(logger))
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Resume document JSON file to continue editing")
	cmd.Flags().StringVarP(&outputDir, "out", "o", config.DefaultOutputDir, "Directory exported resumes are written to")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the wizard runs")
	cmd.Flags().StringVarP(&format, "format", "f", "latex", "Export format: latex or json")
	return cmd
}
