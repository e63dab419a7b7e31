package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		outputDir string
		format    string
		template  string
		useDB     bool
		useS3     bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a resume document as LaTeX or JSON",
		Long: `Renders a resume document with the LaTeX template (or as JSON) and stores
it in the output directory. --db and --s3 additionally store it in PostgreSQL
(DATABASE_URL) and the EXPORT_S3_BUCKET bucket.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outputDir
			}
			if template != "" {
				cfg.Template = template
			}
			switch format {
			case types.FormatLaTeX, types.FormatJSON:
			default:
				return fmt.Errorf("unsupported format %q: use latex or json", format)
			}
			if useDB && cfg.DatabaseURL == "" {
				return fmt.Errorf("--db requires DATABASE_URL or database_url in the config file")
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg)

			doc, err := schemas.LoadDocument(args[0])
			if err != nil {
				return err
			}

			stack, err := newExportStack(cmd.Context(), cfg, exportSetup{
				outputDir: cfg.OutputDir,
				format:    format,
				database:  useDB,
				s3:        useS3,
			}, logger)
			if err != nil {
				return err
			}
			defer stack.Close()

			artifact, err := stack.service.Export(cmd.Context(), doc)
			observability.NewPrinter(cmd.OutOrStdout()).PrintExport(artifact)
			if err != nil {
				return fmt.Errorf("export incomplete: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", config.DefaultOutputDir, "Output directory")
	cmd.Flags().StringVarP(&format, "format", "f", types.FormatLaTeX, "Export format: latex or json")
	cmd.Flags().StringVarP(&template, "template", "t", "", "LaTeX template file (default: built-in template)")
	cmd.Flags().BoolVar(&useDB, "db", false, "Also store the export in PostgreSQL")
	cmd.Flags().BoolVar(&useS3, "s3", false, "Also upload the export to S3 when EXPORT_S3_BUCKET is set")
	return cmd
}
