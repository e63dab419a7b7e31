package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/wizard"
	"github.com/spf13/cobra"
)

func newPreviewCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the live preview and ATS checklist of a resume document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(root)
			if err != nil {
				return err
			}

			doc, err := schemas.LoadDocument(args[0])
			if err != nil {
				return err
			}
			session := wizard.NewSession(append(sessionOptions(cfg), wizard.WithDocument(doc))...)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				snap := session.Snapshot()
				if err := enc.Encode(map[string]any{"preview": snap.Preview, "score": snap.Score}); err != nil {
					return fmt.Errorf("failed to encode preview: %w", err)
				}
				return nil
			}

			printer := observability.NewPrinter(out)
			printer.PrintPreview(session.Preview())
			printer.PrintScore("ATS SCORE", session.Score())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print preview and score as JSON")
	return cmd
}
