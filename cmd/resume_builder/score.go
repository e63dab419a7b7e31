package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// fileScore is the score of one document, or why it could not be scored.
type fileScore struct {
	File   string      `json:"file"`
	Result *ats.Result `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
	err    error
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	var (
		asJSON   bool
		minScore int
	)

	cmd := &cobra.Command{
		Use:   "score <file>...",
		Short: "Compute the ATS readiness score of resume documents",
		Long:  "Validates and scores one or more resume document JSON files concurrently and prints the checklist for each.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(root)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			scores := scoreFiles(args)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(scores); err != nil {
					return fmt.Errorf("failed to encode scores: %w", err)
				}
			} else {
				printer := observability.NewPrinter(out)
				for _, s := range scores {
					if s.Error != "" {
						printer.PrintValidation(filepath.Base(s.File), s.err)
						continue
					}
					printer.PrintScore(filepath.Base(s.File), *s.Result)
				}
			}

			var failed, low int
			for _, s := range scores {
				switch {
				case s.Error != "":
					failed++
					logger.Debug("document not scored", "file", s.File, "error", s.Error)
				case s.Result.Total < minScore:
					low++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents could not be scored", failed, len(scores))
			}
			if low > 0 {
				return fmt.Errorf("%d of %d documents scored below %d", low, len(scores), minScore)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print scores as JSON")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Fail when any document scores below this value")
	return cmd
}

// scoreFiles loads and scores every file concurrently, keeping argument order.
func scoreFiles(files []string) []fileScore {
	scores := make([]fileScore, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			scores[i].File = file
			doc, err := schemas.LoadDocument(file)
			if err != nil {
				scores[i].err = err
				scores[i].Error = err.Error()
				return nil
			}
			result := ats.Score(doc)
			scores[i].Result = &result
			return nil
		})
	}
	_ = g.Wait()
	return scores
}
