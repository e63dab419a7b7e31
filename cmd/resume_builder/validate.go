package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

func newValidateCmd(_ *rootOptions) *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [file]...",
		Short: "Validate resume documents against the JSON schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if printSchema {
				_, err := fmt.Fprintln(out, schemas.DocumentSchema())
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("requires at least 1 file")
			}

			printer := observability.NewPrinter(out)
			invalid := 0
			for _, file := range args {
				err := validateFile(file)
				if err != nil {
					invalid++
				}
				printer.PrintValidation(filepath.Base(file), err)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d documents are invalid", invalid, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "Print the resume document JSON schema and exit")
	return cmd
}

func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return schemas.ValidateDocument(data)
}
