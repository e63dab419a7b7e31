// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip truncates a line to the inner box width, counting runes.
func clip(line string) string {
	if utf8.RuneCountInString(line) <= boxWidth-4 {
		return line
	}
	runes := []rune(line)
	return string(runes[:boxWidth-7]) + "..."
}

// PrintPreview outputs the live preview the wizard shows next to the form.
func (p *Printer) PrintPreview(pv preview.Preview) {
	if pv.Empty {
		p.printBox("PREVIEW", pv.Placeholder)
		return
	}

	var sb strings.Builder
	sb.WriteString(pv.FullName + "\n")
	if pv.ContactLine != "" {
		sb.WriteString(pv.ContactLine + "\n")
	}
	if pv.Summary != "" {
		sb.WriteString("\n" + pv.Summary + "\n")
	}

	writeList(&sb, "Education", pv.Education)
	writeList(&sb, "Experience", pv.Experience)
	if pv.Skills != "" {
		skills := pv.Skills
		if pv.MoreSkills > 0 {
			skills += fmt.Sprintf(" +%d more", pv.MoreSkills)
		}
		writeList(&sb, "Skills", []string{skills})
	}
	writeList(&sb, "Projects", pv.Projects)

	p.printBox("PREVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintScore outputs the ATS score and its checklist. title names the box,
// typically the scored file.
func (p *Printer) PrintScore(title string, result ats.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/%d\n\n", result.Total, ats.MaxScore))
	for _, c := range result.Criteria {
		mark := "✗"
		if c.Satisfied {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %-40s %2d/%-2d\n", mark, c.Label, c.Points, c.Weight))
	}
	if title == "" {
		title = "ATS SCORE"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs schema validation results for a document.
// A nil error prints a success box.
func (p *Printer) PrintValidation(title string, err error) {
	if err == nil {
		p.printBox(title, "✓ valid resume document")
		return
	}

	var sb strings.Builder
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		sb.WriteString(fmt.Sprintf("%d error(s):\n", len(ve.Errors)))
		for i, fe := range ve.Errors {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
		}
	} else {
		sb.WriteString(err.Error())
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where an exported artifact was stored.
func (p *Printer) PrintExport(artifact *types.ExportArtifact) {
	if artifact == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", artifact.ID))
	sb.WriteString(fmt.Sprintf("File:     %s\n", artifact.Filename))
	sb.WriteString(fmt.Sprintf("Format:   %s\n", artifact.Format))
	sb.WriteString(fmt.Sprintf("Score:    %d/%d\n", artifact.Score, ats.MaxScore))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", len(artifact.Content)))
	if len(artifact.Locations) > 0 {
		sb.WriteString("\nStored at:\n")
		for _, loc := range artifact.Locations {
			sb.WriteString(fmt.Sprintf("  • %s\n", loc))
		}
	}
	p.printBox("EXPORTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}
