// Package rendering provides functionality to render LaTeX resumes from templates.
package rendering

import (
	_ "embed"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTemplateName is the name reported for the embedded template
const DefaultTemplateName = "builtin:resume.tex"

//go:embed templates/resume.tex
var defaultTemplate string

// TemplateData represents the data structure passed to the LaTeX template.
// Every string is already escaped.
type TemplateData struct {
	Name       string
	Contact    []string
	Summary    string
	Education  []EducationSection
	Experience []ExperienceSection
	Skills     []string
	Projects   []ProjectSection
}

// EducationSection is one rendered education entry
type EducationSection struct {
	Institution string
	Degree      string
	GPA         string
	Dates       string
}

// ExperienceSection is one rendered position
type ExperienceSection struct {
	Company  string
	Position string
	Location string
	Dates    string // e.g., "01/2020 -- Present"
	Bullets  []string
}

// ProjectSection is one rendered project
type ProjectSection struct {
	Name         string
	Technologies string
	Link         string
	Description  string
}

// RenderLaTeX renders a LaTeX resume for doc. An empty templatePath uses the
// embedded template.
func RenderLaTeX(doc *types.ResumeDocument, templatePath string) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(doc)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Path: templatePath, Stage: StageExecute, Cause: err}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file, falling back to the
// embedded template when templatePath is empty
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, &TemplateError{Path: templatePath, Stage: StageLoad, Cause: err}
		}
		content = string(raw)
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"join":   strings.Join,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{Path: templatePath, Stage: StageParse, Cause: err}
	}

	return tmpl, nil
}

// buildTemplateData escapes the document and drops blank entries
func buildTemplateData(doc *types.ResumeDocument) *TemplateData {
	p := doc.Personal
	data := &TemplateData{
		Name:    EscapeLaTeX(strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))),
		Summary: EscapeLaTeX(strings.TrimSpace(p.Summary)),
	}

	for _, c := range []string{p.Email, p.Phone, p.LinkedInURL, p.PortfolioURL} {
		if c = strings.TrimSpace(c); c != "" {
			data.Contact = append(data.Contact, EscapeLaTeX(c))
		}
	}

	for _, e := range doc.Education {
		if blank(e.Institution) && blank(e.Degree) {
			continue
		}
		degree := strings.TrimSpace(e.Degree)
		if !blank(e.Field) {
			degree = strings.TrimSpace(degree + " in " + strings.TrimSpace(e.Field))
		}
		data.Education = append(data.Education, EducationSection{
			Institution: EscapeLaTeX(strings.TrimSpace(e.Institution)),
			Degree:      EscapeLaTeX(degree),
			GPA:         EscapeLaTeX(strings.TrimSpace(e.GPA)),
			Dates:       formatDateRange(e.StartDate, e.EndDate, false),
		})
	}

	for _, e := range doc.Experience {
		if blank(e.Company) && blank(e.Position) {
			continue
		}
		data.Experience = append(data.Experience, ExperienceSection{
			Company:  EscapeLaTeX(strings.TrimSpace(e.Company)),
			Position: EscapeLaTeX(strings.TrimSpace(e.Position)),
			Location: EscapeLaTeX(strings.TrimSpace(e.Location)),
			Dates:    formatDateRange(e.StartDate, e.EffectiveEndDate(), e.IsCurrent),
			Bullets:  splitBullets(e.Description),
		})
	}

	for _, s := range doc.Skills {
		data.Skills = append(data.Skills, EscapeLaTeX(s))
	}

	for _, pr := range doc.Projects {
		if blank(pr.Name) {
			continue
		}
		data.Projects = append(data.Projects, ProjectSection{
			Name:         EscapeLaTeX(strings.TrimSpace(pr.Name)),
			Technologies: EscapeLaTeX(strings.TrimSpace(pr.Technologies)),
			Link:         EscapeLaTeX(strings.TrimSpace(pr.Link)),
			Description:  EscapeLaTeX(strings.TrimSpace(pr.Description)),
		})
	}

	return data
}

// formatDateRange renders "start -- end", with "Present" for current positions
func formatDateRange(start, end string, current bool) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return EscapeLaTeX(end)
	case end == "":
		return EscapeLaTeX(start)
	default:
		return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
	}
}

// splitBullets turns a multi-line description into escaped bullet lines.
// Leading list markers are stripped.
func splitBullets(description string) []string {
	var bullets []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "-*•"))
		if line != "" {
			bullets = append(bullets, EscapeLaTeX(line))
		}
	}
	return bullets
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
