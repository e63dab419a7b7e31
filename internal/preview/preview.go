// Package preview projects a resume document into a compact, display-ready
// summary for the live preview pane.
package preview

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// DefaultSummaryLength is the rune count kept before the summary is cut
	DefaultSummaryLength = 150
	// DefaultSkillCount is how many skills the preview lists
	DefaultSkillCount = 5
	// SkillSeparator joins the listed skills
	SkillSeparator = " • "
	// ContactSeparator joins contact details
	ContactSeparator = " · "
	// Ellipsis marks truncated text
	Ellipsis = "…"
	// PlaceholderMessage is shown while no name has been entered
	PlaceholderMessage = "Start filling in your details to see a live preview"
	// presentLabel replaces the end date of a current position
	presentLabel = "Present"
)

// Options control truncation limits
type Options struct {
	SummaryLength int `json:"summary_length" yaml:"summary_length"`
	SkillCount    int `json:"skill_count" yaml:"skill_count"`
}

// DefaultOptions returns the standard preview limits.
func DefaultOptions() Options {
	return Options{
		SummaryLength: DefaultSummaryLength,
		SkillCount:    DefaultSkillCount,
	}
}

// Preview is the display-ready projection of a document
type Preview struct {
	Empty         bool     `json:"empty"`
	Placeholder   string   `json:"placeholder,omitempty"`
	FullName      string   `json:"full_name"`
	ContactLine   string   `json:"contact_line"`
	Summary       string   `json:"summary"`
	Skills        string   `json:"skills"`
	MoreSkills    int      `json:"more_skills"`
	Education     []string `json:"education"`
	Experience    []string `json:"experience"`
	Projects      []string `json:"projects"`
	Score         int      `json:"score"`
	ScoreIncluded bool     `json:"score_included"`
}

// Render builds the preview. score may be nil. The preview is empty whenever
// first and last name are both blank, whatever else has been entered.
func Render(doc *types.ResumeDocument, score *ats.Result, opts Options) Preview {
	opts = opts.withDefaults()

	var p Preview
	if score != nil {
		p.Score = score.Total
		p.ScoreIncluded = true
	}

	if doc == nil || (blank(doc.Personal.FirstName) && blank(doc.Personal.LastName)) {
		p.Empty = true
		p.Placeholder = PlaceholderMessage
		return p
	}

	personal := doc.Personal
	p.FullName = joinNonBlank(" ", personal.FirstName, personal.LastName)
	p.ContactLine = joinNonBlank(ContactSeparator, personal.Email, personal.Phone, personal.LinkedInURL, personal.PortfolioURL)
	p.Summary = Truncate(strings.TrimSpace(personal.Summary), opts.SummaryLength)

	shown := doc.Skills
	if len(shown) > opts.SkillCount {
		p.MoreSkills = len(shown) - opts.SkillCount
		shown = shown[:opts.SkillCount]
	}
	p.Skills = strings.Join(shown, SkillSeparator)

	p.Education = educationLines(doc.Education)
	p.Experience = experienceLines(doc.Experience)
	p.Projects = projectLines(doc.Projects)

	return p
}

// Truncate keeps the first n runes of s and appends Ellipsis when it cut anything.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " ") + Ellipsis
}

// DateRange formats a start/end pair; an empty end reads as "Present" when current.
func DateRange(start, end string, current bool) string {
	if current {
		end = presentLabel
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}

func educationLines(entries []types.EducationEntry) []string {
	lines := []string{}
	for _, e := range entries {
		if blank(e.Institution) && blank(e.Degree) {
			continue
		}
		line := joinNonBlank(", ", joinNonBlank(" in ", e.Degree, e.Field), e.Institution)
		if dates := DateRange(e.StartDate, e.EndDate, false); dates != "" {
			line += " (" + dates + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func experienceLines(entries []types.ExperienceEntry) []string {
	lines := []string{}
	for _, e := range entries {
		if blank(e.Company) && blank(e.Position) {
			continue
		}
		line := joinNonBlank(" at ", e.Position, e.Company)
		if dates := DateRange(e.StartDate, e.EffectiveEndDate(), e.IsCurrent); dates != "" {
			line += " (" + dates + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func projectLines(entries []types.ProjectEntry) []string {
	lines := []string{}
	for _, e := range entries {
		if blank(e.Name) {
			continue
		}
		line := e.Name
		if !blank(e.Technologies) {
			line += " [" + strings.TrimSpace(e.Technologies) + "]"
		}
		lines = append(lines, line)
	}
	return lines
}

func (o Options) withDefaults() Options {
	if o.SummaryLength <= 0 {
		o.SummaryLength = DefaultSummaryLength
	}
	if o.SkillCount <= 0 {
		o.SkillCount = DefaultSkillCount
	}
	return o
}

func joinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
