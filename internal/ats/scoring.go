// Package ats computes the deterministic applicant-tracking-system readiness
// score of a resume document.
package ats

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// Criterion IDs
const (
	CriterionName       = "name"
	CriterionEmail      = "email"
	CriterionPhone      = "phone"
	CriterionLinkedIn   = "linkedin"
	CriterionSummary    = "summary"
	CriterionEducation  = "education"
	CriterionExperience = "experience"
	CriterionSkills     = "skills"
	CriterionProjects   = "projects"
)

// Weights for each criterion
const (
	nameWeight       = 10
	emailWeight      = 10
	phoneWeight      = 5
	linkedInWeight   = 5
	summaryWeight    = 15
	educationWeight  = 15
	experienceWeight = 20
	skillsWeight     = 15
	projectsWeight   = 5
)

const (
	// MaxScore is the upper clamp for Result.Total
	MaxScore = 100
	// SummaryMinLength is the rune count a summary must exceed
	SummaryMinLength = 50
	// SkillsTarget is the skill count that earns the full skills weight
	SkillsTarget = 5
	// pointsPerSkill is the partial credit per skill below SkillsTarget
	pointsPerSkill = 2
)

// Criterion is one checklist line of the score
type Criterion struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Satisfied bool   `json:"satisfied"`
	Weight    int    `json:"weight"`
	Points    int    `json:"points"`
}

// Result is the total score plus the checklist it was derived from
type Result struct {
	Total    int         `json:"total"`
	Criteria []Criterion `json:"criteria"`
}

// Score evaluates doc against the rule set. A nil document scores 0.
func Score(doc *types.ResumeDocument) Result {
	if doc == nil {
		doc = &types.ResumeDocument{}
	}
	p := doc.Personal

	criteria := []Criterion{
		flat(CriterionName, "Full name provided", nameWeight, !isBlank(p.FirstName) && !isBlank(p.LastName)),
		flat(CriterionEmail, "Email address provided", emailWeight, !isBlank(p.Email)),
		flat(CriterionPhone, "Phone number provided", phoneWeight, !isBlank(p.Phone)),
		flat(CriterionLinkedIn, "LinkedIn profile provided", linkedInWeight, !isBlank(p.LinkedInURL)),
		flat(CriterionSummary, "Professional summary over 50 characters", summaryWeight, utf8.RuneCountInString(p.Summary) > SummaryMinLength),
		flat(CriterionEducation, "Education with institution and degree", educationWeight, hasCompleteEducation(doc.Education)),
		flat(CriterionExperience, "Work experience with company and position", experienceWeight, hasCompleteExperience(doc.Experience)),
		skillsCriterion(len(doc.Skills)),
		flat(CriterionProjects, "Project with name and description", projectsWeight, hasCompleteProject(doc.Projects)),
	}

	total := 0
	for _, c := range criteria {
		total += c.Points
	}

	return Result{
		Total:    clamp(total, 0, MaxScore),
		Criteria: criteria,
	}
}

// Missing returns the criteria that are not yet satisfied.
func (r Result) Missing() []Criterion {
	var out []Criterion
	for _, c := range r.Criteria {
		if !c.Satisfied {
			out = append(out, c)
		}
	}
	return out
}

// Criterion looks up a checklist line by ID.
func (r Result) Criterion(id string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

func flat(id, label string, weight int, satisfied bool) Criterion {
	c := Criterion{ID: id, Label: label, Weight: weight, Satisfied: satisfied}
	if satisfied {
		c.Points = weight
	}
	return c
}

// skillsCriterion awards the full weight at SkillsTarget skills and
// pointsPerSkill per skill below it. Only this rule gives partial points.
func skillsCriterion(count int) Criterion {
	c := Criterion{
		ID:     CriterionSkills,
		Label:  "At least 5 skills listed",
		Weight: skillsWeight,
	}
	if count >= SkillsTarget {
		c.Satisfied = true
		c.Points = skillsWeight
		return c
	}
	c.Points = min(count*pointsPerSkill, skillsWeight)
	return c
}

func hasCompleteEducation(entries []types.EducationEntry) bool {
	for _, e := range entries {
		if !isBlank(e.Institution) && !isBlank(e.Degree) {
			return true
		}
	}
	return false
}

func hasCompleteExperience(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if !isBlank(e.Company) && !isBlank(e.Position) {
			return true
		}
	}
	return false
}

func hasCompleteProject(entries []types.ProjectEntry) bool {
	for _, e := range entries {
		if !isBlank(e.Name) && !isBlank(e.Description) {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
