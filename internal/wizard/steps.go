// Package wizard provides the five-step resume builder flow: the step
// controller and the session that owns the document being edited.
package wizard

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Step identifies one wizard page. Valid steps are FirstStep..LastStep.
type Step int

// Wizard steps in display order
const (
	StepPersonal Step = iota + 1
	StepEducation
	StepExperience
	StepSkills
	StepProjects
)

const (
	FirstStep = StepPersonal
	LastStep  = StepProjects
)

var stepTitles = map[Step]string{
	StepPersonal:   "Personal Info",
	StepEducation:  "Education",
	StepExperience: "Experience",
	StepSkills:     "Skills",
	StepProjects:   "Projects",
}

var stepSections = map[Step]string{
	StepPersonal:   types.SectionPersonal,
	StepEducation:  types.SectionEducation,
	StepExperience: types.SectionExperience,
	StepSkills:     types.SectionSkills,
	StepProjects:   types.SectionProjects,
}

// Steps returns every step in order.
func Steps() []Step {
	return []Step{StepPersonal, StepEducation, StepExperience, StepSkills, StepProjects}
}

// Valid reports whether s is a selectable step.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Title returns the display title.
func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return fmt.Sprintf("Step %d", int(s))
}

// Section returns the document section edited on this step.
func (s Step) Section() string {
	return stepSections[s]
}

func (s Step) String() string {
	return s.Title()
}

// StepForSection maps a document section name back to its step.
func StepForSection(section string) (Step, bool) {
	section = strings.ToLower(strings.TrimSpace(section))
	for step, sec := range stepSections {
		if sec == section {
			return step, true
		}
	}
	return 0, false
}

// CanEnter reports whether the step has what it builds on. Navigation never
// consults it; shells may use it to flag steps as "ready".
func CanEnter(step Step, doc *types.ResumeDocument) bool {
	if !step.Valid() {
		return false
	}
	if step == StepPersonal {
		return true
	}
	return doc != nil && StepComplete(StepPersonal, doc)
}

// StepComplete reports whether the step's minimum content is filled in.
func StepComplete(step Step, doc *types.ResumeDocument) bool {
	if doc == nil {
		return false
	}
	switch step {
	case StepPersonal:
		p := doc.Personal
		return filled(p.FirstName) && filled(p.LastName) && filled(p.Email)
	case StepEducation:
		for _, e := range doc.Education {
			if filled(e.Institution) && filled(e.Degree) {
				return true
			}
		}
	case StepExperience:
		for _, e := range doc.Experience {
			if filled(e.Company) && filled(e.Position) {
				return true
			}
		}
	case StepSkills:
		return len(doc.Skills) > 0
	case StepProjects:
		for _, p := range doc.Projects {
			if filled(p.Name) && filled(p.Description) {
				return true
			}
		}
	}
	return false
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
