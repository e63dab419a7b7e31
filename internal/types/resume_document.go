// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strconv"

	"github.com/google/uuid"
)

// Personal info field names accepted by field updates
const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldLinkedInURL  = "linkedin_url"
	FieldPortfolioURL = "portfolio_url"
	FieldSummary      = "summary"
)

// Entry field names shared by the collection sections
const (
	FieldInstitution  = "institution"
	FieldDegree       = "degree"
	FieldField        = "field"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldGPA          = "gpa"
	FieldCompany      = "company"
	FieldPosition     = "position"
	FieldLocation     = "location"
	FieldIsCurrent    = "is_current"
	FieldDescription  = "description"
	FieldName         = "name"
	FieldTechnologies = "technologies"
	FieldLink         = "link"
)

// Section names for the editable parts of a resume document
const (
	SectionPersonal   = "personal"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
)

// ResumeDocument is the aggregate root holding everything entered for one resume.
// Education, Experience and Projects always hold at least one entry.
type ResumeDocument struct {
	Personal   PersonalInfo      `json:"personal"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
	Projects   []ProjectEntry    `json:"projects"`
}

// PersonalInfo holds contact details and the professional summary
type PersonalInfo struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LinkedInURL  string `json:"linkedin_url"`
	PortfolioURL string `json:"portfolio_url"`
	Summary      string `json:"summary"`
}

// EducationEntry represents one school or degree
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa"`
}

// ExperienceEntry represents one position held
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

// ProjectEntry represents one portfolio project
type ProjectEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
}

// NewResumeDocument returns an empty document with one blank entry per collection.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Education:  []EducationEntry{NewEducationEntry()},
		Experience: []ExperienceEntry{NewExperienceEntry()},
		Skills:     []string{},
		Projects:   []ProjectEntry{NewProjectEntry()},
	}
}

// NewEntryID generates a fresh collection entry ID.
func NewEntryID() string {
	return uuid.NewString()
}

// NewEducationEntry returns a blank education entry with a fresh ID.
func NewEducationEntry() EducationEntry {
	return EducationEntry{ID: NewEntryID()}
}

// NewExperienceEntry returns a blank experience entry with a fresh ID.
func NewExperienceEntry() ExperienceEntry {
	return ExperienceEntry{ID: NewEntryID()}
}

// NewProjectEntry returns a blank project entry with a fresh ID.
func NewProjectEntry() ProjectEntry {
	return ProjectEntry{ID: NewEntryID()}
}

// Clone returns a deep copy of the document.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := *d
	out.Education = append([]EducationEntry(nil), d.Education...)
	out.Experience = append([]ExperienceEntry(nil), d.Experience...)
	out.Skills = append([]string{}, d.Skills...)
	out.Projects = append([]ProjectEntry(nil), d.Projects...)
	return &out
}

// WithField returns a copy of p with the named field replaced.
// The bool result is false for unknown field names.
func (p PersonalInfo) WithField(field, value string) (PersonalInfo, bool) {
	switch field {
	case FieldFirstName:
		p.FirstName = value
	case FieldLastName:
		p.LastName = value
	case FieldEmail:
		p.Email = value
	case FieldPhone:
		p.Phone = value
	case FieldLinkedInURL:
		p.LinkedInURL = value
	case FieldPortfolioURL:
		p.PortfolioURL = value
	case FieldSummary:
		p.Summary = value
	default:
		return p, false
	}
	return p, true
}

// EntryID returns the entry's identifier.
func (e EducationEntry) EntryID() string { return e.ID }

// WithField returns a copy of e with the named field replaced.
func (e EducationEntry) WithField(field, value string) (EducationEntry, bool) {
	switch field {
	case FieldInstitution:
		e.Institution = value
	case FieldDegree:
		e.Degree = value
	case FieldField:
		e.Field = value
	case FieldStartDate:
		e.StartDate = value
	case FieldEndDate:
		e.EndDate = value
	case FieldGPA:
		e.GPA = value
	default:
		return e, false
	}
	return e, true
}

// EntryID returns the entry's identifier.
func (e ExperienceEntry) EntryID() string { return e.ID }

// WithField returns a copy of e with the named field replaced.
// is_current accepts anything strconv.ParseBool does; other values are rejected.
func (e ExperienceEntry) WithField(field, value string) (ExperienceEntry, bool) {
	switch field {
	case FieldCompany:
		e.Company = value
	case FieldPosition:
		e.Position = value
	case FieldLocation:
		e.Location = value
	case FieldStartDate:
		e.StartDate = value
	case FieldEndDate:
		e.EndDate = value
	case FieldIsCurrent:
		current, err := strconv.ParseBool(value)
		if err != nil {
			return e, false
		}
		e.IsCurrent = current
	case FieldDescription:
		e.Description = value
	default:
		return e, false
	}
	return e, true
}

// EffectiveEndDate returns the end date, or "" while the position is current.
func (e ExperienceEntry) EffectiveEndDate() string {
	if e.IsCurrent {
		return ""
	}
	return e.EndDate
}

// EntryID returns the entry's identifier.
func (p ProjectEntry) EntryID() string { return p.ID }

// WithField returns a copy of p with the named field replaced.
func (p ProjectEntry) WithField(field, value string) (ProjectEntry, bool) {
	switch field {
	case FieldName:
		p.Name = value
	case FieldDescription:
		p.Description = value
	case FieldTechnologies:
		p.Technologies = value
	case FieldLink:
		p.Link = value
	default:
		return p, false
	}
	return p, true
}

// FieldNames lists the editable field names for a section, in form order.
func FieldNames(section string) []string {
	switch section {
	case SectionPersonal:
		return []string{FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldLinkedInURL, FieldPortfolioURL, FieldSummary}
	case SectionEducation:
		return []string{FieldInstitution, FieldDegree, FieldField, FieldStartDate, FieldEndDate, FieldGPA}
	case SectionExperience:
		return []string{FieldCompany, FieldPosition, FieldLocation, FieldStartDate, FieldEndDate, FieldIsCurrent, FieldDescription}
	case SectionProjects:
		return []string{FieldName, FieldDescription, FieldTechnologies, FieldLink}
	default:
		return nil
	}
}
