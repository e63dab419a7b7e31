package wizard

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNoExporter is returned when the terminal step is advanced without an exporter.
var ErrNoExporter = errors.New("wizard: no exporter configured")

// Exporter turns a finished document into a downloadable artifact.
type Exporter interface {
	Export(ctx context.Context, doc *types.ResumeDocument) (*types.ExportArtifact, error)
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(ctx context.Context, doc *types.ResumeDocument) (*types.ExportArtifact, error)

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, doc *types.ResumeDocument) (*types.ExportArtifact, error) {
	return f(ctx, doc)
}

// AdvanceResult describes what Advance did.
type AdvanceResult struct {
	Step     Step                  `json:"step"`
	Exported bool                  `json:"exported"`
	Artifact *types.ExportArtifact `json:"artifact,omitempty"`
}

// Snapshot is the derived view of a session after the latest mutation.
type Snapshot struct {
	Step     Step                  `json:"step"`
	Revision uint64                `json:"revision"`
	Document *types.ResumeDocument `json:"document"`
	Score    ats.Result            `json:"score"`
	Preview  preview.Preview       `json:"preview"`
}

// Session owns one resume document and the wizard state editing it.
// A Session is not safe for concurrent use.
type Session struct {
	doc        *types.ResumeDocument
	controller *Controller
	exporter   Exporter
	catalog    []string
	previewOpt preview.Options
	revision   uint64
}

// Option configures a Session.
type Option func(*Session)

// WithDocument resumes editing a previously built document. The document is
// copied and normalized: empty collections get a blank entry, entries without
// IDs get one, and blank or duplicate skills are dropped.
func WithDocument(doc *types.ResumeDocument) Option {
	return func(s *Session) {
		if doc != nil {
			s.doc = Normalize(doc)
		}
	}
}

// WithExporter sets the exporter used on the terminal step.
func WithExporter(e Exporter) Option {
	return func(s *Session) {
		s.exporter = e
	}
}

// WithCatalog overrides the suggested-skills catalog.
func WithCatalog(catalog []string) Option {
	return func(s *Session) {
		if len(catalog) > 0 {
			s.catalog = slices.Clone(catalog)
		}
	}
}

// WithPreviewOptions overrides preview rendering options.
func WithPreviewOptions(opts preview.Options) Option {
	return func(s *Session) {
		s.previewOpt = opts
	}
}

// NewSession starts on the first step with an empty document unless
// WithDocument is given.
func NewSession(opts ...Option) *Session {
	s := &Session{
		doc:        types.NewResumeDocument(),
		controller: NewController(),
		catalog:    editor.DefaultCatalog,
		previewOpt: preview.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize returns a copy of doc that satisfies the document invariants.
// A nil document normalizes to a fresh one.
func Normalize(doc *types.ResumeDocument) *types.ResumeDocument {
	if doc == nil {
		return types.NewResumeDocument()
	}
	out := doc.Clone()
	out.Education = editor.EnsureMinimum(withIDs(out.Education, func(e *types.EducationEntry) *string { return &e.ID }), types.NewEducationEntry)
	out.Experience = editor.EnsureMinimum(withIDs(out.Experience, func(e *types.ExperienceEntry) *string { return &e.ID }), types.NewExperienceEntry)
	out.Projects = editor.EnsureMinimum(withIDs(out.Projects, func(e *types.ProjectEntry) *string { return &e.ID }), types.NewProjectEntry)
	out.Skills = editor.NormalizeSkills(out.Skills)
	return out
}

// withIDs assigns fresh IDs to entries that lack one or repeat an earlier ID.
func withIDs[T any](entries []T, id func(*T) *string) []T {
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		p := id(&entries[i])
		if *p == "" || seen[*p] {
			*p = types.NewEntryID()
		}
		seen[*p] = true
	}
	return entries
}

// Document returns a copy of the current document.
func (s *Session) Document() *types.ResumeDocument {
	return s.doc.Clone()
}

// Revision increases by one for every edit that changed the document.
func (s *Session) Revision() uint64 {
	return s.revision
}

// Step returns the active step.
func (s *Session) Step() Step {
	return s.controller.Step()
}

// IsTerminal reports whether the active step is the last one.
func (s *Session) IsTerminal() bool {
	return s.controller.IsTerminal()
}

// GoNext moves forward one step.
func (s *Session) GoNext() { s.controller.GoNext() }

// GoBack moves back one step.
func (s *Session) GoBack() { s.controller.GoBack() }

// JumpTo selects a step directly; out-of-range values are ignored.
func (s *Session) JumpTo(n int) { s.controller.JumpTo(n) }

// Advance moves to the next step, or exports the document when already on
// the last step. Exporting never changes the step.
func (s *Session) Advance(ctx context.Context) (AdvanceResult, error) {
	if !s.controller.IsTerminal() {
		s.controller.GoNext()
		return AdvanceResult{Step: s.Step()}, nil
	}

	if s.exporter == nil {
		return AdvanceResult{Step: s.Step()}, ErrNoExporter
	}
	artifact, err := s.exporter.Export(ctx, s.doc.Clone())
	if err != nil {
		return AdvanceResult{Step: s.Step(), Artifact: artifact}, fmt.Errorf("failed to export resume: %w", err)
	}
	return AdvanceResult{Step: s.Step(), Exported: true, Artifact: artifact}, nil
}

// UpdatePersonal sets one personal-info field.
func (s *Session) UpdatePersonal(field, value string) {
	updated, ok := s.doc.Personal.WithField(field, value)
	if !ok || updated == s.doc.Personal {
		return
	}
	s.doc.Personal = updated
	s.revision++
}

// AddEntry appends a blank entry to a collection section and returns its ID.
// The bool result is false for sections that are not collections.
func (s *Session) AddEntry(section string) (string, bool) {
	var id string
	switch section {
	case types.SectionEducation:
		s.doc.Education = editor.Add(s.doc.Education, types.NewEducationEntry)
		id = s.doc.Education[len(s.doc.Education)-1].ID
	case types.SectionExperience:
		s.doc.Experience = editor.Add(s.doc.Experience, types.NewExperienceEntry)
		id = s.doc.Experience[len(s.doc.Experience)-1].ID
	case types.SectionProjects:
		s.doc.Projects = editor.Add(s.doc.Projects, types.NewProjectEntry)
		id = s.doc.Projects[len(s.doc.Projects)-1].ID
	default:
		return "", false
	}
	s.revision++
	return id, true
}

// RemoveEntry removes an entry unless it is the last one in its section.
func (s *Session) RemoveEntry(section, id string) {
	switch section {
	case types.SectionEducation:
		s.doc.Education = track(s, s.doc.Education, editor.Remove(s.doc.Education, id))
	case types.SectionExperience:
		s.doc.Experience = track(s, s.doc.Experience, editor.Remove(s.doc.Experience, id))
	case types.SectionProjects:
		s.doc.Projects = track(s, s.doc.Projects, editor.Remove(s.doc.Projects, id))
	}
}

// UpdateEntry sets one field of a collection entry. Stale IDs and unknown
// fields are ignored.
func (s *Session) UpdateEntry(section, id, field, value string) {
	switch section {
	case types.SectionEducation:
		s.doc.Education = track(s, s.doc.Education, editor.Update(s.doc.Education, id, field, value))
	case types.SectionExperience:
		s.doc.Experience = track(s, s.doc.Experience, editor.Update(s.doc.Experience, id, field, value))
	case types.SectionProjects:
		s.doc.Projects = track(s, s.doc.Projects, editor.Update(s.doc.Projects, id, field, value))
	}
}

// Entry returns the collection entry with the given ID.
func (s *Session) Entry(section, id string) (any, bool) {
	switch section {
	case types.SectionEducation:
		return editor.Find(s.doc.Education, id)
	case types.SectionExperience:
		return editor.Find(s.doc.Experience, id)
	case types.SectionProjects:
		return editor.Find(s.doc.Projects, id)
	}
	return nil, false
}

// AddSkill adds a trimmed, non-blank skill not already present.
func (s *Session) AddSkill(raw string) {
	s.doc.Skills = track(s, s.doc.Skills, editor.AddSkill(s.doc.Skills, raw))
}

// RemoveSkill removes a skill by exact match.
func (s *Session) RemoveSkill(skill string) {
	s.doc.Skills = track(s, s.doc.Skills, editor.RemoveSkill(s.doc.Skills, skill))
}

// SuggestedSkills yields catalog skills not yet in the document.
func (s *Session) SuggestedSkills() iter.Seq[string] {
	return editor.Suggested(s.doc.Skills, s.catalog)
}

// Score recomputes the ATS score of the current document.
func (s *Session) Score() ats.Result {
	return ats.Score(s.doc)
}

// Preview recomputes the preview of the current document.
func (s *Session) Preview() preview.Preview {
	score := ats.Score(s.doc)
	return preview.Render(s.doc, &score, s.previewOpt)
}

// Snapshot recomputes every derived view of the current state.
func (s *Session) Snapshot() Snapshot {
	score := ats.Score(s.doc)
	return Snapshot{
		Step:     s.Step(),
		Revision: s.revision,
		Document: s.doc.Clone(),
		Score:    score,
		Preview:  preview.Render(s.doc, &score, s.previewOpt),
	}
}

// track bumps the revision when next differs from prev and returns next.
func track[T comparable](s *Session, prev, next []T) []T {
	if !slices.Equal(prev, next) {
		s.revision++
	}
	return next
}
