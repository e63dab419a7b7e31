package wizard

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExporter struct {
	calls int
	last  *types.ResumeDocument
	err   error
}

func (e *countingExporter) Export(_ context.Context, doc *types.ResumeDocument) (*types.ExportArtifact, error) {
	e.calls++
	e.last = doc
	if e.err != nil {
		return nil, e.err
	}
	return &types.ExportArtifact{Filename: "resume.tex", Format: "latex"}, nil
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StepPersonal, s.Step())
	assert.Equal(t, uint64(0), s.Revision())

	doc := s.Document()
	assert.Len(t, doc.Education, 1)
	assert.Len(t, doc.Experience, 1)
	assert.Len(t, doc.Projects, 1)
	assert.Empty(t, doc.Skills)
}

func TestSession_AdvanceMovesForward(t *testing.T) {
	exp := &countingExporter{}
	s := NewSession(WithExporter(exp))

	for want := StepEducation; want <= StepProjects; want++ {
		res, err := s.Advance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, res.Step)
		assert.False(t, res.Exported)
	}
	assert.Zero(t, exp.calls)
}

func TestSession_AdvanceOnLastStepExportsOnce(t *testing.T) {
	exp := &countingExporter{}
	s := NewSession(WithExporter(exp))
	s.UpdatePersonal(types.FieldFirstName, "Ada")
	s.JumpTo(5)

	res, err := s.Advance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, exp.calls)
	assert.True(t, res.Exported)
	require.NotNil(t, res.Artifact)
	assert.Equal(t, StepProjects, res.Step)
	assert.Equal(t, StepProjects, s.Step())
	assert.Equal(t, "Ada", exp.last.Personal.FirstName)
}

func TestSession_ExporterReceivesCopy(t *testing.T) {
	exp := &countingExporter{}
	s := NewSession(WithExporter(exp))
	s.JumpTo(5)

	_, err := s.Advance(context.Background())
	require.NoError(t, err)

	exp.last.Personal.FirstName = "Mutated"
	assert.Empty(t, s.Document().Personal.FirstName)
}

func TestSession_AdvanceWithoutExporter(t *testing.T) {
	s := NewSession()
	s.JumpTo(5)

	res, err := s.Advance(context.Background())

	assert.ErrorIs(t, err, ErrNoExporter)
	assert.False(t, res.Exported)
	assert.Equal(t, StepProjects, s.Step())
}

func TestSession_AdvanceExportFailure(t *testing.T) {
	boom := errors.New("disk full")
	exp := &countingExporter{err: boom}
	s := NewSession(WithExporter(exp))
	s.JumpTo(5)

	_, err := s.Advance(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, exp.calls)
	assert.Equal(t, StepProjects, s.Step())
}

func TestSession_ExporterFunc(t *testing.T) {
	called := false
	s := NewSession(WithExporter(ExporterFunc(func(_ context.Context, _ *types.ResumeDocument) (*types.ExportArtifact, error) {
		called = true
		return &types.ExportArtifact{}, nil
	})))
	s.JumpTo(5)

	_, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
}

func TestSession_ScoreReflectsEdits(t *testing.T) {
	s := NewSession()
	assert.Equal(t, 0, s.Score().Total)

	s.UpdatePersonal(types.FieldFirstName, "Ada")
	s.UpdatePersonal(types.FieldLastName, "Lovelace")
	s.UpdatePersonal(types.FieldEmail, "ada@x.com")
	assert.Equal(t, 20, s.Score().Total)
	assert.False(t, s.Preview().Empty)
}

func TestSession_AddRemoveEntryKeepsMinimum(t *testing.T) {
	s := NewSession()
	firstID := s.Document().Experience[0].ID

	s.RemoveEntry(types.SectionExperience, firstID)
	assert.Len(t, s.Document().Experience, 1, "last entry is never removed")
	assert.Equal(t, uint64(0), s.Revision())

	id, ok := s.AddEntry(types.SectionExperience)
	require.True(t, ok)
	assert.Len(t, s.Document().Experience, 2)
	assert.NotEqual(t, firstID, id)

	s.RemoveEntry(types.SectionExperience, firstID)
	doc := s.Document()
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, id, doc.Experience[0].ID)
}

func TestSession_AddEntryRejectsNonCollections(t *testing.T) {
	s := NewSession()
	_, ok := s.AddEntry(types.SectionSkills)
	assert.False(t, ok)
	_, ok = s.AddEntry("hobbies")
	assert.False(t, ok)
	assert.Equal(t, uint64(0), s.Revision())
}

func TestSession_UpdateEntry(t *testing.T) {
	s := NewSession()
	id := s.Document().Experience[0].ID

	s.UpdateEntry(types.SectionExperience, id, types.FieldCompany, "Acme")
	s.UpdateEntry(types.SectionExperience, id, types.FieldIsCurrent, "true")
	s.UpdateEntry(types.SectionExperience, "stale", types.FieldCompany, "Ghost")
	s.UpdateEntry(types.SectionExperience, id, "salary", "1000000")

	e := s.Document().Experience[0]
	assert.Equal(t, "Acme", e.Company)
	assert.True(t, e.IsCurrent)
	assert.Equal(t, uint64(2), s.Revision())
}

func TestSession_SkillsAndSuggestions(t *testing.T) {
	s := NewSession(WithCatalog([]string{"Go", "SQL", "Docker"}))

	s.AddSkill("  Go ")
	s.AddSkill("Go")
	s.AddSkill("   ")
	assert.Equal(t, []string{"Go"}, s.Document().Skills)
	assert.Equal(t, uint64(1), s.Revision())

	assert.Equal(t, []string{"SQL", "Docker"}, slices.Collect(s.SuggestedSkills()))

	s.RemoveSkill("go")
	assert.Equal(t, []string{"Go"}, s.Document().Skills, "removal is case-sensitive")
	s.RemoveSkill("Go")
	assert.Empty(t, s.Document().Skills)
	assert.Equal(t, uint64(2), s.Revision())
}

func TestSession_RevisionIgnoresNavigationAndNoops(t *testing.T) {
	s := NewSession()
	s.GoNext()
	s.GoBack()
	s.JumpTo(4)
	s.UpdatePersonal("nickname", "Countess")
	s.UpdatePersonal(types.FieldFirstName, "")
	assert.Equal(t, uint64(0), s.Revision())

	s.UpdatePersonal(types.FieldFirstName, "Ada")
	s.UpdatePersonal(types.FieldFirstName, "Ada")
	assert.Equal(t, uint64(1), s.Revision())
}

func TestSession_DocumentIsCopy(t *testing.T) {
	s := NewSession()
	doc := s.Document()
	doc.Personal.FirstName = "Mutated"
	doc.Skills = append(doc.Skills, "Injected")

	fresh := s.Document()
	assert.Empty(t, fresh.Personal.FirstName)
	assert.Empty(t, fresh.Skills)
}

func TestSession_Snapshot(t *testing.T) {
	s := NewSession()
	s.UpdatePersonal(types.FieldFirstName, "Ada")
	s.GoNext()

	snap := s.Snapshot()
	assert.Equal(t, StepEducation, snap.Step)
	assert.Equal(t, uint64(1), snap.Revision)
	assert.Equal(t, "Ada", snap.Document.Personal.FirstName)
	assert.Equal(t, snap.Score.Total, snap.Preview.Score)
	assert.Equal(t, "Ada", snap.Preview.FullName)
}

func TestWithDocument_Normalizes(t *testing.T) {
	in := &types.ResumeDocument{
		Personal:  types.PersonalInfo{FirstName: "Ada"},
		Education: []types.EducationEntry{{ID: "dup", Institution: "A"}, {ID: "dup", Institution: "B"}, {Institution: "C"}},
		Skills:    []string{"Go", " ", "Go", " SQL "},
	}

	s := NewSession(WithDocument(in))
	doc := s.Document()

	assert.Equal(t, StepPersonal, s.Step())
	require.Len(t, doc.Education, 3)
	ids := map[string]bool{}
	for _, e := range doc.Education {
		require.NotEmpty(t, e.ID)
		ids[e.ID] = true
	}
	assert.Len(t, ids, 3, "entry IDs are unique")
	assert.Equal(t, "dup", doc.Education[0].ID)
	assert.Len(t, doc.Experience, 1)
	assert.Len(t, doc.Projects, 1)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Skills)

	assert.Equal(t, "dup", in.Education[1].ID, "input is not modified")
}

func TestWithDocument_NilIgnored(t *testing.T) {
	s := NewSession(WithDocument(nil))
	assert.Len(t, s.Document().Education, 1)
}

func TestNormalize_Nil(t *testing.T) {
	doc := Normalize(nil)
	require.NotNil(t, doc)
	assert.Len(t, doc.Education, 1)
	assert.Len(t, doc.Experience, 1)
	assert.Len(t, doc.Projects, 1)
	assert.Empty(t, doc.Skills)
}

func TestSession_Entry(t *testing.T) {
	s := NewSession()
	id, ok := s.AddEntry(types.SectionProjects)
	require.True(t, ok)
	s.UpdateEntry(types.SectionProjects, id, types.FieldName, "Engine")

	entry, ok := s.Entry(types.SectionProjects, id)
	require.True(t, ok)
	assert.Equal(t, "Engine", entry.(types.ProjectEntry).Name)

	_, ok = s.Entry(types.SectionProjects, "missing")
	assert.False(t, ok)
	_, ok = s.Entry(types.SectionSkills, id)
	assert.False(t, ok)
}
