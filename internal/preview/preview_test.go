package preview

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyStateWithoutName(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.Email = "ada@x.com"
	doc.Personal.Summary = "Mathematician"
	doc.Skills = []string{"Go"}

	p := Render(doc, nil, DefaultOptions())

	assert.True(t, p.Empty)
	assert.Equal(t, PlaceholderMessage, p.Placeholder)
	assert.Empty(t, p.FullName)
	assert.Empty(t, p.ContactLine)
	assert.Empty(t, p.Skills)
}

func TestRender_NilDocument(t *testing.T) {
	p := Render(nil, nil, Options{})
	assert.True(t, p.Empty)
	assert.False(t, p.ScoreIncluded)
}

func TestRender_FirstNameAloneActivates(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FirstName = "Ada"

	p := Render(doc, nil, DefaultOptions())

	assert.False(t, p.Empty)
	assert.Equal(t, "Ada", p.FullName)
}

func TestRender_FullNameAndContactLine(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal = types.PersonalInfo{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@x.com",
		LinkedInURL: "linkedin.com/in/ada",
	}

	p := Render(doc, nil, DefaultOptions())

	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "ada@x.com · linkedin.com/in/ada", p.ContactLine, "blank phone is skipped")
}

func TestRender_SummaryTruncated(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FirstName = "Ada"
	doc.Personal.Summary = strings.Repeat("a", 200)

	p := Render(doc, nil, Options{SummaryLength: 20})

	assert.Equal(t, strings.Repeat("a", 20)+Ellipsis, p.Summary)
}

func TestRender_FirstFiveSkills(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.LastName = "Lovelace"
	doc.Skills = []string{"A", "B", "C", "D", "E", "F", "G"}

	p := Render(doc, nil, DefaultOptions())

	assert.Equal(t, "A • B • C • D • E", p.Skills)
	assert.Equal(t, 2, p.MoreSkills)
}

func TestRender_IncludesScore(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FirstName = "Ada"
	doc.Personal.LastName = "Lovelace"
	score := ats.Score(doc)

	p := Render(doc, &score, DefaultOptions())

	assert.True(t, p.ScoreIncluded)
	assert.Equal(t, 10, p.Score)
}

func TestRender_ScoreShownInEmptyState(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Skills = []string{"A", "B", "C", "D", "E"}
	score := ats.Score(doc)

	p := Render(doc, &score, DefaultOptions())

	assert.True(t, p.Empty)
	assert.Equal(t, 15, p.Score)
}

func TestRender_EntryLines(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FirstName = "Ada"
	doc.Education[0] = types.EducationEntry{ID: "e1", Institution: "University of London", Degree: "BSc", Field: "Mathematics", StartDate: "1830", EndDate: "1833"}
	doc.Experience[0] = types.ExperienceEntry{ID: "x1", Company: "Analytical Engine Co", Position: "Programmer", StartDate: "1842", EndDate: "1843", IsCurrent: true}
	doc.Experience = append(doc.Experience, types.ExperienceEntry{ID: "x2"})
	doc.Projects[0] = types.ProjectEntry{ID: "p1", Name: "Note G", Technologies: "Punch cards"}

	p := Render(doc, nil, DefaultOptions())

	require.Len(t, p.Education, 1)
	assert.Equal(t, "BSc in Mathematics, University of London (1830 - 1833)", p.Education[0])
	require.Len(t, p.Experience, 1, "blank entries are skipped")
	assert.Equal(t, "Programmer at Analytical Engine Co (1842 - Present)", p.Experience[0])
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Note G [Punch cards]", p.Projects[0])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "hello…", Truncate("hello world", 6), "trailing space before the cut is dropped")
	assert.Equal(t, "héllo…", Truncate("héllo wörld", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "", DateRange("", "", false))
	assert.Equal(t, "2020", DateRange("2020", "", false))
	assert.Equal(t, "2021", DateRange("", "2021", false))
	assert.Equal(t, "2020 - 2021", DateRange("2020", "2021", false))
	assert.Equal(t, "2020 - Present", DateRange("2020", "2021", true))
}
