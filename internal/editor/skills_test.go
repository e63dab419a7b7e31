package editor

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSkill_TrimsAndAppends(t *testing.T) {
	out := AddSkill([]string{"Go"}, "  Kubernetes \t")
	assert.Equal(t, []string{"Go", "Kubernetes"}, out)
}

func TestAddSkill_BlankIsNoOp(t *testing.T) {
	skills := []string{"Go"}
	for _, raw := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, skills, AddSkill(skills, raw), "raw=%q", raw)
	}
}

func TestAddSkill_Idempotent(t *testing.T) {
	once := AddSkill(nil, "Python")
	twice := AddSkill(once, "Python")
	assert.Equal(t, once, twice)

	// trimmed form is what is compared
	assert.Equal(t, once, AddSkill(once, " Python "))
}

func TestAddSkill_CaseSensitive(t *testing.T) {
	out := AddSkill(AddSkill(nil, "React"), "react")
	assert.Equal(t, []string{"React", "react"}, out)
}

func TestAddSkill_DoesNotMutateInput(t *testing.T) {
	skills := make([]string, 1, 8)
	skills[0] = "Go"

	a := AddSkill(skills, "Rust")
	b := AddSkill(skills, "Zig")

	assert.Equal(t, []string{"Go", "Rust"}, a)
	assert.Equal(t, []string{"Go", "Zig"}, b)
}

func TestRemoveSkill(t *testing.T) {
	skills := []string{"Go", "SQL", "Docker"}

	assert.Equal(t, []string{"Go", "Docker"}, RemoveSkill(skills, "SQL"))
	assert.Equal(t, skills, RemoveSkill(skills, "sql"), "exact match only")
	assert.Equal(t, skills, RemoveSkill(skills, "Rust"))
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, skills)
}

func TestSuggested_ExcludesPresentKeepsOrder(t *testing.T) {
	catalog := []string{"Go", "Python", "SQL", "Git"}
	skills := []string{"SQL", "Go"}

	got := slices.Collect(Suggested(skills, catalog))
	assert.Equal(t, []string{"Python", "Git"}, got)
}

func TestSuggested_Restartable(t *testing.T) {
	catalog := []string{"Go", "Python"}
	seq := Suggested(nil, catalog)

	assert.Equal(t, catalog, slices.Collect(seq))
	assert.Equal(t, catalog, slices.Collect(seq))
}

func TestSuggested_EarlyStop(t *testing.T) {
	var got []string
	for s := range Suggested(nil, DefaultCatalog) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, DefaultCatalog[:3], got)
}

func TestNormalizeSkills(t *testing.T) {
	out := NormalizeSkills([]string{" Go", "", "Go", "go", "   ", "SQL"})
	assert.Equal(t, []string{"Go", "go", "SQL"}, out)
}
