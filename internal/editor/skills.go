package editor

import (
	"iter"
	"slices"
	"strings"
)

// AddSkill trims raw and appends it unless it is blank or already present.
// Uniqueness is exact and case-sensitive: "React" and "react" are distinct.
func AddSkill(skills []string, raw string) []string {
	skill := strings.TrimSpace(raw)
	if skill == "" || slices.Contains(skills, skill) {
		return clone(skills)
	}
	out := make([]string, 0, len(skills)+1)
	out = append(out, skills...)
	return append(out, skill)
}

// RemoveSkill drops the first exact match of skill.
func RemoveSkill(skills []string, skill string) []string {
	idx := slices.Index(skills, skill)
	if idx < 0 {
		return clone(skills)
	}
	out := make([]string, 0, len(skills)-1)
	out = append(out, skills[:idx]...)
	return append(out, skills[idx+1:]...)
}

// Suggested yields catalog entries not present in skills, in catalog order.
// Nothing is cached: each range over the sequence re-checks skills.
func Suggested(skills []string, catalog []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, candidate := range catalog {
			if slices.Contains(skills, candidate) {
				continue
			}
			if !yield(candidate) {
				return
			}
		}
	}
}

// NormalizeSkills rebuilds a skill set through AddSkill, dropping blanks and duplicates.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = AddSkill(out, s)
	}
	return out
}
