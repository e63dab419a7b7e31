package types

import (
	"github.com/go-playground/validator/v10"
)

// UpdateFieldRequest is a single form-field edit.
// Unknown field names are ignored by the editor; an absent field is a malformed request.
// ExpectedRevision, when set, must match the session revision.
type UpdateFieldRequest struct {
	Field            string  `json:"field" validate:"required"`
	Value            string  `json:"value"`
	ExpectedRevision *uint64 `json:"expected_revision,omitempty"`
}

// SkillRequest adds one skill to the skill set. Blank skills are ignored by the editor.
type SkillRequest struct {
	Skill            string  `json:"skill"`
	ExpectedRevision *uint64 `json:"expected_revision,omitempty"`
}

// JumpRequest selects a wizard step directly, by number or by the section it
// edits. Out-of-range steps are ignored; Section wins when both are set.
type JumpRequest struct {
	Step    int    `json:"step"`
	Section string `json:"section,omitempty"`
}

// RevisionRequest carries only an optional revision precondition.
type RevisionRequest struct {
	ExpectedRevision *uint64 `json:"expected_revision,omitempty"`
}

// Validate validates the UpdateFieldRequest using the validator.
func (r *UpdateFieldRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
