package rendering

import (
	"errors"
	"fmt"
)

// ErrNilDocument is returned when RenderLaTeX is given no document.
var ErrNilDocument = errors.New("rendering: document is nil")

// Stage names the point at which a template failed.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageExecute Stage = "execute"
)

// TemplateError reports a LaTeX template that could not be used. Path is
// empty for the embedded template.
type TemplateError struct {
	Path  string
	Stage Stage
	Cause error
}

func (e *TemplateError) Error() string {
	name := e.Path
	if name == "" {
		name = "embedded template"
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Stage, name, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
