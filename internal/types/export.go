package types

import (
	"time"

	"github.com/google/uuid"
)

// Export formats
const (
	FormatLaTeX = "latex"
	FormatJSON  = "json"
)

// ExportArtifact is the downloadable result of exporting a resume document
type ExportArtifact struct {
	ID          uuid.UUID `json:"id"`
	Owner       string    `json:"owner,omitempty"` // Token subject of the exporting user, if any
	Candidate   string    `json:"candidate"`       // Full name on the resume
	Filename    string    `json:"filename"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	Content     []byte    `json:"-"`
	Score       int       `json:"score"`
	Locations   []string  `json:"locations,omitempty"` // Where each sink stored the content
	CreatedAt   time.Time `json:"created_at"`
}
