package db

import (
	"time"

	"github.com/google/uuid"
)

// Pagination bounds for ListExports
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ExportRecord is the metadata of a stored export, without its content
type ExportRecord struct {
	ID          uuid.UUID `json:"id"`
	Owner       string    `json:"owner,omitempty"`
	Candidate   string    `json:"candidate"`
	Filename    string    `json:"filename"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

// normalizeLimit clamps a caller-supplied page size
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
