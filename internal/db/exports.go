package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

// ExportStore persists export artifacts. It is an export sink: the resume
// document itself is never stored.
type ExportStore struct {
	db *DB
}

// NewExportStore wraps db.
func NewExportStore(db *DB) *ExportStore {
	return &ExportStore{db: db}
}

// Name identifies the store in logs and sink errors.
func (s *ExportStore) Name() string {
	return "postgres"
}

// Store saves the artifact and returns its location as "postgres:<id>".
func (s *ExportStore) Store(ctx context.Context, artifact *types.ExportArtifact) (string, error) {
	if err := s.db.SaveExport(ctx, artifact); err != nil {
		return "", err
	}
	return "postgres:" + artifact.ID.String(), nil
}

// SaveExport inserts an export artifact, replacing any row with the same ID
func (db *DB) SaveExport(ctx context.Context, a *types.ExportArtifact) error {
	if a == nil {
		return fmt.Errorf("failed to save export: artifact is nil")
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_exports (id, owner, candidate, filename, format, content_type, content, score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET content = $7, score = $8`,
		a.ID, a.Owner, a.Candidate, a.Filename, a.Format, a.ContentType, a.Content, a.Score, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save export %s: %w", a.ID, err)
	}
	return nil
}

// GetExport retrieves an export with its content. It returns nil when no
// export has the ID.
func (db *DB) GetExport(ctx context.Context, id uuid.UUID) (*types.ExportArtifact, error) {
	var a types.ExportArtifact
	err := db.pool.QueryRow(ctx,
		`SELECT id, owner, candidate, filename, format, content_type, content, score, created_at
		 FROM resume_exports WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Owner, &a.Candidate, &a.Filename, &a.Format, &a.ContentType, &a.Content, &a.Score, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get export: %w", err)
	}
	return &a, nil
}

// ListExports returns the most recent exports of owner, newest first
func (db *DB) ListExports(ctx context.Context, owner string, limit int) ([]ExportRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, owner, candidate, filename, format, content_type, octet_length(content), score, created_at
		 FROM resume_exports WHERE owner = $1 ORDER BY created_at DESC LIMIT $2`,
		owner, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	records := []ExportRecord{}
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.ID, &r.Owner, &r.Candidate, &r.Filename, &r.Format, &r.ContentType, &r.Size, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return records, nil
}

// DeleteExport removes an export and reports whether it existed
func (db *DB) DeleteExport(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resume_exports WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete export: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
