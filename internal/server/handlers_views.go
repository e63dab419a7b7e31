package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// handleScore returns the ATS score and checklist
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var result ats.Result
	err := s.sessions.View(r.PathValue("id"), s.owner(r), func(ws *wizard.Session) error {
		result = ws.Score()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handlePreview returns the live preview
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var p preview.Preview
	err := s.sessions.View(r.PathValue("id"), s.owner(r), func(ws *wizard.Session) error {
		p = ws.Preview()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleExportTex renders the current document as LaTeX source
func (s *Server) handleExportTex(w http.ResponseWriter, r *http.Request) {
	var doc *types.ResumeDocument
	err := s.sessions.View(r.PathValue("id"), s.owner(r), func(ws *wizard.Session) error {
		doc = ws.Document()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tex, err := rendering.RenderLaTeX(doc, s.templatePath)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to render resume: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(doc, ".tex")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(tex)); err != nil {
		logging.FromContext(r.Context(), s.logger).Error("failed to write resume", "error", err)
	}
}

// handleEvents streams a snapshot after every change to the session
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id, owner := r.PathValue("id"), s.owner(r)

	updates, cancel, err := s.sessions.Subscribe(id, owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer cancel()

	var initial wizard.Snapshot
	if err := s.sessions.View(id, owner, func(ws *wizard.Session) error {
		initial = ws.Snapshot()
		return nil
	}); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := sse.WriteEvent(eventSnapshot, initial); err != nil {
		return
	}

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.done:
			sse.WriteClosed(id)
			return
		case snap, ok := <-updates:
			if !ok {
				sse.WriteClosed(id)
				return
			}
			if err := sse.WriteEvent(eventSnapshot, snap); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}

// handleListExports lists the caller's stored exports, newest first
func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export history is not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	records, err := s.exports.ListExports(r.Context(), s.owner(r), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"exports": records,
		"count":   len(records),
	})
}

// lookupExport fetches an export owned by the caller.
func (s *Server) lookupExport(r *http.Request) (*types.ExportArtifact, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	artifact, err := s.exports.GetExport(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if artifact == nil || artifact.Owner != s.owner(r) {
		return nil, &ErrExportNotFound{ID: raw}
	}
	return artifact, nil
}

// handleGetExport returns the metadata of one stored export
func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export history is not configured")
		return
	}
	artifact, err := s.lookupExport(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, artifact)
}

// handleGetExportContent downloads a stored export
func (s *Server) handleGetExportContent(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export history is not configured")
		return
	}
	artifact, err := s.lookupExport(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Content); err != nil {
		logging.FromContext(r.Context(), s.logger).Error("failed to write export", "error", err)
	}
}

// handleDeleteExport removes a stored export owned by the caller
func (s *Server) handleDeleteExport(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export history is not configured")
		return
	}
	artifact, err := s.lookupExport(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	deleted, err := s.exports.DeleteExport(r.Context(), artifact.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, &ErrExportNotFound{ID: artifact.ID.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
