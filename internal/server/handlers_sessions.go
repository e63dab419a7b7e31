package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// maxBodyBytes bounds request bodies; a full resume document fits easily.
const maxBodyBytes = 1 << 20

// SessionResponse is a session ID together with its current snapshot.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	wizard.Snapshot
}

// EntryResponse is returned when an entry is added.
type EntryResponse struct {
	EntryID string `json:"entry_id"`
	wizard.Snapshot
}

// AdvanceResponse is returned by the advance endpoint.
type AdvanceResponse struct {
	Result   wizard.AdvanceResult `json:"result"`
	Snapshot wizard.Snapshot      `json:"snapshot"`
	Warnings []string             `json:"warnings,omitempty"`
}

// owner returns the authenticated owner, or "" when the API runs without auth.
func (s *Server) owner(r *http.Request) string {
	owner, err := middleware.GetOwner(r)
	if err != nil {
		return ""
	}
	return owner
}

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return body, nil
}

// decodeJSON decodes the request body into v. An empty body is accepted
// only when optional is true.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if optional {
			return nil
		}
		return &ErrValidation{Field: "body", Message: "request body is required"}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// expectedRevision reads the optional expected_revision query parameter used
// by requests without a body.
func expectedRevision(r *http.Request) (*uint64, error) {
	raw := r.URL.Query().Get("expected_revision")
	if raw == "" {
		return nil, nil
	}
	rev, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, &ErrValidation{Field: "expected_revision", Message: "must be a non-negative integer"}
	}
	return &rev, nil
}

// collectionSection reports whether section names an entry collection.
func collectionSection(section string) bool {
	switch section {
	case types.SectionEducation, types.SectionExperience, types.SectionProjects:
		return true
	}
	return false
}

// handleCreateSession starts a wizard session, optionally resuming a document
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts []wizard.Option
	if len(bytes.TrimSpace(body)) > 0 {
		doc, err := schemas.ParseDocument(body)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts = append(opts, wizard.WithDocument(doc))
	}

	id, snap := s.sessions.Create(s.owner(r), opts...)
	w.Header().Set("Location", "/sessions/"+id)
	s.jsonResponse(w, http.StatusCreated, SessionResponse{SessionID: id, Snapshot: snap})
}

// handleGetSession returns the current snapshot
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var snap wizard.Snapshot
	err := s.sessions.View(id, s.owner(r), func(ws *wizard.Session) error {
		snap = ws.Snapshot()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: snap})
}

// handleDeleteSession discards a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.Delete(id, s.owner(r)) {
		s.writeError(w, r, &ErrSessionNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// update applies fn to the session named in the path and writes the snapshot.
func (s *Server) update(w http.ResponseWriter, r *http.Request, expected *uint64, fn func(*wizard.Session) error) {
	id := r.PathValue("id")
	snap, err := s.sessions.Update(id, s.owner(r), expected, fn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: snap})
}

// handleNext moves to the next step
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req types.RevisionRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, req.ExpectedRevision, func(ws *wizard.Session) error {
		ws.GoNext()
		return nil
	})
}

// handleBack moves to the previous step
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	var req types.RevisionRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, req.ExpectedRevision, func(ws *wizard.Session) error {
		ws.GoBack()
		return nil
	})
}

// handleJump selects a step directly; out-of-range steps leave it unchanged
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	var req types.JumpRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	n := req.Step
	if req.Section != "" {
		step, ok := wizard.StepForSection(req.Section)
		if !ok {
			s.writeError(w, r, &ErrValidation{Field: "section", Message: "unknown section"})
			return
		}
		n = int(step)
	}
	s.update(w, r, nil, func(ws *wizard.Session) error {
		ws.JumpTo(n)
		return nil
	})
}

// handleAdvance moves forward, or exports on the last step. A partial sink
// failure still returns the artifact, with the failures as warnings.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req types.RevisionRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	owner := s.owner(r)
	ctx := export.ContextWithOwner(r.Context(), owner)
	var result wizard.AdvanceResult
	snap, err := s.sessions.Update(r.PathValue("id"), owner, req.ExpectedRevision, func(ws *wizard.Session) error {
		res, err := ws.Advance(ctx)
		result = res
		return err
	})

	resp := AdvanceResponse{Result: result, Snapshot: snap}
	if err != nil {
		if result.Artifact == nil {
			s.writeError(w, r, err)
			return
		}
		resp.Warnings = []string{err.Error()}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleUpdatePersonal sets one personal-info field
func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFieldUpdate(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, req.ExpectedRevision, func(ws *wizard.Session) error {
		ws.UpdatePersonal(req.Field, req.Value)
		return nil
	})
}

func decodeFieldUpdate(w http.ResponseWriter, r *http.Request) (*types.UpdateFieldRequest, error) {
	var req types.UpdateFieldRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "field", Message: "field is required"}
	}
	return &req, nil
}

// handleAddEntry appends a blank entry to a collection section
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	id, section := r.PathValue("id"), r.PathValue("section")
	if !collectionSection(section) {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown section: %s", section))
		return
	}
	var req types.RevisionRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	var entryID string
	snap, err := s.sessions.Update(id, s.owner(r), req.ExpectedRevision, func(ws *wizard.Session) error {
		entryID, _ = ws.AddEntry(section)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, EntryResponse{EntryID: entryID, Snapshot: snap})
}

// handleUpdateEntry sets one field of an entry; stale entry IDs are ignored
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	section, entryID := r.PathValue("section"), r.PathValue("entry_id")
	if !collectionSection(section) {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown section: %s", section))
		return
	}
	req, err := decodeFieldUpdate(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, req.ExpectedRevision, func(ws *wizard.Session) error {
		ws.UpdateEntry(section, entryID, req.Field, req.Value)
		return nil
	})
}

// handleGetEntry returns one entry of a collection section
func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	section, entryID := r.PathValue("section"), r.PathValue("entry_id")
	if !collectionSection(section) {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown section: %s", section))
		return
	}
	var entry any
	err := s.sessions.View(r.PathValue("id"), s.owner(r), func(ws *wizard.Session) error {
		found, ok := ws.Entry(section, entryID)
		if !ok {
			return &ErrEntryNotFound{Section: section, ID: entryID}
		}
		entry = found
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleRemoveEntry removes an entry unless it is the last of its section
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	section, entryID := r.PathValue("section"), r.PathValue("entry_id")
	if !collectionSection(section) {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown section: %s", section))
		return
	}
	expected, err := expectedRevision(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, expected, func(ws *wizard.Session) error {
		ws.RemoveEntry(section, entryID)
		return nil
	})
}

// handleAddSkill adds a skill; blank and duplicate skills are ignored
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req types.SkillRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.update(w, r, req.ExpectedRevision, func(ws *wizard.Session) error {
		ws.AddSkill(req.Skill)
		return nil
	})
}

// handleRemoveSkill removes a skill by exact match
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	expected, err := expectedRevision(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skill := r.PathValue("skill")
	s.update(w, r, expected, func(ws *wizard.Session) error {
		ws.RemoveSkill(skill)
		return nil
	})
}

// handleSuggestedSkills lists catalog skills not yet added
func (s *Server) handleSuggestedSkills(w http.ResponseWriter, r *http.Request) {
	suggested := []string{}
	err := s.sessions.View(r.PathValue("id"), s.owner(r), func(ws *wizard.Session) error {
		for skill := range ws.SuggestedSkills() {
			suggested = append(suggested, skill)
		}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string][]string{"skills": suggested})
}
