package notes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/apperr"
	"github.com/notekeeper/backend/internal/auth"
	"github.com/notekeeper/backend/internal/db"
)

type NoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type NoteResponse struct {
	NoteID     int64     `json:"note_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	UserID     int64     `json:"user_id"`
}

type Handlers struct {
	service *Service
	logger  *zap.Logger
}

func NewHandlers(service *Service, logger *zap.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Create handles POST /note/.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if user == nil {
		apperr.Write(w, apperr.InvalidToken("Not authenticated"))
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"))
		return
	}

	note, err := h.service.Create(r.Context(), user, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			apperr.Write(w, apperr.Validation("Title is required"))
			return
		}
		h.logger.Error("note creation failed", zap.Int64("user_id", user.ID), zap.Error(err))
		apperr.Write(w, apperr.Internal("Error creating note"))
		return
	}

	writeJSON(w, http.StatusOK, toResponse(note))
}

// List handles GET /note/all. An owner with no notes gets an empty list,
// not an error.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if user == nil {
		apperr.Write(w, apperr.InvalidToken("Not authenticated"))
		return
	}

	found, err := h.service.List(r.Context(), user)
	if err != nil {
		h.logger.Error("note listing failed", zap.Int64("user_id", user.ID), zap.Error(err))
		apperr.Write(w, apperr.Internal("Error retrieving notes"))
		return
	}

	responses := make([]NoteResponse, 0, len(found))
	for i := range found {
		responses = append(responses, toResponse(&found[i]))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Get handles GET /note/{id}.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if user == nil {
		apperr.Write(w, apperr.InvalidToken("Not authenticated"))
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		apperr.Write(w, apperr.Validation("Invalid note ID"))
		return
	}

	note, err := h.service.Get(r.Context(), user, noteID)
	if err != nil {
		h.writeServiceError(w, user, err, "Error retrieving note")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(note))
}

// Update handles PUT /note/{id}.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if user == nil {
		apperr.Write(w, apperr.InvalidToken("Not authenticated"))
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		apperr.Write(w, apperr.Validation("Invalid note ID"))
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"))
		return
	}

	note, err := h.service.Update(r.Context(), user, noteID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			apperr.Write(w, apperr.Validation("Title is required"))
			return
		}
		h.writeServiceError(w, user, err, "Error updating note")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(note))
}

// Delete handles DELETE /note/{id}.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.CurrentUser(r.Context())
	if user == nil {
		apperr.Write(w, apperr.InvalidToken("Not authenticated"))
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		apperr.Write(w, apperr.Validation("Invalid note ID"))
		return
	}

	if err := h.service.Delete(r.Context(), user, noteID); err != nil {
		h.writeServiceError(w, user, err, "Error deleting note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, user *db.User, err error, fallback string) {
	switch {
	case errors.Is(err, db.ErrNoteNotFound):
		apperr.Write(w, apperr.NotFound("Note not found"))
	case errors.Is(err, ErrNotOwner):
		apperr.Write(w, apperr.Forbidden("Not authorized to access this note"))
	default:
		wrapped := apperr.Internal(fallback).WithCause(err)
		h.logger.Error("note operation failed", zap.Int64("user_id", user.ID), zap.Error(wrapped))
		apperr.Write(w, wrapped)
	}
}

func parseNoteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func toResponse(note *db.Note) NoteResponse {
	return NoteResponse{
		NoteID:     note.NoteID,
		Title:      note.Title,
		Body:       note.Body,
		CreatedAt:  note.CreatedAt,
		ModifiedAt: note.ModifiedAt,
		UserID:     note.UserID,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
