package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/deckorder-api/internal/api/shared"
	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
	"github.com/phrazzld/deckorder-api/internal/redact"
	"github.com/phrazzld/deckorder-api/internal/service"
)

// CreateNoteRequest represents the request body for creating a new note
type CreateNoteRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"`
}

// NoteResponse represents the response data for a note. The label is the
// rendered deck-qualified position ("Spanish@00003"); notes without a
// position carry neither field.
type NoteResponse struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Position  int       `json:"position,omitempty"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	noteService service.NoteService
	deckService service.DeckService
	logger      *slog.Logger
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(
	noteService service.NoteService,
	deckService service.DeckService,
	logger *slog.Logger,
) *NoteHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NoteHandler")
	}

	return &NoteHandler{
		noteService: noteService,
		deckService: deckService,
		logger:      logger.With(slog.String("component", "note_handler")),
	}
}

// CreateNote handles POST /api/decks/{id}/notes requests
// The created note receives the next free position in the deck; the
// response includes the rendered label.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	// Parse request body
	var req CreateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("deck_id", deckID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("deck_id", deckID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	// Resolve the deck up front so the response can carry the label
	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), deckID, req.Front, req.Back)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create note"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("note created",
		slog.String("note_id", note.ID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("position", note.Position))
	shared.RespondWithJSON(w, r, http.StatusCreated, noteToResponse(note, deck.Name))
}

// GetNote handles GET /api/notes/{id} requests
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	noteID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(r.Context(), noteID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), note.DeckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, noteToResponse(note, deck.Name))
}

// ListDeckNotes handles GET /api/decks/{id}/notes requests
// Notes come back in display order: positioned notes first by position,
// then unpositioned notes.
func (h *NoteHandler) ListDeckNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	labeled, err := h.noteService.ListDeckNotes(r.Context(), deckID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list deck notes"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]NoteResponse, 0, len(labeled))
	for _, entry := range labeled {
		resp := noteToResponse(entry.Note, "")
		resp.Label = entry.Label
		response = append(response, resp)
	}

	log.Debug("listed deck notes",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ResolveLabel handles GET /api/labels/{label} requests
// The path value arrives percent-escaped when the client encodes the
// separator, so it is unescaped before parsing.
func (h *NoteHandler) ResolveLabel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	raw := chi.URLParam(r, "label")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing label parameter")
		return
	}
	label, err := url.PathUnescape(raw)
	if err != nil {
		label = raw
	}

	note, err := h.noteService.ResolveLabel(r.Context(), label)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to resolve label"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), note.DeckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("label resolved",
		slog.String("label", label),
		slog.String("note_id", note.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, noteToResponse(note, deck.Name))
}

// DeleteNote handles DELETE /api/notes/{id} requests
// The freed position stays vacant until the deck is renumbered.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	noteID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), noteID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete note"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("note deleted", slog.String("note_id", noteID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// noteToResponse converts a domain.Note to a NoteResponse. The deck name
// is used to render the label; pass an empty string to skip rendering.
func noteToResponse(note *domain.Note, deckName string) NoteResponse {
	resp := NoteResponse{
		ID:        note.ID.String(),
		DeckID:    note.DeckID.String(),
		Front:     note.Front,
		Back:      note.Back,
		Position:  note.Position,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if deckName != "" && note.Positioned() {
		resp.Label = position.FormatLabel(deckName, note.Position)
	}
	return resp
}
