package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/deckorder-api/internal/api/shared"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
	"github.com/phrazzld/deckorder-api/internal/redact"
	"github.com/phrazzld/deckorder-api/internal/service"
)

// ReorderRequest represents the request body for reordering a deck.
// NoteIDs must list every note in the deck exactly once, in the desired
// display order.
type ReorderRequest struct {
	NoteIDs []uuid.UUID `json:"note_ids" validate:"required,min=1"`
}

// MoveRequest represents the request body for moving a note one step
// within its deck.
type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// OrderChangeResponse represents the outcome of a reorder or renumber:
// how many notes received a new position, and the deck's notes in their
// resulting display order.
type OrderChangeResponse struct {
	Assigned int            `json:"assigned"`
	Notes    []NoteResponse `json:"notes"`
}

// MoveResponse represents the outcome of a move. Moved is false when the
// note was already at the deck boundary.
type MoveResponse struct {
	Moved bool         `json:"moved"`
	Note  NoteResponse `json:"note"`
}

// OrderHandler handles ordering-related HTTP requests
type OrderHandler struct {
	orderService service.OrderService
	noteService  service.NoteService
	logger       *slog.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	orderService service.OrderService,
	noteService service.NoteService,
	logger *slog.Logger,
) *OrderHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for OrderHandler")
	}

	return &OrderHandler{
		orderService: orderService,
		noteService:  noteService,
		logger:       logger.With(slog.String("component", "order_handler")),
	}
}

// ReorderDeck handles POST /api/decks/{id}/reorder requests
// The desired order must cover the deck's notes exactly; a partial or
// foreign listing is rejected without changing any position.
func (h *OrderHandler) ReorderDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	// Parse request body
	var req ReorderRequest
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

	assignments, err := h.orderService.ReorderDeck(r.Context(), deckID, req.NoteIDs)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to reorder deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	h.respondWithDeckOrder(w, r, deckID, len(assignments), log)
}

// RenumberDeck handles POST /api/decks/{id}/renumber requests
// Renumbering compacts the deck's positions to 1..N while preserving the
// display order.
func (h *OrderHandler) RenumberDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	assignments, err := h.orderService.RenumberDeck(r.Context(), deckID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to renumber deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	h.respondWithDeckOrder(w, r, deckID, len(assignments), log)
}

// MoveNote handles POST /api/notes/{id}/move requests
// A move at the deck boundary is not an error; the response reports
// Moved false and the note unchanged.
func (h *OrderHandler) MoveNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	noteID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	// Parse request body
	var req MoveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("note_id", noteID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("note_id", noteID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.orderService.MoveNote(r.Context(), noteID, service.MoveDirection(req.Direction))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to move note"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("move handled",
		slog.String("note_id", noteID.String()),
		slog.String("direction", req.Direction),
		slog.Bool("moved", result.Moved))
	shared.RespondWithJSON(w, r, http.StatusOK, MoveResponse{
		Moved: result.Moved,
		Note:  noteToResponse(result.Note, ""),
	})
}

// respondWithDeckOrder writes the standard response for operations that
// rewrite deck positions: the assignment count plus the deck's notes in
// their new display order.
func (h *OrderHandler) respondWithDeckOrder(
	w http.ResponseWriter,
	r *http.Request,
	deckID uuid.UUID,
	assigned int,
	log *slog.Logger,
) {
	labeled, err := h.noteService.ListDeckNotes(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Order changed but listing the deck failed", err)
		return
	}

	notes := make([]NoteResponse, 0, len(labeled))
	for _, entry := range labeled {
		resp := noteToResponse(entry.Note, "")
		resp.Label = entry.Label
		notes = append(notes, resp)
	}

	log.Debug("deck order changed",
		slog.String("deck_id", deckID.String()),
		slog.Int("assigned", assigned))
	shared.RespondWithJSON(w, r, http.StatusOK, OrderChangeResponse{
		Assigned: assigned,
		Notes:    notes,
	})
}
