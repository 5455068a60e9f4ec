package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/deckorder-api/internal/api/shared"
	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
	"github.com/phrazzld/deckorder-api/internal/redact"
	"github.com/phrazzld/deckorder-api/internal/service"
)

// CreateDeckRequest represents the request body for creating a new deck
type CreateDeckRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// DeckResponse represents the response data for a deck
type DeckResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	deckService service.DeckService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(deckService service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /api/decks requests
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Parse request body
	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), req.Name)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("deck created", slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// GetDeck handles GET /api/decks/{id} requests
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// ListDecks handles GET /api/decks requests
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	decks, err := h.deckService.ListDecks(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list decks"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		response = append(response, deckToResponse(deck))
	}

	log.Debug("listed decks", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// DeleteDeck handles DELETE /api/decks/{id} requests
// Deleting a deck removes its notes as well.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := pathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), deckID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("deck deleted", slog.String("deck_id", deckID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// deckToResponse converts a domain.Deck to a DeckResponse
func deckToResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:        deck.ID.String(),
		Name:      deck.Name,
		CreatedAt: deck.CreatedAt,
		UpdatedAt: deck.UpdatedAt,
	}
}

// pathUUID extracts and parses a UUID path parameter, writing a 400
// response and returning false when the parameter is missing or malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, param string, log *slog.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		log.Warn("missing path parameter", slog.String("param", param))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+param+" parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid path parameter", slog.String("param", param), slog.String("value", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+param+" format")
		return uuid.Nil, false
	}

	return id, true
}
