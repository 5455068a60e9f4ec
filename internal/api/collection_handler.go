package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/deckorder-api/internal/api/middleware"
	"github.com/phrazzld/deckorder-api/internal/api/shared"
	"github.com/phrazzld/deckorder-api/internal/events"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
	"github.com/phrazzld/deckorder-api/internal/task"
)

// VerifyAcceptedResponse represents the acknowledgement for a queued
// verification pass.
type VerifyAcceptedResponse struct {
	Status      string `json:"status"`
	RequestedBy string `json:"requested_by"`
}

// CollectionHandler handles collection-wide HTTP requests
type CollectionHandler struct {
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(eventEmitter events.EventEmitter, logger *slog.Logger) *CollectionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CollectionHandler")
	}

	return &CollectionHandler{
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "collection_handler")),
	}
}

// VerifyCollection handles POST /api/collection/verify requests
// It queues a verification pass that assigns positions to any notes
// lacking one; the pass itself runs asynchronously on the task runner.
func (h *CollectionHandler) VerifyCollection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	subject, ok := middleware.GetSubject(r)
	if !ok {
		log.Warn("subject not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Subject not found or invalid")
		return
	}

	event, err := task.NewCollectionVerifyEvent(subject)
	if err != nil {
		log.Error("failed to build verify event", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to queue verification", err)
		return
	}

	if err := h.eventEmitter.EmitEvent(r.Context(), event); err != nil {
		log.Error("failed to emit verify event", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to queue verification", err)
		return
	}

	log.Info("verification pass queued", slog.String("requested_by", subject))

	// Processing happens asynchronously, so acknowledge with 202 Accepted
	shared.RespondWithJSON(w, r, http.StatusAccepted, VerifyAcceptedResponse{
		Status:      "queued",
		RequestedBy: subject,
	})
}
