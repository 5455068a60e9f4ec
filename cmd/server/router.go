package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/deckorder-api/internal/api"
	apiMiddleware "github.com/phrazzld/deckorder-api/internal/api/middleware"
)

// setupRouter builds the HTTP surface: chi middleware, one authenticated
// /api subtree, and the open health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	// Create API handlers using the application's services
	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	noteHandler := api.NewNoteHandler(app.noteService, app.deckService, app.logger)
	orderHandler := api.NewOrderHandler(app.orderService, app.noteService, app.logger)
	collectionHandler := api.NewCollectionHandler(app.eventEmitter, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// All API routes require a bearer token
		r.Use(authMiddleware.Authenticate)

		// Deck endpoints
		r.Post("/decks", deckHandler.CreateDeck)
		r.Get("/decks", deckHandler.ListDecks)
		r.Get("/decks/{id}", deckHandler.GetDeck)
		r.Delete("/decks/{id}", deckHandler.DeleteDeck)

		// Note endpoints scoped to a deck
		r.Post("/decks/{id}/notes", noteHandler.CreateNote)
		r.Get("/decks/{id}/notes", noteHandler.ListDeckNotes)

		// Ordering endpoints
		r.Post("/decks/{id}/reorder", orderHandler.ReorderDeck)
		r.Post("/decks/{id}/renumber", orderHandler.RenumberDeck)
		r.Post("/notes/{id}/move", orderHandler.MoveNote)

		// Note endpoints
		r.Get("/notes/{id}", noteHandler.GetNote)
		r.Delete("/notes/{id}", noteHandler.DeleteNote)

		// Label resolution
		r.Get("/labels/{label}", noteHandler.ResolveLabel)

		// Collection maintenance
		r.Post("/collection/verify", collectionHandler.VerifyCollection)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
