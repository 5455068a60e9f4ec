// Package api implements the HTTP surface of the deckorder service:
// deck and note CRUD, the ordering endpoints (reorder, renumber, move),
// label resolution, and the collection verify trigger. Handlers decode
// and validate requests, call the services, and translate service and
// store errors into stable HTTP status codes.
package api
