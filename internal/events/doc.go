// Package events decouples the request path from background work.
//
// Components publish TaskRequestEvents describing work that should run
// asynchronously, such as a collection-wide position verification pass,
// without importing the machinery that executes it. Handlers register
// with an EventEmitter and turn events into queued tasks.
//
// The primary components are:
// - TaskRequestEvent: Represents a request to create a background task
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
