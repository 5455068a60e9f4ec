// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The service package implements the application layer, containing use cases
// that coordinate the flow of data between external interfaces (the HTTP API,
// the background task runner) and the domain layer. It abstracts away
// infrastructure details while orchestrating domain entities to fulfill
// business requirements.
//
// Key components:
//
// 1. Service Interfaces:
//   - Define application-specific operations available to the delivery mechanisms
//   - Each service focuses on a specific domain area (decks, notes, display order)
//
// 2. Use Case Implementations:
//   - Coordinate between repositories and the position planning service
//   - Apply transactional boundaries where an operation must read positions
//     and write them as one unit, taking the deck row lock first
//   - The collection verify pass deliberately runs without a wrapping
//     transaction so per-note successes persist even when later notes fail
//
// 3. Dependency Management:
//   - Services receive dependencies through constructor injection
//   - Constructors validate required dependencies and reject nil ones
//
// 4. Error Handling:
//   - Translate store-specific errors to application-level errors
//   - Provide meaningful error context for API responses
//
// The service layer depends on domain entities and repository interfaces (from
// store), but never on specific infrastructure implementations.
package service
