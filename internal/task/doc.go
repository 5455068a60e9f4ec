// Package task manages background job queuing, processing, and lifecycle.
// It provides mechanisms for asynchronous execution of operations like the
// collection-wide position verification pass, ensuring they don't block
// HTTP request handling. Verification is idempotent, so tasks are held in
// memory only; a restart simply triggers a fresh pass.
package task
