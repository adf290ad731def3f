package hook

import "errors"

// =============================================================================
// Sentinel Errors for Structured Side Effects
// =============================================================================

// ErrBudgetExceeded is returned when a storm budget limit is exceeded.
// This happens when too many Action starts occur within the configured time
// window, or too many effect runs occur within one tick.
//
// Applications should handle this by:
// - Logging the event for debugging
// - Optionally showing user feedback about rate limiting
// - Reducing the frequency of operations if possible
var ErrBudgetExceeded = errors.New("hook: storm budget exceeded")

// ErrQueueFull is returned when an Action's queue is full and cannot accept
// more work items. This applies to Actions with the PolicyQueue policy.
//
// Applications should handle this by:
// - Informing the user their action was not queued
// - Waiting before retrying
// - Using a different concurrency policy if appropriate
var ErrQueueFull = errors.New("hook: action queue full")

// ErrActionRunning reports that an Action is already in the Running state.
// No function in this package returns it: under DropWhileRunning, a run
// requested while the Action is running is dropped without an error.
var ErrActionRunning = errors.New("hook: action already running")
