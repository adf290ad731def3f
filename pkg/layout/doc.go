// Package layout implements the reconciler that drives a tree of
// element.Element values to a tree of element.Model values and back:
// Layout owns the rendering queue, the per-element state, and the global
// event-handler table, and exposes Render/Update/Trigger to a host.
//
// # Architecture
//
// A Layout holds:
//   - elementStates: id -> *ElementState, one per element currently mounted
//   - eventHandlers: handler id -> *event.Handler, the dispatch table Trigger
//     consults
//   - renderingQueue: a queue.FutureQueue driving concurrent element renders
//     to completion-order delivery
//   - root: the host-supplied root element.Element
//
// # Render Cycle
//
// Update enqueues a render of the given element on the rendering queue.
// Render drains the queue until empty and returns a LayoutUpdate describing
// what changed. Trigger looks up a handler by id and invokes it, silently
// ignoring unknown ids (the event may have been generated by a client that
// hasn't yet learned the element was unmounted).
//
// # Thread Safety
//
// Multiple FutureQueue worker goroutines can be rendering different elements
// of the same Layout concurrently, so elementStates and eventHandlers are
// guarded by a single mutex (l.mu) rather than confined to one scheduling
// goroutine — a deliberate departure from a cooperative-scheduling original
// that could assume a render ran to completion before the next one started.
// Each top-level Update call gets its own cycleResult accumulator threaded
// through every recursive renderElement/resolveModel call, so concurrently
// in-flight completions never mix their New/Old/Errors into each other's
// LayoutUpdate.
package layout
