// Package event implements addressable, serializable event handlers: a
// bundle of callbacks reachable by a stable id, plus parameter-capture
// directives telling the client which fields of a browser event to
// forward.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Callback is a single event-handler function. It receives the event's
// data (already forwarded per Capture) and may fail; a failing callback
// aborts the remaining callbacks in the same Handler and propagates to the
// Layout.Trigger caller.
type Callback func(ctx context.Context, data []any) error

// Handler is an addressable, callable bundle of callbacks. Its id is
// stable for the Handler's lifetime. Invoke and Add hold an internal mutex,
// so a Handler is safe to call concurrently from multiple render tasks.
type Handler struct {
	id        string
	mu        sync.Mutex
	callbacks []Callback
	capture   Capture
}

// NewHandler creates an addressable Handler with a fresh stable id and the
// given parameter-capture directives.
func NewHandler(capture Capture) *Handler {
	return &Handler{id: uuid.New().String(), capture: capture}
}

// Wrap lifts a plain callable attribute value into a Handler — the
// reconciler's policy for turning callable attributes into addressable
// event handlers. Supported shapes: Callback, func(ctx, []any) error,
// func([]any) error, func(), and func(data []any).
func Wrap(v any) (*Handler, error) {
	cb, err := asCallback(v)
	if err != nil {
		return nil, err
	}
	h := NewHandler(Capture{})
	h.Add(cb)
	return h, nil
}

func asCallback(v any) (Callback, error) {
	switch fn := v.(type) {
	case Callback:
		return fn, nil
	case func(ctx context.Context, data []any) error:
		return fn, nil
	case func(data []any) error:
		return func(ctx context.Context, data []any) error { return fn(data) }, nil
	case func(data []any):
		return func(ctx context.Context, data []any) error { fn(data); return nil }, nil
	case func():
		return func(ctx context.Context, data []any) error { fn(); return nil }, nil
	default:
		return nil, fmt.Errorf("event: attribute value of type %T is not callable", v)
	}
}

// ID returns the handler's stable id.
func (h *Handler) ID() string { return h.id }

// Add appends a callback, invoked after any callbacks already added.
func (h *Handler) Add(cb Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
}

// Invoke awaits each callback in order with data. The first callback to
// fail stops the sequence and its error is returned to the caller.
func (h *Handler) Invoke(ctx context.Context, data []any) error {
	h.mu.Lock()
	callbacks := make([]Callback, len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.mu.Unlock()

	for _, cb := range callbacks {
		if err := cb(ctx, data); err != nil {
			return err
		}
	}
	return nil
}

// Serialize returns the descriptor embedded in the model output: {target:
// id, ...capture-directives}, the shape reserved for eventHandlers
// entries.
func (h *Handler) Serialize() map[string]any {
	d := map[string]any{"target": h.id}
	h.capture.apply(d)
	return d
}
