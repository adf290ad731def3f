package hook

import "sync"

// HookRef, the hook type NewRef records, is declared with the other
// HookType values in lifecycle.go.

// Ref holds a mutable reference to a value.
// In client runtimes (WASM), this is typically used to hold DOM element references.
// In server-driven mode, refs have limited use (DOM handles don't exist on server).
//
// Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	value T
	isSet bool
	mu    sync.RWMutex
}

// NewRef creates a new Ref with the given initial value.
//
// This is a hook-like API and MUST be called unconditionally during render:
// during a render it returns the same Ref from its hook slot on every render.
//
// Example:
//
//	inputRef := hook.NewRef[string]("")
//	inputRef.Set("focused")
func NewRef[T any](initial T) *Ref[T] {
	owner := getCurrentHook()
	inRender := owner != nil && isInRender()

	// Track hook call for dev-mode order validation
	TrackHook(HookRef)
	if inRender {
		if slot := owner.UseHookSlot(); slot != nil {
			ref, ok := slot.(*Ref[T])
			if !ok {
				panic("hook: hook slot type mismatch for Ref")
			}
			return ref
		}
	}

	ref := &Ref[T]{
		value: initial,
		isSet: false, // Not set until attached to DOM
	}
	if inRender {
		owner.SetHookSlot(ref)
	}
	return ref
}

// Current returns the current value of the ref.
// For DOM refs, this returns the DOM element after mount.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set sets the ref's value.
// This is typically called by the runtime when attaching to a DOM element.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.isSet = true
}

// IsSet returns true if the ref has been set (attached to DOM).
func (r *Ref[T]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Clear resets the ref to its zero value.
func (r *Ref[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.value = zero
	r.isSet = false
}
