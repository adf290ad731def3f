package hook

import (
	"sync"
	"sync/atomic"
)

// Effect represents a reactive side effect that runs when its dependencies change.
// Effects are created using the CreateEffect function and are automatically
// tracked for dependencies during their execution.
//
// An effect created outside a render runs immediately; one created between
// StartRender and EndRender keeps its hook slot across renders and first runs
// at the owner's next RunPendingEffects. Effects re-run whenever any signal or
// memo they read during execution changes. They can return a Cleanup function that
// will be called before the effect re-runs or when the effect is disposed.
type Effect struct {
	id uint64

	// fn is the effect function to run.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the LifeCycleHook that owns this effect.
	owner *LifeCycleHook

	// pending indicates the effect is scheduled for re-run.
	pending atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool

	// allowWrites indicates if this effect has the AllowWrites option.
	// When true, signal writes during the effect body don't trigger warnings.
	allowWrites bool

	// txName is the transaction name for this effect (for observability).
	txName string
}

// MarkDirty marks the effect as needing to re-run.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	// Use CAS to ensure we only schedule once
	if e.pending.CompareAndSwap(false, true) {
		if e.owner != nil {
			e.owner.scheduleEffect(e)
		}
	}
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function.
// This is called during initial creation and when dependencies change.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	// Clear pending flag
	e.pending.Store(false)

	// Run cleanup from previous run
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Track new sources during execution
	oldListener := setCurrentListener(e)

	// Set effect-local tracking context so nested hook calls can find their
	// owning effect (e.g. to check AllowWrites) and so call-site-indexed
	// state stays stable across reruns.
	oldEffect := setCurrentEffect(e)
	resetEffectCallSiteIdx()
	oldInBody := setInEffectBody(true)
	oldAllowWrites := setEffectAllowWrites(e.allowWrites)

	// Run the effect function
	e.cleanup = e.fn()

	// Restore tracking context (effect body is done)
	setEffectAllowWrites(oldAllowWrites)
	setInEffectBody(oldInBody)
	setCurrentEffect(oldEffect)

	// Restore previous listener
	setCurrentListener(oldListener)
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	// Check for duplicates
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// dispose cleans up the effect and unsubscribes from all sources.
func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	// Run cleanup
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from all sources
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// EffectOption is an option for configuring an Effect.
type EffectOption interface {
	isEffectOption()
	applyEffect(e *Effect)
}

type effectOptionFunc func(*Effect)

func (f effectOptionFunc) isEffectOption()         {}
func (f effectOptionFunc) applyEffect(e *Effect) { f(e) }

// AllowWrites marks an effect as intentionally performing signal writes.
// Without this option, signal writes during the effect body will trigger
// a warning (StrictEffectWarn) or panic (StrictEffectPanic).
//
// Most patterns don't need this - writes applied via ctx.Dispatch from a
// background goroutine (as Action does) are not effect-time writes.
//
// Use this only for rare cases like synchronous initialization:
//
//	hook.CreateEffect(func() hook.Cleanup {
//	    syncedValue.Set(legacySystem.ReadCurrentSync())
//	    return nil
//	}, hook.AllowWrites())
//
func AllowWrites() EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.allowWrites = true
	})
}

// EffectTxName sets the transaction name for the effect.
// This name appears in warnings and DevTools entries for this effect.
func EffectTxName(name string) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.txName = name
	})
}

// CreateEffect creates and runs a new effect within the current owner context.
// Outside a render the effect function runs immediately. During a render the
// effect is stored in the owner's hook slot (later renders get the same
// Effect back, with its function replaced) and its first run is deferred to
// the owner's RunPendingEffects. It re-runs when any signal or memo it reads
// changes. If the function returns a Cleanup, it will be called
// before the effect re-runs or when the effect is disposed.
//
// Options:
//   - AllowWrites() - Allow signal writes during effect body without warning
//   - EffectTxName(name) - Set transaction name for observability
//
// Example:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { fmt.Println("Cleanup") }
//	})
func CreateEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	owner := getCurrentHook()
	inRender := owner != nil && isInRender()

	// Track hook call for dev-mode order validation
	if owner != nil {
		owner.TrackHook(HookEffect)
		if inRender {
			if slot := owner.UseHookSlot(); slot != nil {
				eff, ok := slot.(*Effect)
				if !ok {
					panic("hook: hook slot type mismatch for Effect")
				}
				eff.fn = fn
				return eff
			}
		}
	}

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	// Apply options
	for _, opt := range opts {
		opt.applyEffect(e)
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	if inRender {
		owner.SetHookSlot(e)
		e.MarkDirty() // first run waits for the owner's RunPendingEffects
		return e
	}

	// Run immediately
	e.run()

	return e
}

// OnMount creates an effect that runs only once on mount.
// This is equivalent to CreateEffect with no reactive dependencies.
//
// Example:
//
//	OnMount(func() {
//	    fmt.Println("Element mounted")
//	})
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		fn()
		return nil
	})
}

// OnUnmount registers a function to run when the owner is disposed.
// This is typically used for cleanup when a element unmounts.
//
// Example:
//
//	OnUnmount(func() {
//	    fmt.Println("Element unmounted")
//	})
func OnUnmount(fn func()) {
	owner := getCurrentHook()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}

// OnUpdate creates an effect that skips the callback on the first run.
// This is useful when you only want to react to changes, not the initial value.
//
// The deps function is called to establish dependencies. The callback is only
// called on subsequent runs when those dependencies change.
//
// Example:
//
//	OnUpdate(
//	    func() { _ = count.Get() },           // deps: read signals to track
//	    func() { fmt.Println("Updated!") },   // callback: only on changes
//	)
func OnUpdate(deps func(), callback func()) {
	first := true
	CreateEffect(func() Cleanup {
		deps() // Always call to track dependencies
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}

