// Package hook provides the reactive core backing a Layout: LifeCycleHook,
// the per-element hook-cell storage that gives hooks stable identity across
// renders, and the hook primitives (NewSignal, CreateEffect, NewMemo,
// NewRef, CreateContext, NewAction) built on top of it.
//
// The reactive system provides fine-grained reactivity similar to SolidJS,
// where dependencies are tracked automatically at runtime. Reading a signal
// inside a memo computation or an effect body subscribes that memo or
// effect, so a later Set invalidates the memo or schedules the effect to
// re-run. A read made directly in an element's render subscribes nothing,
// and a Set does not schedule the element for re-render.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a cached derived computation:
//
//	doubled := NewMemo(func() int { return count.Get() * 2 })
//	value := doubled.Get()  // Recomputes only if dependencies changed
//
// Effect runs side effects when dependencies change:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { /* cleanup */ }
//	})
//
// # Batching
//
// Multiple signal updates can be batched to trigger a single notification:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	    c.Set(3)
//	})  // Single notification after all updates
//
// # Thread Safety
//
// All reactive primitives are thread-safe and can be accessed from multiple
// goroutines. The tracking context is per-goroutine, so spawning goroutines
// requires explicit context propagation via WithLifeCycleHook.
package hook
