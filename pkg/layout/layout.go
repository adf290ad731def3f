package layout

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/vango-dev/layout/pkg/element"
	"github.com/vango-dev/layout/pkg/event"
	"github.com/vango-dev/layout/pkg/hook"
	"github.com/vango-dev/layout/pkg/queue"

	"go.opentelemetry.io/otel/trace"
)

// LayoutUpdate is the serialized update a transport adapter publishes after
// one completed render. New carries every ElementState whose
// model was touched during the completion (the element that was asked to
// render, plus every element it newly rendered while resolving its model);
// Old carries ids unmounted during the same completion; Errors carries any
// HostRenderFailures collected along the way.
type LayoutUpdate struct {
	Src    string
	New    map[string]element.Model
	Old    []string
	Errors []error
}

// Option configures a Layout at construction.
type Option func(*Layout)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option { return func(lo *Layout) { lo.logger = l } }

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *Metrics) Option { return func(lo *Layout) { lo.metrics = m } }

// WithTracer attaches an otel tracer for render spans.
func WithTracer(t trace.Tracer) Option { return func(lo *Layout) { lo.tracer = t } }

// WithStormBudget bounds how many effects a single render cycle may run
// before the cycle is treated as a runaway self-trigger and reported as a
// HostRenderFailure.
func WithStormBudget(cfg *hook.StormBudgetConfig) Option {
	return func(lo *Layout) { lo.stormBudget = hook.NewStormBudgetTracker(cfg) }
}

// layoutCtx implements hook.Ctx for one render or Trigger call. Dispatch
// just runs fn synchronously: unlike a single-loop original, a Layout
// guards its state with l.mu rather than confining all mutation to one
// goroutine, so signal writes from effect helpers are already safe without
// being funneled through a dispatch loop.
type layoutCtx struct {
	l   *Layout
	std context.Context
}

func (c *layoutCtx) Dispatch(fn func()) { fn() }

func (c *layoutCtx) StdContext() context.Context { return c.std }

func (c *layoutCtx) StormBudget() hook.StormBudgetChecker {
	if c.l.stormBudget == nil {
		return nil
	}
	return c.l.stormBudget
}

// cycleResult accumulates the LayoutUpdate fields for one render completion.
// A fresh cycleResult is created per top-level Update() task; renderElement
// threads it through every recursive child render so the fields never mix
// across concurrently in-flight completions.
type cycleResult struct {
	src string
	new map[string]element.Model
	old []string
	err []error
}

// Layout is the reconciler: it drives root (and anything reachable from it)
// through Element.Render, tracks per-element state, and maintains the
// global event-handler table Trigger consults.
type Layout struct {
	root element.Element

	mu            sync.Mutex
	elementStates map[string]*ElementState
	eventHandlers map[string]*event.Handler
	rootState     *ElementState

	renderingQueue *queue.FutureQueue[*LayoutUpdate]

	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
	stormBudget *hook.StormBudgetTracker

	closed bool
}

// New constructs a Layout over root but does not render it; call Update
// followed by Render to produce the first LayoutUpdate. Returns
// ErrInvalidRoot if root is nil or reports an empty id.
func New(root element.Element, opts ...Option) (*Layout, error) {
	if root == nil || root.ID() == "" {
		return nil, ErrInvalidRoot
	}

	l := &Layout{
		root:           root,
		elementStates:  make(map[string]*ElementState),
		eventHandlers:  make(map[string]*event.Handler),
		renderingQueue: queue.New[*LayoutUpdate](),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close tears down the Layout: it cancels the FutureQueue on every call,
// and on the first call unmounts every ElementState depth-first from root
// regardless of what else is in flight. Later calls unmount nothing.
func (l *Layout) Close() {
	l.renderingQueue.Cancel()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if l.root != nil {
		l.unmountLocked(l.root.ID(), nil)
	}
	// Anything left over (orphaned by a cancelled in-flight render) gets
	// unmounted too.
	for id := range l.elementStates {
		l.unmountLocked(id, nil)
	}
	l.closed = true
}

func (l *Layout) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Update enqueues root (or any Element reachable from it) for (re-)render.
// It does not fail if the element isn't currently mounted — the next render
// that reaches it will mount it lazily — and is safe to call from any
// goroutine.
func (l *Layout) Update(el element.Element) error {
	if l.isClosed() {
		return ErrTornDown
	}
	l.renderingQueue.Put(func(ctx context.Context) (*LayoutUpdate, error) {
		cycle := &cycleResult{src: el.ID(), new: make(map[string]element.Model)}
		l.renderElement(ctx, el, nil, cycle)
		l.metrics.setQueuePending(l.renderingQueue.Len())
		return &LayoutUpdate{Src: cycle.src, New: cycle.new, Old: cycle.old, Errors: cycle.err}, nil
	})
	l.metrics.setQueuePending(l.renderingQueue.Len())
	return nil
}

// Render awaits one completed element render (the first call, after an
// initial Update(root), waits for the root's first render) and returns the
// LayoutUpdate describing what changed.
func (l *Layout) Render(ctx context.Context) (*LayoutUpdate, error) {
	if l.isClosed() {
		return nil, ErrTornDown
	}
	return l.renderingQueue.Get(ctx)
}

// RootModel returns the root element's current model snapshot without
// waiting for a new completion — the reference stays valid across future
// renders since ElementState.model is mutated in place. Returns nil until
// the root has rendered at least once.
func (l *Layout) RootModel() element.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rootState == nil {
		return nil
	}
	return l.rootState.model
}

// Trigger looks up handlerID in the global dispatch table and invokes it
// with data. An unknown id is a stale client reference and is silently
// ignored. A handler failure propagates verbatim.
func (l *Layout) Trigger(ctx context.Context, handlerID string, data []any) error {
	if l.isClosed() {
		return ErrTornDown
	}
	l.mu.Lock()
	h, ok := l.eventHandlers[handlerID]
	l.mu.Unlock()
	if !ok {
		return nil
	}
	var invokeErr error
	hook.WithCtx(&layoutCtx{l: l, std: ctx}, func() {
		invokeErr = h.Invoke(ctx, data)
	})
	if invokeErr != nil {
		return &HandlerFailureError{HandlerID: handlerID, Err: invokeErr}
	}
	return nil
}

// renderElement runs one element through render, event-handler/model
// resolution, child rendering, stale-child unmounting, and pending-effect
// flushing. It is recursive: child Elements discovered while resolving the
// model are rendered by direct recursive call within the same task, not
// re-enqueued onto the FutureQueue. A child id that reappears keeps its
// ElementState (and therefore its LifeCycleHook, and every signal/effect it
// owns); only child ids that were present before this render and are absent
// from it get unmounted. parentHook is the rendering parent's LifeCycleHook
// (nil for the root), so Context.Use() can walk up the same tree Provider()
// walked down.
func (l *Layout) renderElement(ctx context.Context, el element.Element, parentHook *hook.LifeCycleHook, cycle *cycleResult) (element.Model, error) {
	id := el.ID()

	l.mu.Lock()
	state, existed := l.elementStates[id]
	if !existed {
		state = newElementState(el, parentHook)
		l.elementStates[id] = state
		if l.root != nil && id == l.root.ID() {
			l.rootState = state
		}
	} else {
		state.element = el
	}
	state.lifeCycleHook.StartRender()

	for hid := range state.eventHandlerIDs {
		delete(l.eventHandlers, hid)
	}
	state.eventHandlerIDs = make(map[string]struct{})

	prevChildIDs := state.childElementIDs
	state.childElementIDs = nil
	l.mu.Unlock()

	start := time.Now()
	renderCtx, span := startRenderSpan(ctx, l.tracer, id)

	var raw any
	var renderErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				renderErr = fmt.Errorf("panic: %v", r)
			}
		}()
		hook.WithLifeCycleHook(state.lifeCycleHook, func() {
			hook.WithCtx(&layoutCtx{l: l, std: renderCtx}, func() {
				raw, renderErr = el.Render(renderCtx)
			})
		})
	}()
	span.End()
	l.metrics.observeRender(time.Since(start), renderErr != nil)

	if renderErr != nil {
		failure := &HostRenderFailureError{ElementID: id, Err: renderErr}
		l.logger.Error("element render failed", "element_id", id, "error", failure.VangoError().FormatCompact(), "cause", renderErr)
		state.lifeCycleHook.EndRender()
		l.mu.Lock()
		state.childElementIDs = prevChildIDs
		l.mu.Unlock()
		l.recordFailure(cycle, failure)
		return state.model, failure
	}

	rawModel := normalizeRawResult(raw)

	resolved, resolveErr := l.resolveModel(ctx, state, rawModel, cycle)
	state.lifeCycleHook.EndRender()
	if resolveErr != nil {
		failure := &HostRenderFailureError{ElementID: id, Err: resolveErr}
		l.logger.Error("element model resolution failed", "element_id", id, "error", failure.VangoError().FormatCompact(), "cause", resolveErr)
		l.mu.Lock()
		state.childElementIDs = prevChildIDs
		l.mu.Unlock()
		l.recordFailure(cycle, failure)
		return state.model, failure
	}

	l.mu.Lock()
	state.model.ReplaceContents(resolved)
	snapshot := state.model
	if cycle != nil {
		cycle.new[id] = snapshot
	}
	stillUsed := make(map[string]struct{}, len(state.childElementIDs))
	for _, cid := range state.childElementIDs {
		stillUsed[cid] = struct{}{}
	}
	for _, oldID := range prevChildIDs {
		if _, ok := stillUsed[oldID]; !ok {
			l.unmountLocked(oldID, cycle)
		}
	}
	l.mu.Unlock()

	if l.stormBudget != nil {
		l.stormBudget.ResetTick()
	}
	state.lifeCycleHook.RunPendingEffects(l.stormBudget)
	if state.lifeCycleHook.HasPendingEffects() {
		failure := &HostRenderFailureError{
			ElementID: id,
			Err:       fmt.Errorf("storm budget exceeded: effects still pending after this render"),
		}
		l.recordFailure(cycle, failure)
	}

	return state.model, nil
}

func (l *Layout) recordFailure(cycle *cycleResult, err error) {
	if cycle == nil {
		return
	}
	l.mu.Lock()
	cycle.err = append(cycle.err, err)
	l.mu.Unlock()
}

// normalizeRawResult coerces an Element.Render result to a Model: an
// Element result is rewritten as {tagName: "div", children: [that
// Element]}, and any other value is wrapped the same way so its string
// form ends up as a lone text child.
func normalizeRawResult(raw any) element.Model {
	switch v := raw.(type) {
	case element.Model:
		return v
	case map[string]any:
		return element.Model(v)
	case element.Element:
		m := element.New("div")
		m.SetChildren([]any{v})
		return m
	default:
		m := element.New("div")
		m.SetChildren([]any{v})
		return m
	}
}

// resolveModel recursively resolves a render result into its final Model:
// lift callable attributes and declared eventHandlers into the global
// handler table, then resolve children, recursing into nested models directly and
// into nested Elements via renderElement.
func (l *Layout) resolveModel(ctx context.Context, state *ElementState, m element.Model, cycle *cycleResult) (element.Model, error) {
	clone := m.Clone()

	handlers := make(map[string]*event.Handler)
	for name, v := range clone.EventHandlers() {
		h, err := coerceHandler(v)
		if err != nil {
			return nil, err
		}
		handlers[name] = h
	}

	if attrs := clone.Attributes(); attrs != nil {
		newAttrs := make(map[string]any, len(attrs))
		for name, v := range attrs {
			if isCallable(v) {
				h, err := event.Wrap(v)
				if err != nil {
					return nil, err
				}
				handlers[name] = h // attribute-derived handlers overwrite duplicates
			} else {
				newAttrs[name] = v
			}
		}
		clone.SetAttributes(newAttrs)
	}

	serialized := make(map[string]any, len(handlers))
	l.mu.Lock()
	for name, h := range handlers {
		l.eventHandlers[h.ID()] = h
		state.eventHandlerIDs[h.ID()] = struct{}{}
		serialized[name] = h.Serialize()
	}
	l.mu.Unlock()
	clone.SetEventHandlers(serialized)

	children := clone.NormalizeChildren()
	resolvedChildren := make([]any, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case element.Model:
			resolved, err := l.resolveModel(ctx, state, v, cycle)
			if err != nil {
				return nil, err
			}
			resolvedChildren = append(resolvedChildren, resolved)
		case map[string]any:
			resolved, err := l.resolveModel(ctx, state, element.Model(v), cycle)
			if err != nil {
				return nil, err
			}
			resolvedChildren = append(resolvedChildren, resolved)
		case element.Element:
			l.mu.Lock()
			state.childElementIDs = append(state.childElementIDs, v.ID())
			l.mu.Unlock()
			childModel, err := l.renderElement(ctx, v, state.lifeCycleHook, cycle)
			if err != nil {
				// HostRenderFailure isolates: keep whatever the child last
				// rendered successfully (possibly empty) rather than
				// aborting this element's render.
				resolvedChildren = append(resolvedChildren, childModel)
				continue
			}
			resolvedChildren = append(resolvedChildren, childModel)
		default:
			resolvedChildren = append(resolvedChildren, fmt.Sprint(v))
		}
	}
	clone.SetChildren(resolvedChildren)

	return clone, nil
}

func coerceHandler(v any) (*event.Handler, error) {
	if h, ok := v.(*event.Handler); ok {
		return h, nil
	}
	return event.Wrap(v)
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(*event.Handler); ok {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// unmountLocked recursively unmounts id and its tracked children in
// post-order, disposing each one's LifeCycleHook and freeing its handlers.
// Callers must hold l.mu.
func (l *Layout) unmountLocked(id string, cycle *cycleResult) {
	state, ok := l.elementStates[id]
	if !ok {
		return
	}
	for _, childID := range state.childElementIDs {
		l.unmountLocked(childID, cycle)
	}
	for hid := range state.eventHandlerIDs {
		delete(l.eventHandlers, hid)
	}
	state.lifeCycleHook.Dispose()
	delete(l.elementStates, id)
	if cycle != nil {
		cycle.old = append(cycle.old, id)
	}
}
