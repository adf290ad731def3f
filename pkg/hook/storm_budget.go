package hook

import (
	"sync"
	"time"
)

// =============================================================================
// Storm Budgets
// =============================================================================

// StormBudgetTracker rate-limits Action starts and caps effect reruns per
// tick. It guards against amplification bugs where an effect's own signal
// writes (via AllowWrites, or a Dispatch callback from an Action) trigger
// another render that schedules more effects than the host can usefully run.
type StormBudgetTracker struct {
	maxActionStarts int
	maxEffectRuns   int
	windowDuration  time.Duration
	onExceeded      BudgetExceededMode

	actionWindow *slidingWindow

	effectRunsThisTick int

	mu sync.Mutex
}

// BudgetExceededMode names how a host wants storm-budget overruns handled.
// The tracker only stores it and reports it through GetOnExceeded; its
// checks behave the same in either mode: an over-budget CheckAction or
// CheckEffectRun returns ErrBudgetExceeded, and RunPendingEffects
// re-schedules an over-budget effect for a later call.
type BudgetExceededMode int

const (
	// BudgetModeThrottle is the default mode.
	BudgetModeThrottle BudgetExceededMode = iota

	// BudgetModeTripBreaker is the alternative mode a host can configure.
	BudgetModeTripBreaker
)

// slidingWindow tracks events within a time window for rate limiting.
type slidingWindow struct {
	events     []time.Time
	windowSize time.Duration
	maxEvents  int
	mu         sync.Mutex
}

func newSlidingWindow(windowSize time.Duration, maxEvents int) *slidingWindow {
	return &slidingWindow{
		windowSize: windowSize,
		maxEvents:  maxEvents,
	}
}

// tryAdd attempts to add an event to the window.
// Returns true if allowed (under limit), false if rate limited.
func (w *slidingWindow) tryAdd() bool {
	if w.maxEvents == 0 {
		return true // No limit
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-w.windowSize)

	// Remove old events outside the window
	validIdx := 0
	for _, t := range w.events {
		if t.After(cutoff) {
			w.events[validIdx] = t
			validIdx++
		}
	}
	w.events = w.events[:validIdx]

	// Check if under limit
	if len(w.events) >= w.maxEvents {
		return false
	}

	// Add new event
	w.events = append(w.events, now)
	return true
}

// count returns the current number of events in the window.
func (w *slidingWindow) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-w.windowSize)

	count := 0
	for _, t := range w.events {
		if t.After(cutoff) {
			count++
		}
	}
	return count
}

// NewStormBudgetTracker creates a new storm budget tracker with the given configuration.
func NewStormBudgetTracker(cfg *StormBudgetConfig) *StormBudgetTracker {
	if cfg == nil {
		return nil
	}

	windowDuration := cfg.WindowDuration
	if windowDuration == 0 {
		windowDuration = time.Second
	}

	return &StormBudgetTracker{
		maxActionStarts: cfg.MaxActionStartsPerSecond,
		maxEffectRuns:   cfg.MaxEffectRunsPerTick,
		windowDuration:  windowDuration,
		onExceeded:      cfg.OnExceeded,
		actionWindow:    newSlidingWindow(windowDuration, cfg.MaxActionStartsPerSecond),
	}
}

// StormBudgetConfig holds configuration for storm budgets.
type StormBudgetConfig struct {
	MaxActionStartsPerSecond int
	MaxEffectRunsPerTick     int
	WindowDuration           time.Duration
	OnExceeded               BudgetExceededMode
}

// CheckAction checks if an Action can start.
// Returns nil if allowed, ErrBudgetExceeded if rate limited.
func (t *StormBudgetTracker) CheckAction() error {
	if t == nil || t.maxActionStarts == 0 {
		return nil
	}

	if !t.actionWindow.tryAdd() {
		if Debug.LogStormBudget {
			println("Storm budget exceeded: Action starts")
		}
		return ErrBudgetExceeded
	}
	return nil
}

// CheckEffectRun checks if another effect can run this tick.
// Returns nil if allowed, ErrBudgetExceeded if limit reached.
func (t *StormBudgetTracker) CheckEffectRun() error {
	if t == nil || t.maxEffectRuns == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.effectRunsThisTick >= t.maxEffectRuns {
		if Debug.LogStormBudget {
			println("Storm budget exceeded: Effect runs per tick")
		}
		return ErrBudgetExceeded
	}

	t.effectRunsThisTick++
	return nil
}

// ResetTick resets the per-tick counters.
// Should be called at the start of each event/dispatch processing.
func (t *StormBudgetTracker) ResetTick() {
	if t == nil {
		return
	}

	t.mu.Lock()
	t.effectRunsThisTick = 0
	t.mu.Unlock()
}

// GetOnExceeded returns the configured behavior when budget is exceeded.
func (t *StormBudgetTracker) GetOnExceeded() BudgetExceededMode {
	if t == nil {
		return BudgetModeThrottle
	}
	return t.onExceeded
}

// BudgetStats reports current budget usage.
type BudgetStats struct {
	ActionStartsInWindow int
	EffectRunsThisTick   int
}

func (t *StormBudgetTracker) Stats() BudgetStats {
	if t == nil {
		return BudgetStats{}
	}

	t.mu.Lock()
	effectRuns := t.effectRunsThisTick
	t.mu.Unlock()

	return BudgetStats{
		ActionStartsInWindow: t.actionWindow.count(),
		EffectRunsThisTick:   effectRuns,
	}
}

// StormBudgetChecker is the interface hook primitives check against before
// starting an Action or running an effect. *StormBudgetTracker implements
// it; a Layout passes its tracker through to each LifeCycleHook.
type StormBudgetChecker interface {
	CheckAction() error
	CheckEffectRun() error
	ResetTick()
}
