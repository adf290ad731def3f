package layout

import (
	"github.com/vango-dev/layout/pkg/element"
	"github.com/vango-dev/layout/pkg/hook"
)

// ElementState is the reconciler's per-element record: the element that
// produced it, its resolved Model, and the LifeCycleHook that owns its
// reactive primitives.
//
// Model is mutated in place (Model.ReplaceContents) rather than replaced, so
// any reference a caller holds onto keeps observing the latest render.
type ElementState struct {
	id      string
	element element.Element
	model   element.Model

	// eventHandlerIDs are the handler ids this element's last render
	// registered in the owning Layout's handler table. Cleared and rebuilt
	// on every render.
	eventHandlerIDs map[string]struct{}

	// childElementIDs are this element's direct Element children, in
	// render order, as of the last render. Used to unmount children that
	// no longer appear.
	childElementIDs []string

	lifeCycleHook *hook.LifeCycleHook
}

func newElementState(el element.Element, parentHook *hook.LifeCycleHook) *ElementState {
	return &ElementState{
		id:            el.ID(),
		element:       el,
		model:         element.Model{},
		lifeCycleHook: hook.NewLifeCycleHook(parentHook),
	}
}

// Model returns the element's last-rendered model. The returned value keeps
// its identity across renders; callers that hold onto it observe future
// updates through mutation, not replacement.
func (s *ElementState) Model() element.Model { return s.model }
