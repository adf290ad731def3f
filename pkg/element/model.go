package element

// Well-known Model keys. Any other key is passed through
// untouched by the reconciler.
const (
	KeyTagName       = "tagName"
	KeyChildren      = "children"
	KeyAttributes    = "attributes"
	KeyEventHandlers = "eventHandlers"
)

// Model is a JSON-ish dictionary describing a view subtree. It is
// intentionally a plain map rather than a struct: hosts may stash arbitrary
// pass-through keys on it, and the reconciler must leave anything it
// doesn't recognize untouched.
type Model map[string]any

// New builds a Model with the given tag and no children/attributes yet.
func New(tagName string) Model {
	return Model{KeyTagName: tagName}
}

// TagName returns the tagName key, normalized to a string ("" if absent or
// not a string).
func (m Model) TagName() string {
	if m == nil {
		return ""
	}
	s, _ := m[KeyTagName].(string)
	return s
}

// RawChildren returns the children key exactly as the host supplied it:
// a list, a tuple-like slice, a single value, or absent (nil). Use
// NormalizeChildren to get it as a flat []any.
func (m Model) RawChildren() any {
	if m == nil {
		return nil
	}
	return m[KeyChildren]
}

// NormalizeChildren coerces RawChildren into a flat []any: nil becomes an
// empty slice, a slice is copied as-is, and any other single value becomes
// a one-element slice. This does NOT resolve elements or coerce
// primitives to strings — that happens during reconciliation.
func (m Model) NormalizeChildren() []any {
	raw := m.RawChildren()
	if raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	case []Model:
		out := make([]any, len(v))
		for i, c := range v {
			out[i] = c
		}
		return out
	default:
		return []any{v}
	}
}

// Attributes returns the attributes map, or nil if absent. Callers that
// intend to mutate it (lifting callables into handlers) should check for
// nil first; Model.SetAttributes can install a fresh map.
func (m Model) Attributes() map[string]any {
	if m == nil {
		return nil
	}
	attrs, _ := m[KeyAttributes].(map[string]any)
	return attrs
}

// SetAttributes installs attrs as the attributes map.
func (m Model) SetAttributes(attrs map[string]any) {
	m[KeyAttributes] = attrs
}

// EventHandlers returns the eventHandlers key as a map[string]any (pre- or
// post-serialization depending on reconciliation phase), or nil if absent.
func (m Model) EventHandlers() map[string]any {
	if m == nil {
		return nil
	}
	h, _ := m[KeyEventHandlers].(map[string]any)
	return h
}

// SetEventHandlers installs handlers as the eventHandlers map.
func (m Model) SetEventHandlers(handlers map[string]any) {
	m[KeyEventHandlers] = handlers
}

// SetChildren installs children as the (already-resolved) children list.
func (m Model) SetChildren(children []any) {
	m[KeyChildren] = children
}

// Clone performs the shallow copy model resolution requires before
// mutating eventHandlers/children: a new top-level map sharing nested
// values with m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ReplaceContents clears m and copies src's entries into it in place. Used
// by the reconciler to update ElementState.Model by reference, so external
// references observe updates, without changing the map's identity.
func (m Model) ReplaceContents(src Model) {
	for k := range m {
		delete(m, k)
	}
	for k, v := range src {
		m[k] = v
	}
}
