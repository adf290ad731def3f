package hook

// Context provides dependency injection through the element tree. Create a
// context with CreateContext, provide a value with Provider, and consume it
// with Use from any descendant's render.
//
// Example:
//
//	var ThemeContext = hook.CreateContext("light")
//
//	func (p *Page) Render(ctx context.Context) (any, error) {
//	    return ThemeContext.Provider("dark", header, main), nil
//	}
//
//	func (b *Button) Render(ctx context.Context) (any, error) {
//	    theme := ThemeContext.Use()
//	    return element.Model{"tagName": "button", "attributes": map[string]any{"class": "btn-" + theme}}, nil
//	}
type Context[T any] struct {
	// key uniquely identifies this context in the owner value map
	key any

	// defaultValue is returned when no provider is found
	defaultValue T
}

// contextKey wraps Context to create a unique key type
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a new context with the given default value.
// The default value is returned by Use() when no Provider is found
// in the element tree.
//
// Example:
//
//	var ThemeContext = hook.CreateContext("light")
//	var UserContext = hook.CreateContext[*User](nil)
func CreateContext[T any](defaultValue T) *Context[T] {
	ctx := &Context[T]{
		defaultValue: defaultValue,
	}
	// Use the context pointer itself as the key to ensure uniqueness
	ctx.key = contextKey[T]{ctx: ctx}
	return ctx
}

// Provider stores value on the current LifeCycleHook so any descendant's
// Use() call during this render sees it, and returns children unchanged for
// the caller to embed as a Model's children.
func (c *Context[T]) Provider(value T, children ...any) []any {
	owner := getCurrentHook()
	if owner != nil {
		owner.SetValue(c.key, value)
	}
	return children
}

// Use retrieves the context value from the nearest Provider ancestor.
// If no Provider is found, returns the default value.
//
// This is a hook-like API and MUST be called unconditionally during render.
//
// Example:
//
//	func Button() element.Model {
//	    theme := ThemeContext.Use()
//	    btn := element.New("button")
//	    btn.SetAttributes(map[string]any{"class": "btn-" + theme})
//	    return btn
//	}
func (c *Context[T]) Use() T {
	// Track hook call for dev-mode order validation
	TrackHook(HookContext)

	// Look up the value in the owner hierarchy
	owner := getCurrentHook()
	if owner != nil {
		if value := owner.GetValue(c.key); value != nil {
			if typed, ok := value.(T); ok {
				return typed
			}
		}
	}

	return c.defaultValue
}

// Default returns the default value for this context.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
