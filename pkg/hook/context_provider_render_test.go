package hook

import "testing"

func TestContextProviderStoresValueForDescendantUse(t *testing.T) {
	ctx := CreateContext("default")
	root := NewLifeCycleHook(nil)

	root.StartRender()
	WithLifeCycleHook(root, func() {
		children := ctx.Provider("dark", "child-a", "child-b")
		if len(children) != 2 {
			t.Fatalf("Provider should return its children unchanged, got %d", len(children))
		}
		if got := ctx.Use(); got != "dark" {
			t.Fatalf("Use() inside the same render = %q, want %q", got, "dark")
		}
	})
	root.EndRender()
}

func TestContextUseReturnsDefaultWithoutProvider(t *testing.T) {
	ctx := CreateContext("fallback")
	root := NewLifeCycleHook(nil)

	root.StartRender()
	WithLifeCycleHook(root, func() {
		if got := ctx.Use(); got != "fallback" {
			t.Fatalf("Use() without a Provider = %q, want %q", got, "fallback")
		}
	})
	root.EndRender()
}
