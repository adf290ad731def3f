package event

import (
	"context"
	"errors"
	"testing"
)

func TestWrapLiftsPlainFunc(t *testing.T) {
	var got []any
	h, err := Wrap(func(data []any) { got = data })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := h.Invoke(context.Background(), []any{1, "x"}); err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != "x" {
		t.Fatalf("callback did not receive data, got %v", got)
	}
}

func TestWrapRejectsNonCallable(t *testing.T) {
	if _, err := Wrap(42); err == nil {
		t.Fatal("expected error wrapping a non-callable value")
	}
}

func TestInvokeStopsOnFirstFailure(t *testing.T) {
	h := NewHandler(Capture{})
	var secondRan bool
	wantErr := errors.New("boom")
	h.Add(func(ctx context.Context, data []any) error { return wantErr })
	h.Add(func(ctx context.Context, data []any) error { secondRan = true; return nil })

	err := h.Invoke(context.Background(), nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if secondRan {
		t.Fatal("second callback should not run after the first fails")
	}
}

func TestSerializeIncludesCaptureDirectives(t *testing.T) {
	h := NewHandler(StopPropagation(PreventDefault(Fields(Capture{}, "key"))))
	d := h.Serialize()

	if d["target"] != h.ID() {
		t.Fatalf("expected target %q, got %v", h.ID(), d["target"])
	}
	if d["preventDefault"] != true || d["stopPropagation"] != true {
		t.Fatalf("expected preventDefault/stopPropagation directives, got %v", d)
	}
	fields, ok := d["fields"].([]string)
	if !ok || len(fields) != 1 || fields[0] != "key" {
		t.Fatalf("expected fields=[key], got %v", d["fields"])
	}
}
