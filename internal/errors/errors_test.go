package errors

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "known error code",
			code:    "E001",
			wantMsg: "Invalid root element",
			wantCat: CategoryRuntime,
		},
		{
			name:    "another known error code",
			code:    "E003",
			wantMsg: "Element render failed",
			wantCat: CategoryRuntime,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRuntime, "file %q not found", "test.go")
	if err.Message != `file "test.go" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "test.go" not found`)
	}
	if err.Category != CategoryRuntime {
		t.Errorf("Category = %q, want %q", err.Category, CategoryRuntime)
	}
}

func TestVangoError_Error(t *testing.T) {
	err := New("E001")
	got := err.Error()
	want := "E001: Invalid root element"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &VangoError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestVangoError_WithSuggestion(t *testing.T) {
	err := New("E001").WithSuggestion("Check New's root argument for nil")
	if err.Suggestion != "Check New's root argument for nil" {
		t.Errorf("Suggestion = %q, want %q", err.Suggestion, "Check New's root argument for nil")
	}
}

func TestVangoError_WithDetail(t *testing.T) {
	err := New("E001").WithDetail("Custom detail")
	if err.Detail != "Custom detail" {
		t.Errorf("Detail = %q, want %q", err.Detail, "Custom detail")
	}
}

func TestVangoError_Wrap(t *testing.T) {
	inner := New("E002")
	outer := New("E001").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	// nil error
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	// Already VangoError
	ve := New("E001")
	if FromError(ve, "E002") != ve {
		t.Error("FromError should return VangoError as-is")
	}

	// Standard error
	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "E001")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestFormatCompact(t *testing.T) {
	err := New("E001")
	compact := err.FormatCompact()

	want := "E001: Invalid root element"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E001")
	json := err.FormatJSON()

	if !strings.Contains(json, `"code":"E001"`) {
		t.Error("JSON should contain code")
	}
	if !strings.Contains(json, `"category":"runtime"`) {
		t.Error("JSON should contain category")
	}
	if !strings.Contains(json, `"message":"Invalid root element"`) {
		t.Error("JSON should contain message")
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Error("GetAllCodes() should return codes")
	}

	found := false
	for _, code := range codes {
		if code == "E001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("E001 should be in the codes list")
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E001")
	if !ok {
		t.Error("E001 should exist")
	}
	if template.Message != "Invalid root element" {
		t.Error("Template message mismatch")
	}

	_, ok = GetTemplate("E999")
	if ok {
		t.Error("E999 should not exist")
	}
}
