// Package errors provides structured, actionable errors for the Layout
// runtime.
//
// Each error carries a stable code (e.g. "E001") registered in the
// package's template registry, plus optional detail, a fix suggestion, and
// a documentation URL. pkg/layout builds its sentinel and wrapper errors
// on top of this package instead of plain errors.New, so a render or
// handler failure surfaces with the same code/detail/suggestion shape a
// caller can log or serialize consistently.
//
// # Usage
//
//	err := errors.New("E001").WithSuggestion("Check Element.Render for a nil Model")
//	log.Error("render failed", "error", err.FormatCompact())
package errors
