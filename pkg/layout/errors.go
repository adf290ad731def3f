package layout

import (
	"fmt"

	vangoerr "github.com/vango-dev/layout/internal/errors"
)

// Sentinel errors for the Layout lifecycle, built from the registered
// error codes in internal/errors so they carry a stable code and detail a
// caller can log or serialize alongside the plain message. Both satisfy
// errors.Is, and the two wrapper error types below satisfy errors.As/Unwrap.
var (
	// ErrInvalidRoot is returned by New when the supplied root does not
	// satisfy the Element contract (e.g. a nil Element, or one with an
	// empty id). Construction fails outright.
	ErrInvalidRoot = vangoerr.New("E001").WithSuggestion("Pass a non-nil Element whose ID() is non-empty")

	// ErrTornDown is returned by Update/Render/Trigger once Close has run.
	ErrTornDown = vangoerr.New("E002")
)

// HostRenderFailureError wraps a panic or error an Element.Render raised.
// It is collected into LayoutUpdate.Errors rather than aborting the
// Layout.
type HostRenderFailureError struct {
	ElementID string
	Err       error
}

func (e *HostRenderFailureError) Error() string {
	return fmt.Sprintf("layout: element %q failed to render: %v", e.ElementID, e.Err)
}

func (e *HostRenderFailureError) Unwrap() error { return e.Err }

// VangoError returns the structured error this failure maps to, suitable
// for logging via its FormatCompact/FormatJSON methods.
func (e *HostRenderFailureError) VangoError() *vangoerr.VangoError {
	return vangoerr.New("E003").WithDetail(e.Error()).Wrap(e.Err)
}

// HandlerFailureError wraps an error an event.Handler's callback returned.
// It propagates verbatim to the Trigger caller.
type HandlerFailureError struct {
	HandlerID string
	Err       error
}

func (e *HandlerFailureError) Error() string {
	return fmt.Sprintf("layout: handler %q failed: %v", e.HandlerID, e.Err)
}

func (e *HandlerFailureError) Unwrap() error { return e.Err }

// VangoError returns the structured error this failure maps to, suitable
// for logging via its FormatCompact/FormatJSON methods.
func (e *HandlerFailureError) VangoError() *vangoerr.VangoError {
	return vangoerr.New("E004").WithDetail(e.Error()).Wrap(e.Err)
}
