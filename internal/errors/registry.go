package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates. Codes are reserved for the
// Layout lifecycle errors pkg/layout/errors.go actually raises.
var registry = map[string]ErrorTemplate{
	"E001": {
		Category: CategoryRuntime,
		Message:  "Invalid root element",
		Detail:   "New was called with a root that doesn't satisfy the Element contract (nil, or an element.ID() that is empty).",
		DocURL:   "https://vango.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Layout used after teardown",
		Detail:   "Update, Render, or Trigger was called on a Layout after Close had already run.",
		DocURL:   "https://vango.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Element render failed",
		Detail:   "An Element's Render method panicked or returned an error during reconciliation.",
		DocURL:   "https://vango.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Event handler failed",
		Detail:   "An event.Handler's callback returned an error while processing a Trigger call.",
		DocURL:   "https://vango.dev/docs/errors/E004",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
