package event

// Capture describes the client-side parameter-capture directives attached
// to a handler: which fields of the browser event to forward as Invoke's
// data, and whether the client should stop propagation / prevent default
// before forwarding.
type Capture struct {
	// Fields lists which named fields of the originating browser event the
	// client should include in the data it sends to Trigger. An empty list
	// means "forward the whole event" (the client's default).
	Fields []string

	// PreventDefault asks the client to call preventDefault() on the
	// triggering browser event before dispatch.
	PreventDefault bool

	// StopPropagation asks the client to call stopPropagation() on the
	// triggering browser event before dispatch.
	StopPropagation bool

	// Once asks the client to remove its listener after the first trigger.
	Once bool
}

func (c Capture) apply(descriptor map[string]any) {
	if len(c.Fields) > 0 {
		descriptor["fields"] = append([]string(nil), c.Fields...)
	}
	if c.PreventDefault {
		descriptor["preventDefault"] = true
	}
	if c.StopPropagation {
		descriptor["stopPropagation"] = true
	}
	if c.Once {
		descriptor["once"] = true
	}
}

// PreventDefault wraps a callback's capture spec to also request
// preventDefault() client-side, composable with other Capture-returning
// helpers (e.g. PreventDefault(StopPropagation(Capture{}))).
func PreventDefault(c Capture) Capture {
	c.PreventDefault = true
	return c
}

// StopPropagation wraps a callback's capture spec to also request
// stopPropagation() client-side.
func StopPropagation(c Capture) Capture {
	c.StopPropagation = true
	return c
}

// Once wraps a callback's capture spec to request one-shot delivery.
func Once(c Capture) Capture {
	c.Once = true
	return c
}

// Fields sets which event fields the client forwards.
func Fields(c Capture, names ...string) Capture {
	c.Fields = names
	return c
}
