package notebook

import (
	"encoding/json"
	"fmt"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// Status describes the widget-state section of a document.
type Status int

const (
	// StatusNoWidgetState means metadata.widgets has no widget-state entry.
	StatusNoWidgetState Status = iota
	// StatusAlreadyValid means the widget-state entry already has a "state" key.
	StatusAlreadyValid
	// StatusNeedsWrap means the widget-state entry is a bare map of widget definitions.
	StatusNeedsWrap
	// StatusWrapped means NormalizeWidgetState wrapped the entry under "state".
	StatusWrapped
)

func (s Status) String() string {
	switch s {
	case StatusNoWidgetState:
		return "no-widget-state"
	case StatusAlreadyValid:
		return "already-valid"
	case StatusNeedsWrap:
		return "needs-wrap"
	case StatusWrapped:
		return "wrapped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Inspection is the result of examining a document's widget state.
type Inspection struct {
	Status Status
	// WidgetCount is the number of top-level entries in the widget-state section.
	WidgetCount int

	widgets map[string]json.RawMessage
	state   json.RawMessage
}

// InspectWidgetState reports whether the document needs its widget state wrapped.
// It never modifies the document.
func InspectWidgetState(doc *Document) (Inspection, error) {
	widgets, err := doc.widgets()
	if err != nil {
		return Inspection{}, err
	}

	raw, ok := widgets[nbfix.WidgetStateKey]
	if !ok {
		return Inspection{Status: StatusNoWidgetState}, nil
	}
	if !isObject(raw) {
		return Inspection{}, fmt.Errorf("%s is not a JSON object: %w", nbfix.WidgetStateKey, nbfix.ErrMalformedWidgets)
	}

	var section map[string]json.RawMessage
	if err := json.Unmarshal(raw, &section); err != nil {
		return Inspection{}, fmt.Errorf("%s: %v: %w", nbfix.WidgetStateKey, err, nbfix.ErrMalformedWidgets)
	}

	insp := Inspection{
		WidgetCount: len(section),
		widgets:     widgets,
		state:       raw,
	}
	if _, hasState := section[nbfix.StateKey]; hasState {
		insp.Status = StatusAlreadyValid
		return insp, nil
	}
	insp.Status = StatusNeedsWrap
	return insp, nil
}

// NormalizeWidgetState wraps the widget-state section as {"state": <section>}
// when it lacks a top-level "state" key. Documents without widget state, or
// whose widget state is already valid, are returned unchanged.
func NormalizeWidgetState(doc *Document) (Inspection, error) {
	insp, err := InspectWidgetState(doc)
	if err != nil || insp.Status != StatusNeedsWrap {
		return insp, err
	}

	wrapped, err := encodeRaw(map[string]json.RawMessage{nbfix.StateKey: insp.state})
	if err != nil {
		return Inspection{}, fmt.Errorf("failed to wrap widget state: %w", err)
	}
	insp.widgets[nbfix.WidgetStateKey] = wrapped

	if err := doc.setWidgets(insp.widgets); err != nil {
		return Inspection{}, err
	}

	insp.Status = StatusWrapped
	return insp, nil
}
