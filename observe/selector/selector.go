// Package selector picks the marked fields out of a type declaration.
package selector

import "github.com/teranos/observegen/observe/model"

// Companions is the closed set of optional members a field asks for.
type Companions int

const (
	None Companions = iota
	DisposableOnly
	EventOnly
	Both
)

func (c Companions) String() string {
	switch c {
	case DisposableOnly:
		return "disposable"
	case EventOnly:
		return "event"
	case Both:
		return "event,disposable"
	default:
		return "none"
	}
}

// WantsEvent reports whether the public subscription event is generated.
func (c Companions) WantsEvent() bool { return c == EventOnly || c == Both }

// WantsSubscribe reports whether the disposable subscription method is generated.
func (c Companions) WantsSubscribe() bool { return c == DisposableOnly || c == Both }

// CompanionsFor maps a marker set to its companion variant.
func CompanionsFor(m model.Marker) Companions {
	switch {
	case m.Has(model.MarkerDisposable | model.MarkerEvent):
		return Both
	case m.Has(model.MarkerEvent):
		return EventOnly
	case m.Has(model.MarkerDisposable):
		return DisposableOnly
	default:
		return None
	}
}

// Selected is a marked field with its companion variant.
type Selected struct {
	Field      model.Field
	Companions Companions
}

// Select returns the marked fields of decl in declaration order.
// Unmarked fields are dropped.
func Select(decl model.TypeDecl) []Selected {
	var out []Selected
	for _, f := range decl.Fields {
		c := CompanionsFor(f.Markers)
		if c == None {
			continue
		}
		out = append(out, Selected{Field: f, Companions: c})
	}
	return out
}
