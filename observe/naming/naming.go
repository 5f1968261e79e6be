// Package naming derives the identifiers of every companion member from the
// name of the field they are generated for.
//
// Derivation is a pure function of the field name:
//
//	_Score -> Score, ScoreChanged, ScoreChanged, SubscribeToScore, OnScoreChange
//
// The property name is the field name with its conventional private-field
// prefix stripped and its first letter exported. A name without a known
// prefix is kept as is; this is leniency, not a validation gate.
package naming

import "strings"

// Template placeholders
const (
	PlaceholderProperty = "{Property}"
	PlaceholderField    = "{Field}"
)

// Names holds every identifier derived from one field name.
type Names struct {
	Field        string
	Property     string
	PrivateEvent string
	PublicEvent  string
	Subscribe    string
	Hook         string
}

// Conventions configures prefix stripping and the name templates.
// The zero value is not useful; start from DefaultConventions.
type Conventions struct {
	// Prefixes are tried in order; the first match is stripped
	Prefixes     []string
	PrivateEvent string
	PublicEvent  string
	Subscribe    string
	Hook         string
}

// DefaultConventions returns the built-in naming rules.
func DefaultConventions() Conventions {
	return Conventions{
		Prefixes:     []string{"m_", "_"},
		PrivateEvent: PlaceholderProperty + "Changed",
		PublicEvent:  PlaceholderProperty + "Changed",
		Subscribe:    "SubscribeTo" + PlaceholderProperty,
		Hook:         "On" + PlaceholderProperty + "Change",
	}
}

// Derive computes Names with the default conventions.
func Derive(fieldName string) Names {
	return DefaultConventions().Derive(fieldName)
}

// Derive computes Names for fieldName.
func (c Conventions) Derive(fieldName string) Names {
	property := c.PropertyName(fieldName)
	r := strings.NewReplacer(PlaceholderProperty, property, PlaceholderField, fieldName)
	return Names{
		Field:        fieldName,
		Property:     property,
		PrivateEvent: r.Replace(c.PrivateEvent),
		PublicEvent:  r.Replace(c.PublicEvent),
		Subscribe:    r.Replace(c.Subscribe),
		Hook:         r.Replace(c.Hook),
	}
}

// PropertyName strips the first matching conventional prefix and exports
// the result. Names that are nothing but a prefix are kept whole.
func (c Conventions) PropertyName(fieldName string) string {
	return Export(c.StripPrefix(fieldName))
}

// StripPrefix removes the first matching prefix from fieldName.
func (c Conventions) StripPrefix(fieldName string) string {
	for _, prefix := range c.Prefixes {
		if prefix == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(fieldName, prefix); ok && rest != "" {
			return rest
		}
	}
	return fieldName
}
