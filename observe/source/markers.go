package source

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/model"
)

// Markers names the struct tag and comment directive that mark a field.
//
// Supported forms:
//   - score int `observe:"event"` - struct tag
//   - score int `observe:"event,disposable"` - both markers
//   - //observe:disposable - directive in the field or var doc/line comment
type Markers struct {
	TagKey     string
	Directive  string // prefix including the comment slashes, e.g. "//observe:"
	Event      string
	Disposable string
}

// DefaultMarkers returns the built-in marker names.
func DefaultMarkers() Markers {
	return Markers{
		TagKey:     "observe",
		Directive:  "//observe:",
		Event:      "event",
		Disposable: "disposable",
	}
}

// parseValues maps a comma-separated marker list to a marker set.
func (m Markers) parseValues(list, where string) model.Marker {
	var set model.Marker
	for _, part := range strings.Split(list, ",") {
		switch strings.TrimSpace(part) {
		case "":
		case m.Event:
			set |= model.MarkerEvent
		case m.Disposable:
			set |= model.MarkerDisposable
		default:
			logger.Warnw("Ignoring unknown marker",
				"marker", strings.TrimSpace(part),
				logger.FieldField, where)
		}
	}
	return set
}

// fromTag extracts markers from a struct field tag literal.
func (m Markers) fromTag(tag *ast.BasicLit, where string) model.Marker {
	if tag == nil || m.TagKey == "" {
		return 0
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		raw = strings.Trim(tag.Value, "`")
	}
	value, ok := reflect.StructTag(raw).Lookup(m.TagKey)
	if !ok {
		return 0
	}
	return m.parseValues(value, where)
}

// fromComments extracts markers from directive comments.
func (m Markers) fromComments(where string, groups ...*ast.CommentGroup) model.Marker {
	if m.Directive == "" {
		return 0
	}
	var set model.Marker
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if rest, ok := strings.CutPrefix(c.Text, m.Directive); ok {
				set |= m.parseValues(rest, where)
			}
		}
	}
	return set
}
