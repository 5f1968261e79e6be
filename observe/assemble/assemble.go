// Package assemble composes output units from rebuilt types.
package assemble

import (
	"strconv"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/rebuild"
	"github.com/teranos/observegen/observe/render"
)

// Import paths of the runtime support packages generated code depends on.
const (
	NotifyImport = "github.com/teranos/observegen/notify"
	ScopeImport  = "github.com/teranos/observegen/scope"
)

// SupportImports are appended to every unit's imports.
var SupportImports = []model.Import{
	{Path: NotifyImport},
	{Path: ScopeImport},
}

// Input is everything one unit is assembled from.
type Input struct {
	// Imports in scope of the original declaration
	Imports []model.Import
	Type    model.RebuiltType
	// Counter is the run-wide position of this unit
	Counter int
	// Source is the file the declaration came from, if any
	Source string
	Dir    string
}

// ID returns the output identifier for a type at a counter position.
func ID(typeName string, counter int) string {
	return typeName + "Gen" + strconv.Itoa(counter)
}

// Imports returns the original imports followed by SupportImports.
// Duplicates are kept; renderers decide what the target language allows.
func Imports(original []model.Import) []model.Import {
	out := make([]model.Import, 0, len(original)+len(SupportImports))
	out = append(out, original...)
	return append(out, SupportImports...)
}

// Assemble builds and renders the unit for in.
func Assemble(in Input, r render.Renderer) (model.Unit, error) {
	unit := model.Unit{
		ID:      ID(in.Type.Name, in.Counter),
		Imports: Imports(in.Imports),
		Tree:    rebuild.Wrap(in.Type),
		Dir:     in.Dir,
		Source:  in.Source,
	}

	text, err := r.Render(&unit)
	if err != nil {
		return model.Unit{}, errors.Wrapf(err, "failed to render %s", unit.ID)
	}
	unit.Text = text
	return unit, nil
}
