// Package render turns assembled units into text.
package render

import (
	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/render/golang"
	"github.com/teranos/observegen/observe/render/yamldump"
)

// Renderer defines the interface for output renderers.
// Each output format (Go source, YAML outline) implements this interface.
type Renderer interface {
	// Render produces the text of a unit. Output must be deterministic.
	Render(unit *model.Unit) ([]byte, error)

	// FileExtension returns the extension of emitted files (e.g., "go", "yaml")
	FileExtension() string

	// Format returns the format name (e.g., "go")
	Format() string
}

// Supported format names
const (
	FormatGo   = "go"
	FormatYAML = "yaml"
)

// Options configures the renderers.
type Options struct {
	// CompanionSuffix names the struct holding private events (e.g., "Observers")
	CompanionSuffix string
}

// ForFormat returns the renderer for format.
func ForFormat(format string, opts Options) (Renderer, error) {
	switch format {
	case FormatGo, "golang":
		return golang.New(golang.Options{CompanionSuffix: opts.CompanionSuffix}), nil
	case FormatYAML, "yml":
		return yamldump.New(), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "%q (supported: go, yaml)", format)
	}
}
