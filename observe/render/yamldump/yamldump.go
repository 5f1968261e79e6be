// Package yamldump renders output units as a YAML outline of the rebuilt
// declaration tree. Unlike Go source it can express any nesting, which
// makes it the inspection format for trees Go cannot represent.
package yamldump

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/model"
)

// Generator renders YAML outlines.
type Generator struct{}

// New creates a YAML renderer.
func New() *Generator { return &Generator{} }

// FileExtension returns "yaml"
func (g *Generator) FileExtension() string { return "yaml" }

// Format returns "yaml"
func (g *Generator) Format() string { return "yaml" }

// Render marshals unit with two-space indentation.
func (g *Generator) Render(unit *model.Unit) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Code generated by observegen. DO NOT EDIT.\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(unit); err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", unit.ID)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush yaml encoder")
	}
	return buf.Bytes(), nil
}
