package am

import (
	"strings"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/render"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Output.Format {
	case render.FormatGo, render.FormatYAML:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "output.format must be go or yaml, got %q", c.Output.Format)
	}

	// Workers: 0 = GOMAXPROCS, negative = invalid
	if c.Output.Workers < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "output.workers must be >= 0, got %d", c.Output.Workers)
	}

	if c.Log.Verbosity < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if c.Markers.Tag == "" && c.Markers.Directive == "" {
		return errors.WithHint(
			errors.Wrap(errors.ErrInvalidConfig, "markers.tag and markers.directive are both empty"),
			"set at least one so fields can be marked")
	}
	if c.Markers.Event == "" || c.Markers.Disposable == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "markers.event and markers.disposable cannot be empty")
	}
	if c.Markers.Event == c.Markers.Disposable {
		return errors.Wrapf(errors.ErrInvalidConfig, "markers.event and markers.disposable are both %q", c.Markers.Event)
	}

	templates := []struct{ key, value string }{
		{"naming.private_event", c.Naming.PrivateEvent},
		{"naming.public_event", c.Naming.PublicEvent},
		{"naming.subscribe", c.Naming.Subscribe},
		{"naming.hook", c.Naming.Hook},
	}
	for _, tmpl := range templates {
		if !strings.Contains(tmpl.value, naming.PlaceholderProperty) && !strings.Contains(tmpl.value, naming.PlaceholderField) {
			return errors.WithHintf(
				errors.Wrapf(errors.ErrInvalidConfig, "%s %q does not reference the field", tmpl.key, tmpl.value),
				"use %s or %s", naming.PlaceholderProperty, naming.PlaceholderField)
		}
	}
	if c.Naming.Subscribe == c.Naming.Hook {
		return errors.Wrap(errors.ErrInvalidConfig, "naming.subscribe and naming.hook would produce the same name")
	}

	return nil
}
