// Package am holds the observegen configuration.
//
// Configuration is read from observegen.toml, found by walking up from the
// working directory, with OBSERVEGEN_* environment variables taking
// precedence over the file and built-in defaults applying last.
package am

import (
	"fmt"

	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/render"
	"github.com/teranos/observegen/observe/source"
)

// ConfigFileName is the project configuration file searched for.
const ConfigFileName = "observegen.toml"

// EnvPrefix prefixes every environment override (e.g., OBSERVEGEN_OUTPUT_FORMAT).
const EnvPrefix = "OBSERVEGEN"

// Config represents the observegen configuration
type Config struct {
	Naming  NamingConfig  `mapstructure:"naming" toml:"naming" yaml:"naming"`
	Markers MarkersConfig `mapstructure:"markers" toml:"markers" yaml:"markers"`
	Output  OutputConfig  `mapstructure:"output" toml:"output" yaml:"output"`
	Log     LogConfig     `mapstructure:"log" toml:"log" yaml:"log"`

	// File is the configuration file that was read, empty when none was found
	File string `mapstructure:"-" toml:"-" yaml:"-"`
}

// NamingConfig configures how companion member names are derived.
// Templates may use {Property} and {Field}.
type NamingConfig struct {
	Prefixes     []string `mapstructure:"prefixes" toml:"prefixes" yaml:"prefixes"`
	PrivateEvent string   `mapstructure:"private_event" toml:"private_event" yaml:"private_event"`
	PublicEvent  string   `mapstructure:"public_event" toml:"public_event" yaml:"public_event"`
	Subscribe    string   `mapstructure:"subscribe" toml:"subscribe" yaml:"subscribe"`
	Hook         string   `mapstructure:"hook" toml:"hook" yaml:"hook"`
}

// MarkersConfig names the struct tag and comment directive that mark fields
type MarkersConfig struct {
	Tag        string `mapstructure:"tag" toml:"tag" yaml:"tag"`
	Directive  string `mapstructure:"directive" toml:"directive" yaml:"directive"` // e.g. "//observe:"
	Event      string `mapstructure:"event" toml:"event" yaml:"event"`
	Disposable string `mapstructure:"disposable" toml:"disposable" yaml:"disposable"`
}

// OutputConfig configures rendering and emission
type OutputConfig struct {
	// go or yaml
	Format string `mapstructure:"format" toml:"format" yaml:"format"`
	// Dir collects every file in one directory; empty writes next to the sources
	Dir string `mapstructure:"dir" toml:"dir" yaml:"dir"`
	// Suffix ends emitted file names; empty derives "_observe.<ext>"
	Suffix          string `mapstructure:"suffix" toml:"suffix" yaml:"suffix"`
	CompanionSuffix string `mapstructure:"companion_suffix" toml:"companion_suffix" yaml:"companion_suffix"`
	// Workers renders units concurrently, 0 = GOMAXPROCS
	Workers int `mapstructure:"workers" toml:"workers" yaml:"workers"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity"`
}

// Conventions returns the naming conventions described by the config.
func (c *Config) Conventions() naming.Conventions {
	return naming.Conventions{
		Prefixes:     append([]string(nil), c.Naming.Prefixes...),
		PrivateEvent: c.Naming.PrivateEvent,
		PublicEvent:  c.Naming.PublicEvent,
		Subscribe:    c.Naming.Subscribe,
		Hook:         c.Naming.Hook,
	}
}

// SourceMarkers returns the marker names for the source loader.
func (c *Config) SourceMarkers() source.Markers {
	return source.Markers{
		TagKey:     c.Markers.Tag,
		Directive:  c.Markers.Directive,
		Event:      c.Markers.Event,
		Disposable: c.Markers.Disposable,
	}
}

// RenderOptions returns the renderer options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{CompanionSuffix: c.Output.CompanionSuffix}
}

// FileSuffix returns the emitted file suffix for a renderer extension.
func (o OutputConfig) FileSuffix(ext string) string {
	if o.Suffix != "" {
		return o.Suffix
	}
	return "_observe." + ext
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{File: %q, Output: {Format: %s, Workers: %d}, Markers: {Tag: %s}}",
		c.File, c.Output.Format, c.Output.Workers, c.Markers.Tag)
}
