package am

import (
	"github.com/spf13/viper"

	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/render"
	"github.com/teranos/observegen/observe/render/golang"
	"github.com/teranos/observegen/observe/source"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	conv := naming.DefaultConventions()
	v.SetDefault("naming.prefixes", conv.Prefixes)
	v.SetDefault("naming.private_event", conv.PrivateEvent)
	v.SetDefault("naming.public_event", conv.PublicEvent)
	v.SetDefault("naming.subscribe", conv.Subscribe)
	v.SetDefault("naming.hook", conv.Hook)

	markers := source.DefaultMarkers()
	v.SetDefault("markers.tag", markers.TagKey)
	v.SetDefault("markers.directive", markers.Directive)
	v.SetDefault("markers.event", markers.Event)
	v.SetDefault("markers.disposable", markers.Disposable)

	v.SetDefault("output.format", render.FormatGo)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.suffix", "")
	v.SetDefault("output.companion_suffix", golang.DefaultCompanionSuffix)
	v.SetDefault("output.workers", 0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}
