package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	got := Derive("_Score")

	assert.Equal(t, Names{
		Field:        "_Score",
		Property:     "Score",
		PrivateEvent: "ScoreChanged",
		PublicEvent:  "ScoreChanged",
		Subscribe:    "SubscribeToScore",
		Hook:         "OnScoreChange",
	}, got)
}

func TestDeriveIsDeterministic(t *testing.T) {
	for _, name := range []string{"_Score", "m_health", "score", "Mana", "_"} {
		assert.Equal(t, Derive(name), Derive(name), name)
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected string
	}{
		{"underscore prefix", "_Score", "Score"},
		{"underscore lower", "_score", "Score"},
		{"m_ prefix", "m_health", "Health"},
		{"m_ preferred over underscore", "m_Level", "Level"},
		{"unexported without prefix", "score", "Score"},
		{"no prefix kept", "Mana", "Mana"},
		{"prefix only kept whole", "_", "_"},
		{"m_ only kept whole", "m_", "M_"},
		{"acronym untouched", "_URL", "URL"},
	}

	c := DefaultConventions()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.PropertyName(tt.field))
		})
	}
}

func TestCustomConventions(t *testing.T) {
	c := Conventions{
		Prefixes:     []string{"f"},
		PrivateEvent: "{Property}Notify",
		PublicEvent:  "{Property}Updated",
		Subscribe:    "Watch{Property}",
		Hook:         "after{Field}",
	}

	got := c.Derive("fColor")

	assert.Equal(t, "Color", got.Property)
	assert.Equal(t, "ColorNotify", got.PrivateEvent)
	assert.Equal(t, "ColorUpdated", got.PublicEvent)
	assert.Equal(t, "WatchColor", got.Subscribe)
	assert.Equal(t, "afterfColor", got.Hook)
}

func TestUnexport(t *testing.T) {
	tests := map[string]string{
		"ScoreChanged":  "scoreChanged",
		"OnScoreChange": "onScoreChange",
		"URLChanged":    "urlChanged",
		"ID":            "id",
		"already":       "already",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Unexport(in), in)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"PlayerGen0":      "player_gen0",
		"widgetGen12":     "widget_gen12",
		"HTTPSConnection": "https_connection",
		"my_Type":         "my_type",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}
