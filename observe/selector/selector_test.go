package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/observegen/observe/model"
)

func TestCompanionsFor(t *testing.T) {
	tests := []struct {
		name      string
		markers   model.Marker
		expected  Companions
		event     bool
		subscribe bool
	}{
		{"no markers", 0, None, false, false},
		{"disposable only", model.MarkerDisposable, DisposableOnly, false, true},
		{"event only", model.MarkerEvent, EventOnly, true, false},
		{"both markers", model.MarkerEvent | model.MarkerDisposable, Both, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CompanionsFor(tt.markers)
			assert.Equal(t, tt.expected, c)
			assert.Equal(t, tt.event, c.WantsEvent())
			assert.Equal(t, tt.subscribe, c.WantsSubscribe())
		})
	}
}

func TestSelectKeepsDeclarationOrder(t *testing.T) {
	decl := model.TypeDecl{
		Name: "Player",
		Fields: []model.Field{
			{Name: "_health", Markers: model.MarkerDisposable},
			{Name: "name"},
			{Name: "_score", Markers: model.MarkerEvent},
			{Name: "_mana", Markers: model.MarkerEvent | model.MarkerDisposable},
			{Name: "cache"},
		},
	}

	got := Select(decl)

	require.Len(t, got, 3)
	assert.Equal(t, "_health", got[0].Field.Name)
	assert.Equal(t, DisposableOnly, got[0].Companions)
	assert.Equal(t, "_score", got[1].Field.Name)
	assert.Equal(t, EventOnly, got[1].Companions)
	assert.Equal(t, "_mana", got[2].Field.Name)
	assert.Equal(t, Both, got[2].Companions)
}

func TestSelectWithoutMarkedFields(t *testing.T) {
	decl := model.TypeDecl{Name: "Plain", Fields: []model.Field{{Name: "x"}}}
	assert.Empty(t, Select(decl))
}
