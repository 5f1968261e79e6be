package yamldump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/observegen/observe/model"
)

func nestedUnit() *model.Unit {
	rt := model.RebuiltType{
		Name: "Player",
		Kind: model.KindStruct,
		Members: []model.Member{
			{Kind: model.MemberProperty, Name: "Score", Field: "_Score", Type: model.TypeRef{Expr: "int", Comparable: true}},
		},
	}
	team := model.Node{Scope: &model.Scope{Kind: model.ScopeType, Name: "Team"}, Child: &model.Node{Type: &rt}}
	return &model.Unit{
		ID:      "PlayerGen3",
		Imports: []model.Import{{Path: "time"}, {Path: "time"}},
		Tree:    model.Node{Scope: &model.Scope{Kind: model.ScopeNamespace, Name: "game"}, Child: &team},
		Text:    []byte("ignored"),
	}
}

func TestRenderNestedTree(t *testing.T) {
	out, err := New().Render(nestedUnit())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "# Code generated by observegen. DO NOT EDIT.\n"))
	assert.NotContains(t, text, "ignored")

	var doc struct {
		ID      string `yaml:"id"`
		Imports []struct {
			Path string `yaml:"path"`
		} `yaml:"imports"`
		Tree struct {
			Scope map[string]any `yaml:"scope"`
			Child struct {
				Scope map[string]any `yaml:"scope"`
				Child struct {
					Type struct {
						Name    string           `yaml:"name"`
						Members []map[string]any `yaml:"members"`
					} `yaml:"type"`
				} `yaml:"child"`
			} `yaml:"child"`
		} `yaml:"tree"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.Equal(t, "PlayerGen3", doc.ID)
	assert.Len(t, doc.Imports, 2, "duplicates are kept in the outline")
	assert.Equal(t, "game", doc.Tree.Scope["name"])
	assert.Equal(t, "Team", doc.Tree.Child.Scope["name"])
	assert.Equal(t, "Player", doc.Tree.Child.Child.Type.Name)
	require.Len(t, doc.Tree.Child.Child.Type.Members, 1)
	assert.Equal(t, "Score", doc.Tree.Child.Child.Type.Members[0]["name"])
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := New().Render(nestedUnit())
	require.NoError(t, err)
	b, err := New().Render(nestedUnit())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
