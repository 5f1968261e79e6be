package rebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/synth"
)

func nestedDecl() model.TypeDecl {
	return model.TypeDecl{
		Name:       "Inner",
		Kind:       model.KindStruct,
		Modifiers:  []string{"sealed"},
		TypeParams: []model.TypeParam{{Name: "T", Constraint: "comparable"}},
		Bases:      []model.TypeRef{{Expr: "innerObservers[T]"}},
		Enclosing: []model.Scope{
			{Kind: model.ScopeNamespace, Name: "game", Path: "example.com/game"},
			{Kind: model.ScopeType, Name: "Outer"},
			{Kind: model.ScopeType, Name: "Middle", TypeParams: []model.TypeParam{{Name: "K", Constraint: "any"}}},
		},
		Fields: []model.Field{
			{Name: "_value", Type: model.TypeRef{Expr: "T", Comparable: true}, Markers: model.MarkerEvent},
		},
	}
}

func TestRebuildCopiesStructure(t *testing.T) {
	decl := nestedDecl()
	members := []model.Member{synth.Property(decl.Fields[0].Type, naming.Derive("_value"), false)}

	rt := Rebuild(decl, members)

	assert.Equal(t, "Inner", rt.Name)
	assert.Equal(t, model.KindStruct, rt.Kind)
	assert.Equal(t, decl.Modifiers, rt.Modifiers)
	assert.Equal(t, decl.TypeParams, rt.TypeParams)
	assert.Equal(t, decl.Bases, rt.Bases)
	assert.Equal(t, decl.Enclosing, rt.Enclosing)
	assert.Equal(t, members, rt.Members)
}

func TestRebuildDoesNotAlias(t *testing.T) {
	decl := nestedDecl()
	members := []model.Member{synth.Property(decl.Fields[0].Type, naming.Derive("_value"), false)}

	rt := Rebuild(decl, members)
	rt.Modifiers[0] = "changed"
	rt.TypeParams[0].Name = "U"
	rt.Enclosing[2].TypeParams[0].Name = "V"
	rt.Members[0].Setter[0].Body[0].Target = "other"

	assert.Equal(t, "sealed", decl.Modifiers[0])
	assert.Equal(t, "T", decl.TypeParams[0].Name)
	assert.Equal(t, "K", decl.Enclosing[2].TypeParams[0].Name)
	assert.Equal(t, "_value", members[0].Setter[0].Body[0].Target)
}

func TestWrapPreservesNesting(t *testing.T) {
	rt := Rebuild(nestedDecl(), nil)

	root := Wrap(rt)

	scopes := root.Scopes()
	require.Len(t, scopes, 3)
	assert.Equal(t, model.ScopeNamespace, scopes[0].Kind)
	assert.Equal(t, "game", scopes[0].Name)
	assert.Equal(t, "Outer", scopes[1].Name)
	assert.Equal(t, "Middle", scopes[2].Name)

	require.NotNil(t, root.Child)
	require.NotNil(t, root.Child.Child)
	require.NotNil(t, root.Child.Child.Child)
	assert.Nil(t, root.Type, "only the innermost node carries the type")
	leaf := root.Leaf()
	require.NotNil(t, leaf)
	assert.Equal(t, "Inner", leaf.Name)
	assert.Same(t, leaf, root.Child.Child.Child.Type)
}

func TestWrapWithoutEnclosing(t *testing.T) {
	root := Wrap(model.RebuiltType{Name: "Loose"})

	assert.Nil(t, root.Scope)
	assert.Empty(t, root.Scopes())
	require.NotNil(t, root.Type)
	assert.Equal(t, "Loose", root.Type.Name)
}
