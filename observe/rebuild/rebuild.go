// Package rebuild produces the generated counterpart of a declaration:
// every structural facet copied, the member list replaced, and the
// enclosing chain re-wrapped around it.
package rebuild

import (
	"slices"

	"github.com/teranos/observegen/observe/model"
)

// Rebuild returns decl's counterpart carrying members.
// Nothing reachable from decl or members is shared with the result.
func Rebuild(decl model.TypeDecl, members []model.Member) model.RebuiltType {
	return model.RebuiltType{
		Name:       decl.Name,
		Kind:       decl.Kind,
		Modifiers:  slices.Clone(decl.Modifiers),
		TypeParams: slices.Clone(decl.TypeParams),
		Bases:      slices.Clone(decl.Bases),
		Enclosing:  cloneScopes(decl.Enclosing),
		Members:    cloneMembers(members),
	}
}

// Wrap re-wraps rt in its enclosing chain, innermost first, so the root of
// the returned tree is the outermost scope.
func Wrap(rt model.RebuiltType) model.Node {
	leaf := rt
	node := model.Node{Type: &leaf}
	for i := len(rt.Enclosing) - 1; i >= 0; i-- {
		scope := cloneScope(rt.Enclosing[i])
		child := node
		node = model.Node{Scope: &scope, Child: &child}
	}
	return node
}

func cloneScopes(in []model.Scope) []model.Scope {
	if in == nil {
		return nil
	}
	out := make([]model.Scope, len(in))
	for i, s := range in {
		out[i] = cloneScope(s)
	}
	return out
}

func cloneScope(s model.Scope) model.Scope {
	s.TypeParams = slices.Clone(s.TypeParams)
	return s
}

func cloneMembers(in []model.Member) []model.Member {
	if in == nil {
		return nil
	}
	out := make([]model.Member, len(in))
	for i, m := range in {
		m.Params = slices.Clone(m.Params)
		m.Getter = cloneStmts(m.Getter)
		m.Setter = cloneStmts(m.Setter)
		m.Add = cloneStmts(m.Add)
		m.Remove = cloneStmts(m.Remove)
		m.Body = cloneStmts(m.Body)
		out[i] = m
	}
	return out
}

func cloneStmts(in []model.Stmt) []model.Stmt {
	if in == nil {
		return nil
	}
	out := make([]model.Stmt, len(in))
	for i, s := range in {
		s.Body = cloneStmts(s.Body)
		out[i] = s
	}
	return out
}
