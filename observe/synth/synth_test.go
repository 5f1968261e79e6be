package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/selector"
)

var intType = model.TypeRef{Expr: "int", Comparable: true}

func kinds(members []model.Member) []model.MemberKind {
	out := make([]model.MemberKind, len(members))
	for i, m := range members {
		out[i] = m.Kind
	}
	return out
}

func stmtKinds(stmts []model.Stmt) []model.StmtKind {
	out := make([]model.StmtKind, len(stmts))
	for i, s := range stmts {
		out[i] = s.Kind
	}
	return out
}

func TestMembersPerCompanionVariant(t *testing.T) {
	base := []model.MemberKind{model.MemberHook, model.MemberEventField, model.MemberProperty}
	tests := []struct {
		name       string
		companions selector.Companions
		expected   []model.MemberKind
	}{
		{"disposable only", selector.DisposableOnly, append(append([]model.MemberKind{}, base...), model.MemberSubscribe)},
		{"event only", selector.EventOnly, append(append([]model.MemberKind{}, base...), model.MemberEvent)},
		{"both", selector.Both, append(append([]model.MemberKind{}, base...), model.MemberEvent, model.MemberSubscribe)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := selector.Selected{Field: model.Field{Name: "_Score", Type: intType}, Companions: tt.companions}
			got := Members(sel, naming.Derive("_Score"))
			assert.Equal(t, tt.expected, kinds(got))
		})
	}
}

func TestPropertySetterOrder(t *testing.T) {
	names := naming.Derive("_Score")
	p := Property(intType, names, false)

	assert.Equal(t, "Score", p.Name)
	assert.Equal(t, model.Public, p.Visibility)
	require.Len(t, p.Getter, 1)
	assert.Equal(t, model.StmtReturnField, p.Getter[0].Kind)
	assert.Equal(t, "_Score", p.Getter[0].Target)

	require.Len(t, p.Setter, 1)
	guard := p.Setter[0]
	assert.Equal(t, model.StmtIfChanged, guard.Kind)
	assert.True(t, guard.Comparable)
	// assign, then event, then hook
	assert.Equal(t,
		[]model.StmtKind{model.StmtAssign, model.StmtRaise, model.StmtCallHook},
		stmtKinds(guard.Body))
	assert.Equal(t, "ScoreChanged", guard.Body[1].Target)
	assert.True(t, guard.Body[1].Sender, "instance events pass the sender")
	assert.Equal(t, "OnScoreChange", guard.Body[2].Target)
}

func TestPropertyNonComparable(t *testing.T) {
	p := Property(model.TypeRef{Expr: "[]string"}, naming.Derive("_tags"), false)
	assert.False(t, p.Setter[0].Comparable)
}

func TestStaticVariance(t *testing.T) {
	sel := selector.Selected{
		Field:      model.Field{Name: "_volume", Type: intType, Static: true},
		Companions: selector.Both,
	}

	for _, m := range Members(sel, naming.Derive("_volume")) {
		assert.True(t, m.Static, "%s must be static", m.Kind)
		assert.Equal(t, model.ShapeAction, m.Shape, "%s must use the action shape", m.Kind)
		for _, p := range m.Params {
			if p.Handler {
				assert.Equal(t, model.ShapeAction, p.Shape)
			}
		}
	}

	p := Property(intType, naming.Derive("_volume"), true)
	assert.False(t, p.Setter[0].Body[1].Sender, "static events pass the value alone")
}

func TestEventReplaysBeforeChaining(t *testing.T) {
	e := Event(intType, naming.Derive("_Score"), false)

	assert.Equal(t, model.MemberEvent, e.Kind)
	assert.Equal(t, "ScoreChanged", e.Name)
	assert.Equal(t, []model.StmtKind{model.StmtReplay, model.StmtChain}, stmtKinds(e.Add))
	assert.Equal(t, []model.StmtKind{model.StmtUnchain}, stmtKinds(e.Remove))
}

func TestSubscribeChainsReplaysAndGuards(t *testing.T) {
	s := Subscribe(intType, naming.Derive("_Score"), false)

	assert.Equal(t, "SubscribeToScore", s.Name)
	require.Len(t, s.Params, 1)
	assert.True(t, s.Params[0].Handler)
	assert.Equal(t,
		[]model.StmtKind{model.StmtChain, model.StmtReplay, model.StmtReturnGuard},
		stmtKinds(s.Body))
	release := s.Body[2].Body
	require.Len(t, release, 1)
	assert.Equal(t, model.StmtUnchain, release[0].Kind)
	assert.Equal(t, "ScoreChanged", release[0].Target)
}

func TestHookAndEventField(t *testing.T) {
	names := naming.Derive("_Score")

	h := Hook(intType, names, false)
	assert.Equal(t, "OnScoreChange", h.Name)
	assert.Equal(t, model.Private, h.Visibility)
	assert.Equal(t, []model.Param{{Name: HookParam, Type: intType}}, h.Params)

	ev := EventField(intType, names, false)
	assert.Equal(t, "ScoreChanged", ev.Name)
	assert.Equal(t, model.Private, ev.Visibility)
	assert.Equal(t, model.ShapeEventHandler, ev.Shape)
}
