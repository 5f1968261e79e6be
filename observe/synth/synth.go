// Package synth builds the companion members of one marked field.
//
// Each rule is a small, state-free transformation of (field type, derived
// names, static flag) into a model.Member. Members only ever reference the
// names they were given, so rules can be combined freely.
package synth

import (
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/selector"
)

// Conventional parameter names used in synthesized bodies.
const (
	ValueParam   = "value"
	HookParam    = "newValue"
	HandlerParam = "handler"
)

// ShapeFor returns the handler shape for a static or instance member.
func ShapeFor(static bool) model.HandlerShape {
	if static {
		return model.ShapeAction
	}
	return model.ShapeEventHandler
}

// EventField declares the private change-notification event.
func EventField(fieldType model.TypeRef, names naming.Names, static bool) model.Member {
	return model.Member{
		Kind:       model.MemberEventField,
		Name:       names.PrivateEvent,
		Visibility: model.Private,
		Static:     static,
		Type:       fieldType,
		Shape:      ShapeFor(static),
		Field:      names.Field,
	}
}

// Hook declares the bodiless change hook.
func Hook(fieldType model.TypeRef, names naming.Names, static bool) model.Member {
	return model.Member{
		Kind:       model.MemberHook,
		Name:       names.Hook,
		Visibility: model.Private,
		Static:     static,
		Type:       fieldType,
		Shape:      ShapeFor(static),
		Params:     []model.Param{{Name: HookParam, Type: fieldType}},
		Field:      names.Field,
	}
}

// Property declares the public property. The setter only assigns, raises
// the private event and calls the hook, in that order, when the value
// actually changes.
func Property(fieldType model.TypeRef, names naming.Names, static bool) model.Member {
	return model.Member{
		Kind:       model.MemberProperty,
		Name:       names.Property,
		Visibility: model.Public,
		Static:     static,
		Type:       fieldType,
		Shape:      ShapeFor(static),
		Field:      names.Field,
		Getter: []model.Stmt{
			{Kind: model.StmtReturnField, Target: names.Field},
		},
		Setter: []model.Stmt{
			{
				Kind:       model.StmtIfChanged,
				Target:     names.Field,
				Operand:    ValueParam,
				Comparable: fieldType.Comparable,
				Body: []model.Stmt{
					{Kind: model.StmtAssign, Target: names.Field, Operand: ValueParam},
					{Kind: model.StmtRaise, Target: names.PrivateEvent, Operand: ValueParam, Sender: !static},
					{Kind: model.StmtCallHook, Target: names.Hook, Operand: ValueParam},
				},
			},
		},
	}
}

// Event declares the public subscription event. Adding a handler replays
// the current value to it before chaining it into the private event.
func Event(fieldType model.TypeRef, names naming.Names, static bool) model.Member {
	return model.Member{
		Kind:       model.MemberEvent,
		Name:       names.PublicEvent,
		Visibility: model.Public,
		Static:     static,
		Type:       fieldType,
		Shape:      ShapeFor(static),
		Params:     []model.Param{handlerParam(fieldType, static)},
		Field:      names.Field,
		Add: []model.Stmt{
			{Kind: model.StmtReplay, Target: names.Field, Operand: HandlerParam, Sender: !static},
			{Kind: model.StmtChain, Target: names.PrivateEvent, Operand: HandlerParam},
		},
		Remove: []model.Stmt{
			{Kind: model.StmtUnchain, Target: names.PrivateEvent, Operand: HandlerParam},
		},
	}
}

// Subscribe declares the disposable subscription method. It chains the
// handler, replays the current value and returns a guard that unchains it.
func Subscribe(fieldType model.TypeRef, names naming.Names, static bool) model.Member {
	return model.Member{
		Kind:       model.MemberSubscribe,
		Name:       names.Subscribe,
		Visibility: model.Public,
		Static:     static,
		Type:       fieldType,
		Shape:      ShapeFor(static),
		Params:     []model.Param{handlerParam(fieldType, static)},
		Field:      names.Field,
		Body: []model.Stmt{
			{Kind: model.StmtChain, Target: names.PrivateEvent, Operand: HandlerParam},
			{Kind: model.StmtReplay, Target: names.Field, Operand: HandlerParam, Sender: !static},
			{
				Kind: model.StmtReturnGuard,
				Body: []model.Stmt{
					{Kind: model.StmtUnchain, Target: names.PrivateEvent, Operand: HandlerParam},
				},
			},
		},
	}
}

// Members builds the full member set for one selected field:
// [hook, private event, property] followed by the optional companions.
func Members(sel selector.Selected, names naming.Names) []model.Member {
	f := sel.Field
	members := []model.Member{
		Hook(f.Type, names, f.Static),
		EventField(f.Type, names, f.Static),
		Property(f.Type, names, f.Static),
	}

	switch sel.Companions {
	case selector.EventOnly:
		members = append(members, Event(f.Type, names, f.Static))
	case selector.DisposableOnly:
		members = append(members, Subscribe(f.Type, names, f.Static))
	case selector.Both:
		members = append(members,
			Event(f.Type, names, f.Static),
			Subscribe(f.Type, names, f.Static),
		)
	}

	return members
}

func handlerParam(fieldType model.TypeRef, static bool) model.Param {
	return model.Param{
		Name:    HandlerParam,
		Type:    fieldType,
		Handler: true,
		Shape:   ShapeFor(static),
	}
}
