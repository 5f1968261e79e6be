package model

// MemberKind identifies a generated companion member.
type MemberKind int

const (
	// MemberHook is a bodiless change hook completed by hand-written code
	MemberHook MemberKind = iota
	// MemberEventField is the private change-notification event
	MemberEventField
	// MemberProperty is the public getter/setter pair
	MemberProperty
	// MemberEvent is the public subscription event with add/remove accessors
	MemberEvent
	// MemberSubscribe is the disposable subscription method
	MemberSubscribe
)

var memberKindNames = [...]string{"hook", "event_field", "property", "event", "subscribe"}

func (k MemberKind) String() string {
	if int(k) < len(memberKindNames) {
		return memberKindNames[k]
	}
	return "unknown"
}

// Visibility of a generated member.
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// HandlerShape is the signature family of an event handler.
type HandlerShape int

const (
	// ShapeAction handlers receive the value alone (static members)
	ShapeAction HandlerShape = iota
	// ShapeEventHandler handlers receive the sender and the value (instance members)
	ShapeEventHandler
)

func (s HandlerShape) String() string {
	if s == ShapeEventHandler {
		return "event_handler"
	}
	return "action"
}

// Param is a method parameter.
type Param struct {
	Name    string       `yaml:"name"`
	Type    TypeRef      `yaml:"type"`
	Handler bool         `yaml:"handler,omitempty"` // parameter is a handler of the member's shape
	Shape   HandlerShape `yaml:"shape,omitempty"`
}

// Member is one synthesized declaration.
type Member struct {
	Kind       MemberKind   `yaml:"kind"`
	Name       string       `yaml:"name"`
	Visibility Visibility   `yaml:"visibility"`
	Static     bool         `yaml:"static"`
	Type       TypeRef      `yaml:"type"`
	Shape      HandlerShape `yaml:"shape"`
	Params     []Param      `yaml:"params,omitempty"`

	// Field is the backing field the member reads or writes
	Field string `yaml:"field,omitempty"`

	// Bodies. Which ones are set depends on Kind.
	Getter []Stmt `yaml:"getter,omitempty"`
	Setter []Stmt `yaml:"setter,omitempty"`
	Add    []Stmt `yaml:"add,omitempty"`
	Remove []Stmt `yaml:"remove,omitempty"`
	Body   []Stmt `yaml:"body,omitempty"`
}

// StmtKind identifies a statement in a synthesized body.
type StmtKind int

const (
	// StmtReturnField returns Target (a field)
	StmtReturnField StmtKind = iota
	// StmtIfChanged runs Body when Target differs from Operand
	StmtIfChanged
	// StmtAssign assigns Operand to Target
	StmtAssign
	// StmtRaise invokes event Target with Operand, null-safe
	StmtRaise
	// StmtCallHook calls hook Target with Operand
	StmtCallHook
	// StmtReplay calls handler Operand with the current value of field Target
	StmtReplay
	// StmtChain adds handler Operand to event Target
	StmtChain
	// StmtUnchain removes handler Operand from event Target
	StmtUnchain
	// StmtReturnGuard returns a scope guard whose release runs Body
	StmtReturnGuard
)

var stmtKindNames = [...]string{
	"return_field", "if_changed", "assign", "raise", "call_hook",
	"replay", "chain", "unchain", "return_guard",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "unknown"
}

// Stmt is one statement of a synthesized body.
type Stmt struct {
	Kind    StmtKind `yaml:"kind"`
	Target  string   `yaml:"target,omitempty"`
	Operand string   `yaml:"operand,omitempty"`
	// Sender marks instance-shaped invocations that pass the receiver first
	Sender bool `yaml:"sender,omitempty"`
	// Comparable selects != over deep equality for StmtIfChanged
	Comparable bool   `yaml:"comparable,omitempty"`
	Body       []Stmt `yaml:"body,omitempty"`
}

// MarshalYAML renders enum values by name.
func (k MemberKind) MarshalYAML() (interface{}, error)   { return k.String(), nil }
func (v Visibility) MarshalYAML() (interface{}, error)   { return v.String(), nil }
func (s HandlerShape) MarshalYAML() (interface{}, error) { return s.String(), nil }
func (k StmtKind) MarshalYAML() (interface{}, error)     { return k.String(), nil }
func (k ScopeKind) MarshalYAML() (interface{}, error)    { return k.String(), nil }
func (k DeclKind) MarshalYAML() (interface{}, error)     { return k.String(), nil }
func (s Marker) MarshalYAML() (interface{}, error)       { return s.String(), nil }
