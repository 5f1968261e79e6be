// Package model holds the declaration trees read and produced by the
// generator. Every value is treated as immutable: transforms build new
// values and copy slices instead of editing what they were given.
package model

// Marker is the set of field markers present on one field.
type Marker uint8

const (
	// MarkerDisposable requests a disposable subscription method
	MarkerDisposable Marker = 1 << iota
	// MarkerEvent requests a public subscription event
	MarkerEvent
)

// Has reports whether every marker in m is present.
func (s Marker) Has(m Marker) bool { return s&m == m }

func (s Marker) String() string {
	switch s {
	case 0:
		return "none"
	case MarkerDisposable:
		return "disposable"
	case MarkerEvent:
		return "event"
	case MarkerDisposable | MarkerEvent:
		return "event,disposable"
	default:
		return "unknown"
	}
}

// DeclKind distinguishes struct types from package-level declaration groups.
type DeclKind int

const (
	// KindStruct is a named struct type; its fields are instance fields
	KindStruct DeclKind = iota
	// KindPackage groups package-level vars of one file; its fields are static
	KindPackage
)

func (k DeclKind) String() string {
	if k == KindPackage {
		return "package"
	}
	return "struct"
}

// ScopeKind identifies one level of an enclosing chain.
type ScopeKind int

const (
	ScopeNamespace ScopeKind = iota
	ScopeType
)

func (k ScopeKind) String() string {
	if k == ScopeType {
		return "type"
	}
	return "namespace"
}

// Scope is one enclosing level around a declaration.
type Scope struct {
	Kind       ScopeKind   `yaml:"kind"`
	Name       string      `yaml:"name"`
	Path       string      `yaml:"path,omitempty"` // import path for namespaces
	TypeParams []TypeParam `yaml:"type_params,omitempty"`
}

// TypeParam is a generic parameter with its constraint, both printed verbatim.
type TypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// TypeRef is an opaque type expression. It is printed, never inspected.
type TypeRef struct {
	Expr string `yaml:"expr"`
	// Comparable reports whether the type supports == and !=.
	// Supplied by the host; non-comparable types fall back to deep equality.
	Comparable bool `yaml:"comparable"`
}

// Import is one import directive in scope of a declaration.
type Import struct {
	Name string `yaml:"name,omitempty"` // explicit alias, empty when none
	Path string `yaml:"path"`
}

// Field is a field declaration as seen by the host.
type Field struct {
	Name    string  `yaml:"name"`
	Type    TypeRef `yaml:"type"`
	Static  bool    `yaml:"static"`
	Markers Marker  `yaml:"markers"`
}

// Marked reports whether the field carries at least one marker.
func (f Field) Marked() bool { return f.Markers != 0 }

// TypeDecl is a host-supplied type declaration.
type TypeDecl struct {
	Name       string
	Kind       DeclKind
	Modifiers  []string
	TypeParams []TypeParam
	Bases      []TypeRef
	// Enclosing lists the scopes around the declaration, outermost first.
	Enclosing []Scope
	Imports   []Import
	Fields    []Field
	// File is the source file the declaration was read from, if any.
	File string
}

// Namespace returns the innermost namespace scope, or false if there is none.
func (d TypeDecl) Namespace() (Scope, bool) {
	for i := len(d.Enclosing) - 1; i >= 0; i-- {
		if d.Enclosing[i].Kind == ScopeNamespace {
			return d.Enclosing[i], true
		}
	}
	return Scope{}, false
}
