package model

// RebuiltType is the generated counterpart of a TypeDecl: the same
// structural identity carrying only generated members.
type RebuiltType struct {
	Name       string      `yaml:"name"`
	Kind       DeclKind    `yaml:"kind"`
	Modifiers  []string    `yaml:"modifiers,omitempty"`
	TypeParams []TypeParam `yaml:"type_params,omitempty"`
	Bases      []TypeRef   `yaml:"bases,omitempty"`
	Enclosing  []Scope     `yaml:"-"`
	Members    []Member    `yaml:"members"`
}

// Node is one level of a rebuilt declaration tree. Interior nodes carry a
// scope and a child; the innermost node carries the rebuilt type.
type Node struct {
	Scope *Scope       `yaml:"scope,omitempty"`
	Child *Node        `yaml:"child,omitempty"`
	Type  *RebuiltType `yaml:"type,omitempty"`
}

// Scopes returns the scope chain from n down to the rebuilt type, outermost first.
func (n *Node) Scopes() []Scope {
	var scopes []Scope
	for cur := n; cur != nil; cur = cur.Child {
		if cur.Scope != nil {
			scopes = append(scopes, *cur.Scope)
		}
	}
	return scopes
}

// Leaf returns the rebuilt type at the bottom of the tree.
func (n *Node) Leaf() *RebuiltType {
	for cur := n; cur != nil; cur = cur.Child {
		if cur.Type != nil {
			return cur.Type
		}
	}
	return nil
}

// Unit is one output artifact handed back to the host.
type Unit struct {
	// ID is unique per run: type name + "Gen" + run counter
	ID      string   `yaml:"id"`
	Imports []Import `yaml:"imports"`
	Tree    Node     `yaml:"tree"`
	// Text is the rendered unit
	Text []byte `yaml:"-"`
	// Dir is the directory of the source declaration, empty when unknown
	Dir string `yaml:"-"`
	// Source is the file the declaration came from
	Source string `yaml:"source,omitempty"`
}
