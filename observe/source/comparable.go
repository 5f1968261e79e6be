package source

import (
	"go/ast"
	"go/types"
	"strings"

	"github.com/teranos/observegen/observe/model"
)

// typeRef prints expr and decides whether generated setters may compare it
// with !=. Type information wins when present; otherwise the syntax decides.
func typeRef(expr ast.Expr, info *types.Info, params []model.TypeParam) model.TypeRef {
	ref := model.TypeRef{Expr: types.ExprString(expr)}
	if info != nil {
		if tv, ok := info.Types[expr]; ok && tv.Type != nil && tv.Type != types.Typ[types.Invalid] {
			ref.Comparable = isComparable(tv.Type)
			return ref
		}
	}
	ref.Comparable = comparableExpr(expr, params)
	return ref
}

// isComparable reports whether != on t can never panic. Interfaces fail
// anywhere inside t: != on an interface holding a slice panics at run time,
// deep equality does not.
func isComparable(t types.Type) bool {
	t = types.Unalias(t)
	if tp, ok := t.(*types.TypeParam); ok {
		return typeParamComparable(tp)
	}
	switch u := t.Underlying().(type) {
	case *types.Interface:
		return false
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if !isComparable(u.Field(i).Type()) {
				return false
			}
		}
		return true
	case *types.Array:
		return isComparable(u.Elem())
	default:
		return types.Comparable(t)
	}
}

// typeParamComparable requires a constraint listing its types. The bare
// comparable constraint is satisfied by interface types too.
func typeParamComparable(tp *types.TypeParam) bool {
	iface, ok := tp.Constraint().Underlying().(*types.Interface)
	if !ok {
		return false
	}
	terms := typeTerms(iface)
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if !isComparable(term) {
			return false
		}
	}
	return true
}

// typeTerms collects every type term of iface and the interfaces it embeds.
func typeTerms(iface *types.Interface) []types.Type {
	var terms []types.Type
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		switch e := iface.EmbeddedType(i).(type) {
		case *types.Union:
			for j := 0; j < e.Len(); j++ {
				terms = append(terms, e.Term(j).Type())
			}
		default:
			if inner, ok := e.Underlying().(*types.Interface); ok {
				terms = append(terms, typeTerms(inner)...)
			} else {
				terms = append(terms, e)
			}
		}
	}
	return terms
}

// predeclaredComparable are the identifiers syntax alone can vouch for.
var predeclaredComparable = map[string]bool{
	"bool": true, "string": true, "byte": true, "rune": true, "uintptr": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// comparableExpr guesses from syntax alone. Named types cannot be looked
// into, so only predeclared types, pointers and channels count.
func comparableExpr(expr ast.Expr, params []model.TypeParam) bool {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return comparableExpr(e.X, params)
	case *ast.StarExpr, *ast.ChanType:
		return true
	case *ast.ArrayType:
		if e.Len == nil {
			return false
		}
		return comparableExpr(e.Elt, params)
	case *ast.StructType:
		for _, f := range e.Fields.List {
			if !comparableExpr(f.Type, params) {
				return false
			}
		}
		return true
	case *ast.Ident:
		for _, tp := range params {
			if tp.Name == e.Name {
				return constraintComparable(tp.Constraint)
			}
		}
		return predeclaredComparable[e.Name]
	default:
		return false
	}
}

// constraintComparable accepts unions of predeclared types such as
// "~int | ~string".
func constraintComparable(constraint string) bool {
	for _, term := range strings.Split(constraint, "|") {
		term = strings.TrimPrefix(strings.TrimSpace(term), "~")
		if !predeclaredComparable[term] {
			return false
		}
	}
	return true
}
