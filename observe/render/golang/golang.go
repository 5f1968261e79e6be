// Package golang renders output units as Go source.
//
// Go has no partial types, partial methods or events, so the rendering maps
// each member onto the closest Go shape:
//
//   - private events become fields of a companion struct that the
//     hand-written type embeds (instance) or package-level vars (static)
//   - the change hook is an optional unexported interface checked with a
//     type assertion (instance) or a func variable (static)
//   - the public event is an Add/Remove method pair keyed by notify.ID
//   - the disposable subscription returns a *scope.Guard
package golang

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/synth"
)

// Header marks every emitted file as generated.
const Header = "// Code generated by observegen. DO NOT EDIT."

// DefaultCompanionSuffix names the struct holding instance events.
const DefaultCompanionSuffix = "Observers"

// Options configures the Go renderer.
type Options struct {
	CompanionSuffix string
}

// Generator renders Go source.
type Generator struct {
	opts Options
}

// New creates a Go renderer.
func New(opts Options) *Generator {
	if opts.CompanionSuffix == "" {
		opts.CompanionSuffix = DefaultCompanionSuffix
	}
	return &Generator{opts: opts}
}

// FileExtension returns "go"
func (g *Generator) FileExtension() string { return "go" }

// Format returns "go"
func (g *Generator) Format() string { return "go" }

// CompanionName returns the name of the struct typeName must embed.
func (g *Generator) CompanionName(typeName string) string {
	return CompanionName(typeName, g.opts.CompanionSuffix)
}

// CompanionName returns the companion struct name for typeName.
func CompanionName(typeName, suffix string) string {
	if suffix == "" {
		suffix = DefaultCompanionSuffix
	}
	return naming.Unexport(typeName) + suffix
}

// Render produces gofmt-ed Go source for unit.
func (g *Generator) Render(unit *model.Unit) ([]byte, error) {
	pkg, err := packageName(unit.Tree.Scopes())
	if err != nil {
		return nil, err
	}
	rt := unit.Tree.Leaf()
	if rt == nil {
		return nil, errors.Newf("unit %s has no type", unit.ID)
	}

	p := &printer{
		rt:        rt,
		companion: g.CompanionName(rt.Name),
	}
	p.setReceiver()

	p.line(Header)
	if unit.Source != "" {
		p.line("// Source: " + filepath.Base(unit.Source))
	}
	p.line("")
	p.line("package " + pkg)
	p.line("")
	p.imports(unit.Imports)
	p.companionStruct()
	for _, m := range rt.Members {
		p.member(m)
	}

	filename := unit.ID + ".go"
	if unit.Dir != "" {
		filename = filepath.Join(unit.Dir, filename)
	}
	out, err := imports.Process(filename, p.buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to format generated source for %s", unit.ID)
	}
	return out, nil
}

// packageName returns the innermost namespace. Type scopes cannot be
// expressed in Go.
func packageName(scopes []model.Scope) (string, error) {
	name := ""
	for _, s := range scopes {
		switch s.Kind {
		case model.ScopeNamespace:
			name = s.Name
		case model.ScopeType:
			return "", errors.Wrapf(errors.ErrNestedScope, "enclosing type %s", s.Name)
		}
	}
	if name == "" {
		return "", errors.New("unit has no package scope")
	}
	return name, nil
}

type printer struct {
	buf       bytes.Buffer
	indent    int
	rt        *model.RebuiltType
	companion string
	recv      string // receiver variable, empty for package-level declarations
	recvType  string // *T[P...]
}

func (p *printer) line(s string) {
	if s != "" {
		p.buf.WriteString(strings.Repeat("\t", p.indent))
	}
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) linef(format string, args ...interface{}) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *printer) setReceiver() {
	if p.rt.Kind == model.KindPackage {
		return
	}
	p.recv = receiverName(p.rt.Name)
	p.recvType = "*" + p.rt.Name + typeArgs(p.rt.TypeParams)
}

// receiverName follows Go convention: the lower-cased first letter.
func receiverName(typeName string) string {
	for _, r := range naming.Unexport(typeName) {
		if r == '_' {
			break
		}
		return string(r)
	}
	return "r"
}

func typeArgs(params []model.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, tp := range params {
		names[i] = tp.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func typeParamList(params []model.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, tp := range params {
		parts[i] = tp.Name + " " + tp.Constraint
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *printer) imports(list []model.Import) {
	seen := make(map[string]bool, len(list))
	var lines []string
	for _, imp := range list {
		if seen[imp.Path] {
			continue
		}
		seen[imp.Path] = true
		if imp.Name != "" {
			lines = append(lines, fmt.Sprintf("%s %q", imp.Name, imp.Path))
		} else {
			lines = append(lines, fmt.Sprintf("%q", imp.Path))
		}
	}
	if len(lines) == 0 {
		return
	}
	p.line("import (")
	p.indent++
	for _, l := range lines {
		p.line(l)
	}
	p.indent--
	p.line(")")
	p.line("")
}

func (p *printer) companionStruct() {
	var fields []model.Member
	for _, m := range p.rt.Members {
		if m.Kind == model.MemberEventField && !p.static(m) {
			fields = append(fields, m)
		}
	}
	if len(fields) == 0 {
		return
	}

	p.linef("// %s holds the change events of %s. Embed it in %s.", p.companion, p.rt.Name, p.rt.Name)
	p.linef("type %s%s struct {", p.companion, typeParamList(p.rt.TypeParams))
	p.indent++
	for _, f := range fields {
		p.linef("%s %s", naming.Unexport(f.Name), p.eventType(f))
	}
	p.indent--
	p.line("}")
	p.line("")
}

// static reports whether m renders at package level.
func (p *printer) static(m model.Member) bool {
	return m.Static || p.recv == ""
}

func (p *printer) eventType(m model.Member) string {
	if p.static(m) {
		return "notify.Signal[" + m.Type.Expr + "]"
	}
	return "notify.Event[" + p.recvType + ", " + m.Type.Expr + "]"
}

func (p *printer) handlerType(m model.Member) string {
	if p.static(m) {
		return "notify.Action[" + m.Type.Expr + "]"
	}
	return "notify.Handler[" + p.recvType + ", " + m.Type.Expr + "]"
}

func (p *printer) hookInterface(hook string) string {
	return naming.Unexport(p.rt.Name) + naming.Export(hook)
}

func (p *printer) member(m model.Member) {
	switch m.Kind {
	case model.MemberHook:
		p.hook(m)
	case model.MemberEventField:
		if p.static(m) {
			p.linef("var %s %s", naming.Unexport(m.Name), p.eventType(m))
			p.line("")
		}
	case model.MemberProperty:
		p.property(m)
	case model.MemberEvent:
		p.event(m)
	case model.MemberSubscribe:
		p.subscribe(m)
	}
}

func (p *printer) params(m model.Member, list []model.Param) string {
	parts := make([]string, len(list))
	for i, prm := range list {
		typ := prm.Type.Expr
		if prm.Handler {
			typ = p.handlerType(m)
		}
		parts[i] = p.local(m, prm.Name) + " " + typ
	}
	return strings.Join(parts, ", ")
}

func (p *printer) funcHeader(m model.Member, name, params, result string) {
	if result != "" {
		result = " " + result
	}
	if p.static(m) {
		p.linef("func %s(%s)%s {", name, params, result)
		return
	}
	p.linef("func (%s %s) %s(%s)%s {", p.recv, p.recvType, name, params, result)
}

func (p *printer) body(m model.Member, stmts []model.Stmt) {
	p.indent++
	for _, s := range stmts {
		p.stmt(m, s)
	}
	p.indent--
}

func (p *printer) hook(m model.Member) {
	if p.static(m) {
		p.linef("// %s, when set, is called after every change of %s.", naming.Unexport(m.Name), m.Field)
		p.linef("var %s func(%s)", naming.Unexport(m.Name), p.params(m, m.Params))
		p.line("")
		return
	}
	iface := p.hookInterface(m.Name)
	p.linef("// %s is implemented by %s to react to every change of %s.", iface, p.rt.Name, m.Field)
	p.linef("type %s%s interface {", iface, typeParamList(p.rt.TypeParams))
	p.indent++
	p.linef("%s(%s)", naming.Unexport(m.Name), p.params(m, m.Params))
	p.indent--
	p.line("}")
	p.line("")
}

func (p *printer) property(m model.Member) {
	p.linef("// %s returns the current value of %s.", m.Name, m.Field)
	p.funcHeader(m, m.Name, "", m.Type.Expr)
	p.body(m, m.Getter)
	p.line("}")
	p.line("")

	p.linef("// Set%s assigns %s and notifies subscribers when the value changes.", m.Name, m.Field)
	p.funcHeader(m, "Set"+m.Name, p.local(m, synth.ValueParam)+" "+m.Type.Expr, "")
	p.body(m, m.Setter)
	p.line("}")
	p.line("")
}

func (p *printer) event(m model.Member) {
	p.linef("// Add%s subscribes handler to changes of %s. handler is called once", m.Name, m.Field)
	p.line("// with the current value before Add" + m.Name + " returns.")
	p.funcHeader(m, "Add"+m.Name, p.params(m, m.Params), "notify.ID")
	p.body(m, m.Add)
	p.indent++
	p.line("return " + p.local(m, "id"))
	p.indent--
	p.line("}")
	p.line("")

	p.linef("// Remove%s unsubscribes the handler registered under id.", m.Name)
	p.funcHeader(m, "Remove"+m.Name, p.local(m, "id")+" notify.ID", "")
	p.body(m, m.Remove)
	p.line("}")
	p.line("")
}

func (p *printer) subscribe(m model.Member) {
	p.linef("// %s subscribes handler to changes of %s and calls it once with the", m.Name, m.Field)
	p.line("// current value. Releasing the returned guard unsubscribes handler.")
	p.funcHeader(m, m.Name, p.params(m, m.Params), "*scope.Guard")
	p.body(m, m.Body)
	p.line("}")
	p.line("")
}

// local returns the name of a parameter or local variable of m. Package-level
// members read unqualified vars, so a local spelled like one of them is
// renamed rather than shadowing it.
func (p *printer) local(m model.Member, name string) string {
	if !p.static(m) {
		return name
	}
	taken := referenced(m)
	for taken[name] {
		name += "Arg"
	}
	return name
}

// referenced collects the package-level names m's body reads or calls.
func referenced(m model.Member) map[string]bool {
	names := map[string]bool{m.Field: true}
	var walk func([]model.Stmt)
	walk = func(stmts []model.Stmt) {
		for _, s := range stmts {
			switch s.Kind {
			case model.StmtRaise, model.StmtChain, model.StmtUnchain, model.StmtCallHook:
				names[naming.Unexport(s.Target)] = true
			default:
				if s.Target != "" {
					names[s.Target] = true
				}
			}
			walk(s.Body)
		}
	}
	for _, body := range [][]model.Stmt{m.Getter, m.Setter, m.Add, m.Remove, m.Body} {
		walk(body)
	}
	return names
}

// ref qualifies a field of the declaration for the current member.
func (p *printer) ref(m model.Member, name string) string {
	if p.static(m) {
		return name
	}
	return p.recv + "." + name
}

func (p *printer) stmt(m model.Member, s model.Stmt) {
	switch s.Kind {
	case model.StmtReturnField:
		p.line("return " + p.ref(m, s.Target))

	case model.StmtIfChanged:
		field := p.ref(m, s.Target)
		operand := p.local(m, s.Operand)
		if s.Comparable {
			p.linef("if %s != %s {", field, operand)
		} else {
			p.linef("if notify.Differs(%s, %s) {", field, operand)
		}
		p.body(m, s.Body)
		p.line("}")

	case model.StmtAssign:
		p.linef("%s = %s", p.ref(m, s.Target), p.local(m, s.Operand))

	case model.StmtRaise:
		event := p.ref(m, naming.Unexport(s.Target))
		if s.Sender && !p.static(m) {
			p.linef("%s.Invoke(%s, %s)", event, p.recv, s.Operand)
		} else {
			p.linef("%s.Invoke(%s)", event, p.local(m, s.Operand))
		}

	case model.StmtCallHook:
		method := naming.Unexport(s.Target)
		if p.static(m) {
			p.linef("if %s != nil {", method)
			p.indent++
			p.linef("%s(%s)", method, p.local(m, s.Operand))
			p.indent--
			p.line("}")
			return
		}
		p.linef("if hook, ok := any(%s).(%s%s); ok {", p.recv, p.hookInterface(s.Target), typeArgs(p.rt.TypeParams))
		p.indent++
		p.linef("hook.%s(%s)", method, s.Operand)
		p.indent--
		p.line("}")

	case model.StmtReplay:
		if s.Sender && !p.static(m) {
			p.linef("%s(%s, %s)", s.Operand, p.recv, p.ref(m, s.Target))
		} else {
			p.linef("%s(%s)", p.local(m, s.Operand), p.ref(m, s.Target))
		}

	case model.StmtChain:
		p.linef("%s := %s.Add(%s)", p.local(m, "id"), p.ref(m, naming.Unexport(s.Target)), p.local(m, s.Operand))

	case model.StmtUnchain:
		p.linef("%s.Remove(%s)", p.ref(m, naming.Unexport(s.Target)), p.local(m, "id"))

	case model.StmtReturnGuard:
		p.line("return scope.New(func() {")
		p.body(m, s.Body)
		p.line("})")
	}
}
