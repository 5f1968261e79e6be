// Package source reads Go packages and turns the declarations carrying
// observe markers into model.TypeDecl values.
//
// Struct fields are instance fields. Marked package-level vars are static;
// all of one file's marked vars form a single declaration of kind
// package named after the package.
package source

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/render/golang"
)

// LoadMode is the packages.Load mode the loader needs.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Loader reads declarations from Go source.
type Loader struct {
	markers         Markers
	companionSuffix string
	fset            *token.FileSet
}

// Option configures a Loader.
type Option func(*Loader)

// WithMarkers overrides the marker names.
func WithMarkers(m Markers) Option {
	return func(l *Loader) { l.markers = m }
}

// WithCompanionSuffix sets the companion struct suffix used when checking
// that a struct embeds its generated events.
func WithCompanionSuffix(suffix string) Option {
	return func(l *Loader) { l.companionSuffix = suffix }
}

// NewLoader creates a loader with the default markers.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		markers:         DefaultMarkers(),
		companionSuffix: golang.DefaultCompanionSuffix,
		fset:            token.NewFileSet(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Loaded is the result of loading packages.
type Loaded struct {
	// Decls are the marked declarations in package, file and source order
	Decls []model.TypeDecl
	// Dirs are the directories of every loaded package, marked or not
	Dirs []string
}

// LoadPackages loads the packages matching patterns relative to dir.
// Type information is used to decide comparability; packages with type
// errors are still read.
func (l *Loader) LoadPackages(ctx context.Context, dir string, patterns ...string) (*Loaded, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
		Fset:    l.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %v", patterns)
	}
	if len(pkgs) == 0 {
		return nil, errors.Wrapf(errors.ErrNoPackages, "patterns %v in %s", patterns, dir)
	}

	loaded := &Loaded{}
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) > 0 {
			loaded.Dirs = append(loaded.Dirs, filepath.Dir(pkg.GoFiles[0]))
		}
		for _, pkgErr := range pkg.Errors {
			logger.Debugw("Package has errors, continuing with partial information",
				logger.FieldPackage, pkg.PkgPath,
				logger.FieldError, pkgErr.Error())
		}
		for _, file := range pkg.Syntax {
			filename := l.fset.Position(file.Package).Filename
			loaded.Decls = append(loaded.Decls, l.fromFile(file, filename, pkg.PkgPath, pkg.TypesInfo)...)
		}
	}

	logger.Debugw("Loaded declarations",
		logger.FieldCount, len(loaded.Decls),
		"packages", len(pkgs))
	return loaded, nil
}

// ParseFile reads declarations from a single file without type checking.
// src may be nil, in which case the file is read from disk.
func (l *Loader) ParseFile(filename string, src any) ([]model.TypeDecl, error) {
	file, err := parser.ParseFile(l.fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filename)
	}
	return l.fromFile(file, filename, "", nil), nil
}

// ParseDir reads declarations from every non-test Go file in dir, in
// file name order, without type checking.
func (l *Loader) ParseDir(dir string) ([]model.TypeDecl, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var decls []model.TypeDecl
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		fileDecls, err := l.ParseFile(filepath.Join(dir, name), nil)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fileDecls...)
	}
	return decls, nil
}

// fromFile collects the marked struct declarations of file followed by the
// package-level declaration, if any var is marked. info may be nil.
func (l *Loader) fromFile(file *ast.File, filename, pkgPath string, info *types.Info) []model.TypeDecl {
	if ast.IsGenerated(file) {
		return nil
	}

	pkgName := file.Name.Name
	imports := fileImports(file)
	enclosing := []model.Scope{{Kind: model.ScopeNamespace, Name: pkgName, Path: pkgPath}}

	var decls []model.TypeDecl
	var statics []model.Field

	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				decl, ok := l.structDecl(ts, info)
				if !ok {
					continue
				}
				decl.Enclosing = cloneEnclosing(enclosing)
				decl.Imports = append([]model.Import(nil), imports...)
				decl.File = filename
				l.checkCompanion(decl)
				decls = append(decls, decl)
			}
		case token.VAR:
			statics = append(statics, l.staticFields(gen, info)...)
		}
	}

	if len(statics) > 0 {
		decls = append(decls, model.TypeDecl{
			Name:      pkgName,
			Kind:      model.KindPackage,
			Enclosing: cloneEnclosing(enclosing),
			Imports:   append([]model.Import(nil), imports...),
			Fields:    statics,
			File:      filename,
		})
	}
	return decls
}

// structDecl reads a struct type. It reports false for non-struct types
// and for structs without marked fields.
func (l *Loader) structDecl(ts *ast.TypeSpec, info *types.Info) (model.TypeDecl, bool) {
	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return model.TypeDecl{}, false
	}

	params := typeParams(ts.TypeParams)
	decl := model.TypeDecl{
		Name:       ts.Name.Name,
		Kind:       model.KindStruct,
		TypeParams: params,
	}

	marked := false
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			decl.Bases = append(decl.Bases, model.TypeRef{Expr: types.ExprString(field.Type)})
			continue
		}
		ref := typeRef(field.Type, info, params)
		for _, name := range field.Names {
			where := ts.Name.Name + "." + name.Name
			markers := l.markers.fromTag(field.Tag, where) |
				l.markers.fromComments(where, field.Doc, field.Comment)
			if markers != 0 {
				marked = true
				if name.IsExported() {
					logger.Warnw("Marked field is exported; the generated accessor will collide with it",
						logger.FieldType, ts.Name.Name,
						logger.FieldField, name.Name)
				}
			}
			decl.Fields = append(decl.Fields, model.Field{
				Name:    name.Name,
				Type:    ref,
				Markers: markers,
			})
		}
	}
	return decl, marked
}

// staticFields reads the marked vars of one var declaration. A directive
// on an unparenthesized declaration is attached to the GenDecl itself.
func (l *Loader) staticFields(gen *ast.GenDecl, info *types.Info) []model.Field {
	var fields []model.Field
	for _, spec := range gen.Specs {
		vs := spec.(*ast.ValueSpec)
		groups := []*ast.CommentGroup{vs.Doc, vs.Comment}
		if !gen.Lparen.IsValid() {
			groups = append(groups, gen.Doc)
		}

		for i, name := range vs.Names {
			markers := l.markers.fromComments(name.Name, groups...)
			if markers == 0 {
				continue
			}
			ref, ok := varType(vs, i, info)
			if !ok {
				logger.Warnw("Skipping marked var without an explicit type",
					logger.FieldField, name.Name)
				continue
			}
			fields = append(fields, model.Field{
				Name:    name.Name,
				Type:    ref,
				Static:  true,
				Markers: markers,
			})
		}
	}
	return fields
}

// checkCompanion warns when a struct with marked fields does not embed the
// generated companion struct holding its events, by value or by pointer.
func (l *Loader) checkCompanion(decl model.TypeDecl) {
	want := golang.CompanionName(decl.Name, l.companionSuffix)
	for _, base := range decl.Bases {
		expr := strings.TrimPrefix(base.Expr, "*")
		if i := strings.IndexByte(expr, '['); i >= 0 {
			expr = expr[:i]
		}
		if expr == want {
			return
		}
	}
	logger.Warnw("Struct does not embed its generated companion; generated methods will not compile",
		logger.FieldType, decl.Name,
		"companion", want)
}

func fileImports(file *ast.File) []model.Import {
	var out []model.Import
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := model.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		out = append(out, imp)
	}
	return out
}

func typeParams(list *ast.FieldList) []model.TypeParam {
	if list == nil {
		return nil
	}
	var out []model.TypeParam
	for _, f := range list.List {
		constraint := types.ExprString(f.Type)
		for _, name := range f.Names {
			out = append(out, model.TypeParam{Name: name.Name, Constraint: constraint})
		}
	}
	return out
}

func varType(vs *ast.ValueSpec, i int, info *types.Info) (model.TypeRef, bool) {
	if vs.Type != nil {
		return typeRef(vs.Type, info, nil), true
	}
	if info == nil {
		return model.TypeRef{}, false
	}
	obj := info.Defs[vs.Names[i]]
	if obj == nil || obj.Type() == nil || obj.Type() == types.Typ[types.Invalid] {
		return model.TypeRef{}, false
	}
	qualifier := func(p *types.Package) string {
		if p == obj.Pkg() {
			return ""
		}
		return p.Name()
	}
	return model.TypeRef{
		Expr:       types.TypeString(obj.Type(), qualifier),
		Comparable: isComparable(obj.Type()),
	}, true
}

func cloneEnclosing(in []model.Scope) []model.Scope {
	return append([]model.Scope(nil), in...)
}
