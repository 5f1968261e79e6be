// Package engine runs member synthesis over a batch of declarations.
//
// For each declaration the engine selects the marked fields, derives their
// names, synthesizes the members, rebuilds the declaration around them and
// assembles one output unit. Declarations without marked fields produce no
// unit and do not consume a counter position.
package engine

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/assemble"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/naming"
	"github.com/teranos/observegen/observe/rebuild"
	"github.com/teranos/observegen/observe/render"
	"github.com/teranos/observegen/observe/render/golang"
	"github.com/teranos/observegen/observe/selector"
	"github.com/teranos/observegen/observe/synth"
)

// Engine turns declarations into output units.
// An Engine holds no per-run state and may be reused.
type Engine struct {
	conventions naming.Conventions
	renderer    render.Renderer
	workers     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithConventions sets the naming conventions.
func WithConventions(c naming.Conventions) Option {
	return func(e *Engine) { e.conventions = c }
}

// WithRenderer sets the output renderer.
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithWorkers bounds how many units are rendered concurrently.
// Zero or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// New creates an engine rendering Go source with the default conventions.
func New(opts ...Option) *Engine {
	e := &Engine{
		conventions: naming.DefaultConventions(),
		renderer:    golang.New(golang.Options{}),
		workers:     1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// job is one declaration with its counter position fixed before any
// rendering starts, so ids do not depend on scheduling.
type job struct {
	decl    model.TypeDecl
	members []model.Member
	counter int
}

// Run produces one unit per declaration with at least one marked field.
// Units are returned in input order. The counter starts at zero on every
// call and advances once per emitted unit.
func (e *Engine) Run(ctx context.Context, decls []model.TypeDecl) ([]model.Unit, error) {
	jobs := e.plan(decls)
	units := make([]model.Unit, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			unit, err := assemble.Assemble(assemble.Input{
				Imports: j.decl.Imports,
				Type:    rebuild.Rebuild(j.decl, j.members),
				Counter: j.counter,
				Source:  j.decl.File,
				Dir:     dirOf(j.decl.File),
			}, e.renderer)
			if err != nil {
				return errors.Wrapf(err, "type %s", j.decl.Name)
			}
			units[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debugw("Synthesis complete",
		logger.FieldCount, len(units),
		"declarations", len(decls))
	return units, nil
}

// plan synthesizes members and assigns counter positions in input order.
func (e *Engine) plan(decls []model.TypeDecl) []job {
	var jobs []job
	for _, decl := range decls {
		selected := selector.Select(decl)
		if len(selected) == 0 {
			continue
		}

		var members []model.Member
		seen := make(map[string]string, len(selected))
		for _, sel := range selected {
			names := e.conventions.Derive(sel.Field.Name)
			if prev, dup := seen[names.Property]; dup {
				logger.Warnw("Fields derive the same property name; generated code will not compile",
					logger.FieldType, decl.Name,
					logger.FieldField, sel.Field.Name,
					"other", prev,
					"property", names.Property)
			}
			seen[names.Property] = sel.Field.Name
			members = append(members, synth.Members(sel, names)...)
		}

		jobs = append(jobs, job{decl: decl, members: members, counter: len(jobs)})
	}
	return jobs
}

func dirOf(file string) string {
	if file == "" {
		return ""
	}
	return filepath.Dir(file)
}
