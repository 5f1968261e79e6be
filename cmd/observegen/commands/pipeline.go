package commands

import (
	"context"

	"github.com/teranos/observegen/am"
	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/emit"
	"github.com/teranos/observegen/observe/engine"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/render"
	"github.com/teranos/observegen/observe/source"
)

// pipeline wires loader, engine and emitter from one configuration.
type pipeline struct {
	loader   *source.Loader
	engine   *engine.Engine
	renderer render.Renderer
	suffix   string
	dir      string
}

func newPipeline(c *am.Config) (*pipeline, error) {
	r, err := render.ForFormat(c.Output.Format, c.RenderOptions())
	if err != nil {
		return nil, err
	}
	return &pipeline{
		loader: source.NewLoader(
			source.WithMarkers(c.SourceMarkers()),
			source.WithCompanionSuffix(c.Output.CompanionSuffix),
		),
		engine: engine.New(
			engine.WithConventions(c.Conventions()),
			engine.WithRenderer(r),
			engine.WithWorkers(c.Output.Workers),
		),
		renderer: r,
		suffix:   c.Output.FileSuffix(r.FileExtension()),
		dir:      c.Output.Dir,
	}, nil
}

// result is one generation pass.
type result struct {
	units []model.Unit
	// dirs are the loaded package directories
	dirs []string
}

func (p *pipeline) generate(ctx context.Context, patterns []string) (*result, error) {
	loaded, err := p.loader.LoadPackages(ctx, workDir, patterns...)
	if err != nil {
		return nil, err
	}
	if len(loaded.Decls) == 0 {
		logger.Infow("No marked fields found", "patterns", patterns)
	}

	units, err := p.engine.Run(ctx, loaded.Decls)
	if err != nil {
		return nil, errors.Wrap(err, "generation failed")
	}
	return &result{units: units, dirs: loaded.Dirs}, nil
}

func (p *pipeline) emitOptions(res *result) emit.Options {
	opts := emit.Options{Dir: p.dir, Suffix: p.suffix}
	if p.dir == "" {
		opts.PruneDirs = res.dirs
	}
	return opts
}
