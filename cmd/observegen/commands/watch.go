package commands

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/observegen/am"
	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/emit"
	"github.com/teranos/observegen/observe/watch"
)

// WatchCmd regenerates whenever sources or the config file change
var WatchCmd = &cobra.Command{
	Use:   "watch [packages]",
	Short: "Regenerate on every source change",
	Long: `Generate once, then watch the package directories and regenerate
whenever a Go source changes. Changes to observegen.toml reload the
configuration before the next run. Stop with Ctrl-C.

Examples:
  observegen watch ./...`,
	RunE: runWatch,
}

// watchSession serializes regeneration against configuration reloads.
type watchSession struct {
	mu       sync.Mutex
	pipeline *pipeline
	patterns []string
}

func (s *watchSession) run(ctx context.Context) (*result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.pipeline.generate(ctx, s.patterns)
	if err != nil {
		return nil, err
	}
	written, err := emit.Write(res.units, s.pipeline.emitOptions(res))
	if err != nil {
		return nil, errors.Wrap(err, "failed to write generated files")
	}
	pterm.Success.Printfln("Regenerated %d file(s)", len(written))
	return res, nil
}

func (s *watchSession) reload(c *am.Config) error {
	p, err := newPipeline(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pipeline = p
	s.mu.Unlock()
	pterm.Info.Println("Configuration reloaded")
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	session := &watchSession{pipeline: p, patterns: args}

	res, err := session.run(ctx)
	if err != nil {
		return err
	}
	if len(res.dirs) == 0 {
		return errors.Wrapf(errors.ErrNoPackages, "nothing to watch for %v", args)
	}

	w, err := watch.New(res.dirs, func(ctx context.Context) error {
		_, err := session.run(ctx)
		return err
	}, watch.WithIgnoreSuffix(p.suffix))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.File != "" {
		cw, err := am.NewConfigWatcher(cfg.File)
		if err != nil {
			return err
		}
		cw.OnReload(func(c *am.Config) error {
			// flags given on the command line keep winning
			applyFlags(cmd, c)
			if err := c.Validate(); err != nil {
				return err
			}
			return session.reload(c)
		})
		g.Go(func() error { return cw.Run(ctx) })
	}

	dirs := make([]string, len(res.dirs))
	for i, d := range res.dirs {
		if rel, err := filepath.Rel(workDir, d); err == nil {
			d = rel
		}
		dirs[i] = d
	}
	pterm.Info.Printfln("Watching %d package(s), press Ctrl-C to stop", len(dirs))
	logger.Debugw("Watching", "dirs", dirs)

	g.Go(func() error { return w.Run(ctx) })
	return g.Wait()
}
