// Package emit writes rendered units to disk and checks whether files on
// disk are up to date.
package emit

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/model"
	"github.com/teranos/observegen/observe/naming"
)

// DefaultSuffix is appended to the snake-cased unit id.
const DefaultSuffix = "_observe.go"

// generatedMarker identifies files this tool wrote.
const generatedMarker = "Code generated by observegen. DO NOT EDIT."

// Options configures where units are written.
type Options struct {
	// Dir overrides the unit's own directory when set
	Dir string
	// Suffix ends every emitted file name, including the extension
	Suffix string
	// PruneDirs are also searched for stale generated files, so a directory
	// whose types lost every marker is cleaned up too
	PruneDirs []string
}

func (o Options) suffix() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}

// FileName returns the file name a unit is written to.
func FileName(unit model.Unit, opts Options) string {
	return naming.ToSnakeCase(unit.ID) + opts.suffix()
}

// Path returns the full path a unit is written to.
func Path(unit model.Unit, opts Options) string {
	dir := opts.Dir
	if dir == "" {
		dir = unit.Dir
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, FileName(unit, opts))
}

// Write writes every unit and removes generated files in the same
// directories that no unit produced this time. It returns the written paths.
func Write(units []model.Unit, opts Options) ([]string, error) {
	expected := expectedFiles(units, opts)

	var written []string
	for _, unit := range units {
		path := Path(unit, opts)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, errors.Wrapf(err, "failed to create directory for %s", path)
		}
		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, unit.Text) {
			logger.Debugw("Unchanged", logger.FieldFile, path)
			written = append(written, path)
			continue
		}
		if err := os.WriteFile(path, unit.Text, 0o644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}
		logger.Debugw("Wrote unit", logger.FieldUnit, unit.ID, logger.FieldFile, path)
		written = append(written, path)
	}

	for dir, keep := range expected {
		stale, err := staleFiles(dir, keep, opts.suffix())
		if err != nil {
			return written, err
		}
		for _, path := range stale {
			if err := os.Remove(path); err != nil {
				return written, errors.Wrapf(err, "failed to remove stale %s", path)
			}
			logger.Infow("Removed stale generated file", logger.FieldFile, path)
		}
	}

	return written, nil
}

// CheckResult holds the result of an up-to-date check.
type CheckResult struct {
	UpToDate bool
	// Differences maps a file path to why it is out of date
	Differences map[string]string
}

// Paths returns the differing paths in sorted order.
func (r *CheckResult) Paths() []string {
	paths := make([]string, 0, len(r.Differences))
	for p := range r.Differences {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Err returns errors.ErrOutOfDate listing the differing files, or nil.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrOutOfDate, "%d file(s): %s", len(r.Differences), strings.Join(r.Paths(), ", ")),
		"run observegen to regenerate")
}

// Compare reports which emitted files are missing, differ from the units or
// would be removed as stale. Nothing is written.
func Compare(units []model.Unit, opts Options) (*CheckResult, error) {
	differences := make(map[string]string)

	for _, unit := range units {
		path := Path(unit, opts)
		existing, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			differences[path] = "missing"
		case err != nil:
			return nil, errors.Wrapf(err, "failed to read %s", path)
		case !bytes.Equal(existing, unit.Text):
			differences[path] = "different"
		}
	}

	for dir, keep := range expectedFiles(units, opts) {
		stale, err := staleFiles(dir, keep, opts.suffix())
		if err != nil {
			return nil, err
		}
		for _, path := range stale {
			differences[path] = "stale"
		}
	}

	return &CheckResult{
		UpToDate:    len(differences) == 0,
		Differences: differences,
	}, nil
}

// expectedFiles groups the emitted file names by directory.
func expectedFiles(units []model.Unit, opts Options) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, dir := range opts.PruneDirs {
		out[filepath.Clean(dir)] = make(map[string]bool)
	}
	for _, unit := range units {
		path := Path(unit, opts)
		dir := filepath.Dir(path)
		if out[dir] == nil {
			out[dir] = make(map[string]bool)
		}
		out[dir][filepath.Base(path)] = true
	}
	return out
}

// staleFiles lists generated files in dir carrying suffix that are not in keep.
func staleFiles(dir string, keep map[string]bool, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var stale []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || keep[name] || !strings.HasSuffix(name, suffix) {
			continue
		}
		path := filepath.Join(dir, name)
		generated, err := isGenerated(path)
		if err != nil {
			return nil, err
		}
		if generated {
			stale = append(stale, path)
		}
	}
	return stale, nil
}

// isGenerated reports whether the first line of path is our generated header.
func isGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.Contains(scanner.Text(), generatedMarker), nil
}
