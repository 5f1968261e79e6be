package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/model"
)

const header = "// Code generated by observegen. DO NOT EDIT.\n"

func unit(id, dir, body string) model.Unit {
	return model.Unit{ID: id, Dir: dir, Text: []byte(header + body)}
}

func TestFileName(t *testing.T) {
	u := model.Unit{ID: "WidgetGen12"}
	assert.Equal(t, "widget_gen12_observe.go", FileName(u, Options{}))
	assert.Equal(t, "widget_gen12.observe.yaml", FileName(u, Options{Suffix: ".observe.yaml"}))
}

func TestPath(t *testing.T) {
	u := model.Unit{ID: "WidgetGen0", Dir: "ui"}
	assert.Equal(t, filepath.Join("ui", "widget_gen0_observe.go"), Path(u, Options{}))
	assert.Equal(t, filepath.Join("out", "widget_gen0_observe.go"), Path(u, Options{Dir: "out"}))
	assert.Equal(t, "widget_gen0_observe.go", Path(model.Unit{ID: "WidgetGen0"}, Options{}))
}

func TestWriteThenCompare(t *testing.T) {
	dir := t.TempDir()
	units := []model.Unit{
		unit("PlayerGen0", dir, "package game\n"),
		unit("gameGen1", dir, "package game\n\nvar x int\n"),
	}

	written, err := Write(units, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "player_gen0_observe.go"),
		filepath.Join(dir, "game_gen1_observe.go"),
	}, written)

	got, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, units[0].Text, got)

	result, err := Compare(units, Options{})
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.NoError(t, result.Err())
}

func TestCompareReportsDifferences(t *testing.T) {
	dir := t.TempDir()
	units := []model.Unit{unit("PlayerGen0", dir, "package game\n")}
	_, err := Write(units, Options{})
	require.NoError(t, err)

	changed := []model.Unit{
		unit("PlayerGen0", dir, "package game\n\n// changed\n"),
		unit("EnemyGen1", dir, "package game\n"),
	}
	result, err := Compare(changed, Options{})
	require.NoError(t, err)

	assert.False(t, result.UpToDate)
	assert.Equal(t, map[string]string{
		filepath.Join(dir, "player_gen0_observe.go"): "different",
		filepath.Join(dir, "enemy_gen1_observe.go"):  "missing",
	}, result.Differences)

	err = result.Err()
	assert.True(t, errors.IsOutOfDate(err))
	assert.Contains(t, errors.FlattenHints(err), "regenerate")
}

func TestWritePrunesStaleGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "widget_gen3_observe.go")
	handWritten := filepath.Join(dir, "notes_observe.go")
	require.NoError(t, os.WriteFile(stale, []byte(header+"package ui\n"), 0o644))
	require.NoError(t, os.WriteFile(handWritten, []byte("package ui\n"), 0o644))

	units := []model.Unit{unit("WidgetGen0", dir, "package ui\n")}

	result, err := Compare(units, Options{})
	require.NoError(t, err)
	assert.Equal(t, "stale", result.Differences[stale])

	_, err = Write(units, Options{})
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, handWritten, "files without the generated header are never removed")
	assert.FileExists(t, filepath.Join(dir, "widget_gen0_observe.go"))
}

func TestPruneDirsWithoutUnits(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "widget_gen0_observe.go")
	require.NoError(t, os.WriteFile(stale, []byte(header+"package ui\n"), 0o644))

	written, err := Write(nil, Options{PruneDirs: []string{dir}})
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.NoFileExists(t, stale)
}

func TestWriteToOverrideDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")
	units := []model.Unit{unit("WidgetGen0", "ignored", "package ui\n")}

	written, err := Write(units, Options{Dir: out})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "widget_gen0_observe.go")}, written)
	assert.FileExists(t, written[0])
}
