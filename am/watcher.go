package am

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
	"github.com/teranos/observegen/observe/watch"
)

// ReloadCallback receives every successfully reloaded configuration.
type ReloadCallback func(*Config) error

// ConfigWatcher reloads the configuration whenever its file changes.
// The parent directory is watched so editors that replace the file on
// save are still seen.
type ConfigWatcher struct {
	path    string
	watcher *watch.Watcher

	mu        sync.RWMutex
	callbacks []ReloadCallback
}

// NewConfigWatcher watches configPath. opts tune the underlying watcher.
func NewConfigWatcher(configPath string, opts ...watch.Option) (*ConfigWatcher, error) {
	cw := &ConfigWatcher{path: filepath.Clean(configPath)}

	opts = append([]watch.Option{watch.WithMatch(cw.matches)}, opts...)
	w, err := watch.New([]string{filepath.Dir(cw.path)}, cw.reload, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to watch config file %s", configPath)
	}
	cw.watcher = w
	return cw, nil
}

// OnReload registers a callback.
func (cw *ConfigWatcher) OnReload(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// Run reloads on every change until ctx is canceled.
func (cw *ConfigWatcher) Run(ctx context.Context) error {
	return cw.watcher.Run(ctx)
}

func (cw *ConfigWatcher) matches(path string) bool {
	return filepath.Clean(path) == cw.path
}

// reload never fails the watcher: a broken file is reported and the
// previous configuration stays in effect.
func (cw *ConfigWatcher) reload(context.Context) error {
	c, err := LoadFrom(filepath.Dir(cw.path), cw.path)
	if err != nil {
		logger.Errorw("Config reload failed, keeping previous configuration",
			logger.FieldFile, cw.path,
			logger.FieldError, err)
		return nil
	}
	logger.Infow("Config reloaded", logger.FieldFile, cw.path)

	cw.mu.RLock()
	callbacks := append([]ReloadCallback(nil), cw.callbacks...)
	cw.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(c); err != nil {
			logger.Warnw("Config reload callback failed", logger.FieldError, err)
		}
	}
	return nil
}
