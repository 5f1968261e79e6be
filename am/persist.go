package am

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
)

// WriteDefault writes the default configuration to dir/observegen.toml.
// An existing file is kept unless force is set, in which case it is first
// rotated to a .back1 backup.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ConfigFileName)

	if _, err := os.Stat(path); err == nil {
		if !force {
			return path, errors.WithHint(
				errors.Newf("%s already exists", path),
				"use --force to overwrite it")
		}
		if err := createBackup(path); err != nil {
			return path, errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return path, errors.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, errors.Wrapf(err, "failed to create %s", dir)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, errors.Wrap(err, "failed to write config")
	}
	return path, nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before overwriting config
func createBackup(configPath string) error {
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", logger.FieldFile, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
