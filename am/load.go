package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
)

// Load reads the configuration for the working directory. A non-empty
// explicitPath replaces the project file search.
func Load(explicitPath string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to determine working directory")
	}
	return LoadFrom(wd, explicitPath)
}

// LoadFrom reads the configuration as seen from dir.
// Precedence (lowest to highest): defaults < user < project < env vars
func LoadFrom(dir, explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	var paths []string
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, errors.Wrapf(err, "config file %s", explicitPath)
		}
		paths = []string{explicitPath}
	} else {
		if user := userConfigPath(); user != "" {
			paths = append(paths, user)
		}
		if project := findProjectConfig(dir); project != "" {
			paths = append(paths, project)
		}
	}

	file, err := mergeConfigFiles(v, paths)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		if file != "" {
			return nil, errors.WithDetailf(err, "config file: %s", file)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, without
// environment overrides
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	config.File = configPath
	return config, nil
}

// findProjectConfig searches for observegen.toml by walking up the directory tree
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// userConfigPath returns the per-user config file if it exists.
func userConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(configDir, "observegen", ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// mergeConfigFiles merges each file over the previous ones in order and
// returns the last file merged.
func mergeConfigFiles(v *viper.Viper, paths []string) (string, error) {
	used := ""
	for _, path := range paths {
		fileViper := viper.New()
		fileViper.SetConfigFile(path)
		fileViper.SetConfigType("toml")

		if err := fileViper.ReadInConfig(); err != nil {
			return "", errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			return "", errors.Wrapf(err, "failed to merge config file %s", path)
		}
		logger.Debugw("Merged config file", logger.FieldFile, path)
		used = path
	}
	return used, nil
}
