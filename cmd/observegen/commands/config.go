package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/observegen/errors"
)

var configFormat string

// ConfigCmd shows the effective configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults, config files,
environment variables and flags have been applied.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (OBSERVEGEN_* prefix)
3. Project config (observegen.toml, searched upward)
4. User config (<user config dir>/observegen/observegen.toml)
5. Default values`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	ConfigCmd.Flags().StringVar(&configFormat, "as", "toml", "Output format: toml, yaml")
}

func runConfig(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	switch configFormat {
	case "toml":
		data, err = toml.Marshal(cfg)
	case "yaml":
		data, err = yaml.Marshal(cfg)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, yaml)", configFormat)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to marshal config to %s", configFormat)
	}

	if cfg.File != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.File)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
