// Package commands implements the observegen command line.
package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/observegen/am"
	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
)

var (
	configPath string
	jsonLog    bool
	workDir    string
	format     string
	outputDir  string
	workers    int
	toStdout   bool

	// cfg is the effective configuration, loaded before any command runs
	cfg *am.Config
)

// RootCmd generates observable companions for the given packages
var RootCmd = &cobra.Command{
	Use:   "observegen [packages]",
	Short: "Generate change notification members for marked struct fields",
	Long: `Generate properties, change events and disposable subscriptions for
struct fields and package-level vars marked with observe.

A field is marked with a struct tag or a comment directive:

  type Thermostat struct {
      thermostatObservers

      _Target float64 ` + "`observe:\"event,disposable\"`" + `
      mode    string  //observe:event
  }

For every marked field observegen writes a getter, a change-gated setter,
a private change event and, depending on the markers, an Add/Remove event
pair (event) and a SubscribeTo method returning a release guard
(disposable). Marked package-level vars get the same members as package
functions.

Configuration is read from observegen.toml (searched upward from the
working directory) and OBSERVEGEN_* environment variables.

Examples:
  observegen                         # Generate for the package in the current directory
  observegen ./...                   # Generate for every package in the module
  observegen --format yaml --stdout  # Print the rebuilt declaration trees
  observegen check ./...             # Fail if generated files are out of date
  observegen watch ./...             # Regenerate on every source change`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: observegen.toml searched upward)")
	RootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log as JSON to stderr")
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	RootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", ".", "Directory packages are resolved from")

	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format: go, yaml (default from config)")
	RootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Write all files to this directory instead of next to their sources")
	RootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", -1, "Units rendered concurrently (0 = GOMAXPROCS, default from config)")
	RootCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print generated units instead of writing files")

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}

// setup loads configuration, applies flag overrides and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	// init and version work without a valid configuration
	if cmd.Name() == InitCmd.Name() || cmd.Name() == VersionCmd.Name() {
		return initLogger(cmd, am.Default())
	}

	loaded, err := am.LoadFrom(workDir, configPath)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	applyFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	if err := initLogger(cmd, cfg); err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debugw("Using config file", logger.FieldFile, cfg.File)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, c *am.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		c.Output.Format = format
	}
	if flags.Changed("output") {
		c.Output.Dir = outputDir
	}
	if flags.Changed("workers") {
		c.Output.Workers = workers
	}
	if flags.Changed("json-log") {
		c.Log.JSON = jsonLog
	}
}

func initLogger(cmd *cobra.Command, c *am.Config) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = c.Log.Verbosity
	}
	jsonOut := c.Log.JSON
	if cmd.Flags().Changed("json-log") {
		jsonOut = jsonLog
	}
	if err := logger.Initialize(jsonOut, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if jsonOut {
		pterm.DisableStyling()
	}
	return nil
}
