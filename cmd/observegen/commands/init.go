package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/observegen/am"
)

var initForce bool

// InitCmd writes a default observegen.toml
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default observegen.toml",
	Long: `Write observegen.toml with every default spelled out into the
directory given by --dir. An existing file is kept unless --force is set,
in which case it is rotated to observegen.toml.back1 first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := am.WriteDefault(workDir, initForce)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
