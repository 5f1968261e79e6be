package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/emit"
)

// CheckCmd checks if generated files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Check if generated files are up to date",
	Long: `Check if generated files match the current Go sources.

Units are generated in memory and compared with the files on disk.
Missing, different and stale generated files are reported.

Exit codes:
  0 - Generated files are up to date
  1 - Generated files are out of date
  2 - Error during check

Examples:
  observegen check ./...`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	res, err := p.generate(cmd.Context(), args)
	if err != nil {
		return err
	}

	result, err := emit.Compare(res.units, p.emitOptions(res))
	if err != nil {
		return errors.Wrap(err, "failed to compare generated files")
	}

	if result.UpToDate {
		pterm.Success.Println("Generated files are up to date")
		return nil
	}

	pterm.Warning.Println("Generated files are out of date:")
	for _, path := range result.Paths() {
		pterm.Printfln("  %s %s", pterm.Yellow(result.Differences[path]), path)
	}
	return result.Err()
}
