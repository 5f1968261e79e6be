package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/observe/emit"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	res, err := p.generate(cmd.Context(), args)
	if err != nil {
		return err
	}

	if toStdout {
		for _, unit := range res.units {
			if _, err := os.Stdout.Write(unit.Text); err != nil {
				return errors.Wrap(err, "failed to write to stdout")
			}
		}
		return nil
	}

	written, err := emit.Write(res.units, p.emitOptions(res))
	if err != nil {
		return errors.Wrap(err, "failed to write generated files")
	}

	for _, path := range written {
		pterm.Success.Printfln("Generated %s", path)
	}
	if len(written) == 0 {
		pterm.Info.Println("No marked fields found, nothing generated")
	}
	return nil
}
