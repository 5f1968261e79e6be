package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/teranos/observegen/cmd/observegen/commands"
	"github.com/teranos/observegen/errors"
	"github.com/teranos/observegen/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.RootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()
	if err == nil {
		return
	}

	pterm.Error.Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.Println(hint)
	}

	// 1 = generated files are out of date, 2 = anything else
	if errors.IsOutOfDate(err) {
		os.Exit(1)
	}
	os.Exit(2)
}
