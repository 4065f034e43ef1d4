package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/callcheck/cli"
	"github.com/ardnew/callcheck/lang"
	"github.com/ardnew/callcheck/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	switch {
	case err == nil:
	case errors.Is(err, lang.ErrDiagnostics):
		// Diagnostics were already written; only the exit status remains.
		os.Exit(1)
	default:
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
