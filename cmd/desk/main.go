package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/healthdesk/internal/desk/app"
)

func main() {
	cfg := app.LoadConfig()

	desk, err := app.New(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "desk: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = desk.Run(ctx, os.Args[1:])
	stop()
	_ = desk.Close()

	switch {
	case err == nil:
	case errors.Is(err, app.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "desk: %v\n", err)
		os.Exit(1)
	}
}
