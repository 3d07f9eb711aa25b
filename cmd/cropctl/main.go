// Command cropctl is the command line client for the crop advisory API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rrens/crop-advisory/internal/cli"
	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("cropctl", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.String("api-url", "", "advisory API base URL")
	fs.String("session-store", "", "memory, file, sqlite or redis")
	fs.String("profile", "", "session profile name")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.Duration("timeout", 0, "per-request timeout")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cli.ExitOK
		}
		return cli.ExitUsage
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitError
	}

	closer, err := logging.Setup(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitError
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return cli.Report(os.Stderr, err)
	}
	defer app.Close()

	return cli.Report(os.Stderr, app.Run(ctx, fs.Args()))
}
