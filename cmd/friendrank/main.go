// SPDX-License-Identifier: MIT

// Command friendrank scores a friendship graph with PageRank and suggests
// new friends.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/friendrank/config"
	"github.com/katalvlaran/friendrank/internal/cli"
	"github.com/katalvlaran/friendrank/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run parses args, builds the logger and dispatches to the command. Tables
// and edge lists go to stdout, logs to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	inv, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cfg := config.Default()
	if inv.ConfigPath != "" {
		if cfg, err = config.Load(inv.ConfigPath); err != nil {
			return err
		}
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if inv.LogLevel != "" {
		level = inv.LogLevel
	}
	if inv.LogFormat != "" {
		format = inv.LogFormat
	}
	logger := logging.New(level, format, stderr)
	ctx = logger.WithContext(ctx)
	logger.Debug().Str("command", inv.Command).Str("config", inv.ConfigPath).Msg("starting")

	switch inv.Command {
	case "rank":
		return rankCmd(ctx, cfg, inv.Args, stdout)
	case "recommend":
		return recommendCmd(ctx, cfg, inv.Args, stdout)
	case "connect":
		return connectCmd(ctx, cfg, inv.Args, stdout)
	case "generate":
		return generateCmd(ctx, inv.Args, stdout)
	case "serve":
		return serveCmd(ctx, cfg, inv.Args, stdout)
	default:
		// cli.Parse only admits known commands.
		return &cli.ExitError{Code: cli.UsageCode, Message: "unknown command " + inv.Command}
	}
}
