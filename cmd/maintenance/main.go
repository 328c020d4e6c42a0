package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/tournament-registration/internal/app"
	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// maintenance runs the batch sweeps against the configured store and prints
// the resulting report as JSON on stdout.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))

	flags := flag.NewFlagSet(cmd, flag.ExitOnError)
	dryRun := flags.Bool("dry-run", false, "report changes without writing")
	_ = flags.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewJSON(cfg.LogLevel, logging.WithService("registration-maintenance"))
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	var report any
	switch cmd {
	case "migrate-registrations":
		report, err = application.Migration.MigrateRegistrations(ctx, *dryRun)
	case "reconcile":
		report, err = application.Reconcile.Sweep(ctx, *dryRun)
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("maintenance command failed", "command", cmd, "dry_run", *dryRun, "error", err)
		os.Exit(1)
	}

	out, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s <migrate-registrations|reconcile> [-dry-run]\n", filepath.Base(os.Args[0]))
}
