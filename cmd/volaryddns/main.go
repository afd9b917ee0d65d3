package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"volaryddns/internal/agent"
	"volaryddns/internal/config"
	"volaryddns/internal/logger"
	"volaryddns/internal/resolver"
	"volaryddns/internal/state"
	"volaryddns/internal/updater"
	"volaryddns/internal/version"

	"go.uber.org/zap"
)

// exitInterrupted is the exit code for externally signaled termination.
const exitInterrupted = 130

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	// Show version if requested
	if *showVersion {
		info := version.GetInfo()
		fmt.Println(info.String())
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Initialize logger; an unwritable log destination aborts the run
	// before any network activity
	log, err := logger.New(&cfg.Log)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log.Info("Starting VolaryDDNS update process",
		zap.String("version", version.Version))

	// Initialize components
	store := state.NewFileStore(cfg.State.File, log)
	ipResolver := resolver.New(&cfg.Resolver, log)
	up := updater.New(&cfg.API, log)
	a := agent.New(log, ipResolver, store, up)

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	type runResult struct {
		outcome agent.Outcome
		reason  string
	}
	done := make(chan runResult, 1)
	go func() {
		outcome, reason := a.Run(ctx)
		done <- runResult{outcome: outcome, reason: reason}
	}()

	// Every terminal path ends with exactly one final log line, a flush
	// and the matching exit code.
	select {
	case sig := <-sigChan:
		cancel()
		log.Error("Update process interrupted",
			zap.String("signal", sig.String()))
		_ = log.Sync()
		os.Exit(exitInterrupted)
	case result := <-done:
		if result.outcome.Failed() {
			log.Error("Update run failed",
				zap.String("outcome", result.outcome.String()),
				zap.String("reason", result.reason))
		} else {
			log.Info("Update run finished",
				zap.String("outcome", result.outcome.String()))
		}
		_ = log.Sync()
		os.Exit(result.outcome.ExitCode())
	}
}
