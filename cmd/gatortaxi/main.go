// Command gatortaxi runs ride dispatch command files against an in-memory
// ride pool, or serves the same commands from an interactive shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/andrewortman/ridequeue"
	"github.com/andrewortman/ridequeue/command"
)

const appVersion = "1.0.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		var e *flags.Error
		if errors.As(err, &e) {
			if e.Type == flags.ErrHelp {
				fmt.Fprintln(os.Stdout, err)
				return
			}
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args, os.Stderr)
	if err != nil {
		return err
	}
	if cfg.ShowVersion {
		fmt.Println("gatortaxi version", appVersion)
		return nil
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.logLevel)

	reg := prometheus.NewRegistry()
	runner := command.NewRunner(ridequeue.New(), log.StandardLogger(), command.NewMetrics(reg))
	runner.Strict = cfg.Strict

	if cfg.Interactive {
		return runShell(runner, cfg.HistoryFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runBatch(ctx, runner, cfg.Args.InputFile, cfg.OutputFile); err != nil {
		log.WithError(err).Error("batch failed")
		return err
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			log.WithError(err).Error("unable to write metrics")
			return err
		}
	}
	return nil
}

func runBatch(ctx context.Context, runner *command.Runner, inputFile, outputFile string) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"input":  inputFile,
		"output": outputFile,
	}).Info("running command file")

	if err := runner.Run(ctx, in, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
