package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

const (
	defaultConfigFilename = "gatortaxi.conf"
	defaultOutputFile     = "output.txt"
	defaultLogLevel       = "warn"
	defaultHistoryFile    = "/tmp/gatortaxi-readline.tmp"
)

var defaultConfigFile = filepath.Join(gatortaxiHomeDir(), defaultConfigFilename)

// config defines the configuration options for gatortaxi.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	OutputFile  string `short:"o" long:"output" description:"File to write command output to"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error}"`
	Interactive bool   `short:"i" long:"interactive" description:"Start an interactive shell instead of running a command file"`
	HistoryFile string `long:"historyfile" description:"Interactive shell history file"`
	MetricsFile string `long:"metricsfile" description:"Write prometheus metrics to this file after a batch run"`
	Strict      bool   `long:"strict" description:"Stop at the first malformed command instead of skipping it"`

	Args struct {
		InputFile string `positional-arg-name:"input-file" description:"Command file to run"`
	} `positional-args:"yes"`

	logLevel logrus.Level
}

// gatortaxiHomeDir returns an OS appropriate home directory for gatortaxi.
func gatortaxiHomeDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gatortaxi")
	}
	return "."
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in gatortaxi functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options. Command line options always take precedence.
func loadConfig(args []string, stderr io.Writer) (*config, error) {
	cfg := config{
		ConfigFile:  defaultConfigFile,
		OutputFile:  defaultOutputFile,
		DebugLevel:  defaultLogLevel,
		HistoryFile: defaultHistoryFile,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := preParser.ParseArgs(args); err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			preParser.WriteHelp(stderr)
		}
		return nil, err
	}
	if preCfg.ShowVersion {
		return &preCfg, nil
	}

	// Load additional config from file. A missing default config file is fine.
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	if err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) || preCfg.ConfigFile != defaultConfigFile {
			fmt.Fprintln(stderr, err)
			parser.WriteHelp(stderr)
			return nil, err
		}
	}

	// Parse command line options again to ensure they take precedence.
	if _, err := parser.ParseArgs(args); err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(stderr)
		}
		return nil, err
	}

	level, err := logrus.ParseLevel(cfg.DebugLevel)
	if err != nil {
		err = fmt.Errorf("loadConfig: invalid debuglevel: %w", err)
		fmt.Fprintln(stderr, err)
		return nil, err
	}
	cfg.logLevel = level

	if !cfg.Interactive && cfg.Args.InputFile == "" {
		err := errors.New("loadConfig: an input file is required unless --interactive is set")
		fmt.Fprintln(stderr, err)
		parser.WriteHelp(stderr)
		return nil, err
	}

	return &cfg, nil
}
