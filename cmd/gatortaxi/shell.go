package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/andrewortman/ridequeue/command"
)

func usage(w io.Writer) {
	io.WriteString(w, `
Available commands:
	Insert(<id>,<cost>,<duration>)
	Print(<id>)
	Print(<low-id>,<high-id>)
	UpdateTrip(<id>,<new-duration>)
	GetNextRide()
	CancelRide(<id>)
	show
	set-log-level <log-level>
	help
	exit
`[1:])
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("Insert("),
	readline.PcItem("Print("),
	readline.PcItem("UpdateTrip("),
	readline.PcItem("GetNextRide()"),
	readline.PcItem("CancelRide("),
	readline.PcItem("show"),
	readline.PcItem("set-log-level",
		readline.PcItem("debug"),
		readline.PcItem("info"),
		readline.PcItem("warn"),
	),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

var (
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.FgGreen)
)

func runShell(runner *command.Runner, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:       "\033[31m»\033[0m ",
		HistoryFile:  historyFile,
		AutoComplete: completer,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	log.SetOutput(l.Stderr())
	for {
		line, err := l.Readline()
		if err != nil {
			// io.EOF or readline.ErrInterrupt
			return nil
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
		case line == "exit":
			return nil
		case line == "help":
			usage(l.Stderr())
		case line == "show":
			showRides(l.Stdout(), runner)
		case strings.HasPrefix(line, "set-log-level "):
			setLogLevel(l.Stderr(), strings.TrimSpace(line[len("set-log-level "):]))
		default:
			execute(l, runner, line)
		}
	}
}

func execute(l *readline.Instance, runner *command.Runner, line string) {
	cmd, err := command.Parse(line)
	if err != nil {
		errorColor.Fprintln(l.Stderr(), err)
		return
	}
	out, ok := runner.Execute(cmd)
	if !ok {
		return
	}
	if out == command.DuplicateRide || out == command.NoActiveRides {
		errorColor.Fprintln(l.Stdout(), out)
		return
	}
	resultColor.Fprintln(l.Stdout(), out)
}

func showRides(w io.Writer, runner *command.Runner) {
	d := runner.Dispatcher()
	fmt.Fprintf(w, "%d pending rides\n", d.Len())
	if next, ok := d.Peek(); ok {
		fmt.Fprintf(w, "next: %v\n", next)
	}
	for _, r := range d.Range(math.MinInt, math.MaxInt) {
		fmt.Fprintln(w, r)
	}
}

func setLogLevel(w io.Writer, level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		errorColor.Fprintf(w, "Invalid log level: %s\n", strconv.Quote(level))
		return
	}
	log.SetLevel(lvl)
}
