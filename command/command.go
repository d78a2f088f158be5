// Package command interprets the ride dispatch command language and renders
// its results.
//
// A command file holds one command per line:
//
//	Insert(id,cost,duration)
//	Print(id)
//	Print(lowID,highID)
//	UpdateTrip(id,newDuration)
//	GetNextRide()
//	CancelRide(id)
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownCommand is returned for a line whose command name is not recognized.
	ErrUnknownCommand = errors.New("command: unknown command")
	// ErrMalformedCommand is returned for a line with bad syntax or arguments.
	ErrMalformedCommand = errors.New("command: malformed command")
)

// Op identifies a command.
type Op int

const (
	OpInsert Op = iota + 1
	OpPrint
	OpPrintRange
	OpUpdateTrip
	OpGetNextRide
	OpCancelRide
)

var opNames = map[Op]string{
	OpInsert:      "Insert",
	OpPrint:       "Print",
	OpPrintRange:  "PrintRange",
	OpUpdateTrip:  "UpdateTrip",
	OpGetNextRide: "GetNextRide",
	OpCancelRide:  "CancelRide",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is a parsed command line.
type Command struct {
	Op   Op
	Args []int
}

func (c Command) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = strconv.Itoa(a)
	}
	name := c.Op.String()
	if c.Op == OpPrintRange {
		name = "Print"
	}
	return name + "(" + strings.Join(args, ",") + ")"
}

// Parse parses a single command line. Surrounding whitespace is ignored, as
// is whitespace around arguments.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	open := strings.IndexByte(line, '(')
	if open <= 0 || !strings.HasSuffix(line, ")") {
		return Command{}, fmt.Errorf("%w: %q", ErrMalformedCommand, line)
	}

	name := strings.TrimSpace(line[:open])
	args, err := parseArgs(line[open+1 : len(line)-1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q: %v", ErrMalformedCommand, line, err)
	}

	var (
		op    Op
		arity []int
	)
	switch name {
	case "Insert":
		op, arity = OpInsert, []int{3}
	case "Print":
		op, arity = OpPrint, []int{1, 2}
		if len(args) == 2 {
			op = OpPrintRange
		}
	case "UpdateTrip":
		op, arity = OpUpdateTrip, []int{2}
	case "GetNextRide":
		op, arity = OpGetNextRide, []int{0}
	case "CancelRide":
		op, arity = OpCancelRide, []int{1}
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	for _, n := range arity {
		if len(args) == n {
			return Command{Op: op, Args: args}, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %s takes %v arguments, got %d", ErrMalformedCommand, name, arity, len(args))
}

func parseArgs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	args := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		args = append(args, n)
	}
	return args, nil
}
