package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/andrewortman/ridequeue"
)

// Runner executes commands against a dispatcher.
type Runner struct {
	dispatcher *ridequeue.Dispatcher
	log        logrus.FieldLogger
	metrics    *Metrics

	// Strict makes Run stop at the first line that does not parse instead of
	// skipping it.
	Strict bool
}

// NewRunner constructs a runner over d.
// If logger is nil the logrus standard logger is used; if metrics is nil the
// runner counts into unregistered metrics.
func NewRunner(d *ridequeue.Dispatcher, logger logrus.FieldLogger, metrics *Metrics) *Runner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Runner{
		dispatcher: d,
		log:        logger,
		metrics:    metrics,
	}
}

// Dispatcher returns the dispatcher the runner operates on.
func (r *Runner) Dispatcher() *ridequeue.Dispatcher {
	return r.dispatcher
}

// Execute runs a single command. It returns the line to print and whether
// the command produces output at all.
func (r *Runner) Execute(cmd Command) (string, bool) {
	r.metrics.commandsTotal.WithLabelValues(cmd.Op.String()).Inc()
	defer func() {
		r.metrics.pendingRides.Set(float64(r.dispatcher.Len()))
	}()

	log := r.log.WithField("op", cmd.Op.String())
	d := r.dispatcher

	switch cmd.Op {
	case OpInsert:
		ride := ridequeue.Ride{ID: cmd.Args[0], Cost: cmd.Args[1], Duration: cmd.Args[2]}
		if err := d.Insert(ride); err != nil {
			// Insert only fails on a pending ID.
			r.metrics.duplicateRidesTotal.Inc()
			log.WithError(err).WithField("id", ride.ID).Warn("duplicate ride")
			return DuplicateRide, true
		}
		log.WithField("id", ride.ID).Debug("ride inserted")
		return "", false

	case OpPrint:
		ride, ok := d.Lookup(cmd.Args[0])
		log.WithField("id", cmd.Args[0]).WithField("found", ok).Debug("ride lookup")
		return FormatRide(ride, ok), true

	case OpPrintRange:
		rides := d.Range(cmd.Args[0], cmd.Args[1])
		log.WithFields(logrus.Fields{
			"low":   cmd.Args[0],
			"high":  cmd.Args[1],
			"rides": len(rides),
		}).Debug("ride range lookup")
		return FormatRides(rides), true

	case OpUpdateTrip:
		outcome := d.UpdateTrip(cmd.Args[0], cmd.Args[1])
		r.metrics.tripUpdatesTotal.WithLabelValues(outcome.String()).Inc()
		log.WithFields(logrus.Fields{
			"id":      cmd.Args[0],
			"outcome": outcome.String(),
		}).Debug("trip updated")
		return "", false

	case OpGetNextRide:
		ride, ok := d.NextRide()
		if ok {
			log.WithField("id", ride.ID).Debug("ride dispatched")
		} else {
			log.Debug("no active rides")
		}
		return FormatNextRide(ride, ok), true

	case OpCancelRide:
		cancelled := d.CancelRide(cmd.Args[0])
		log.WithField("id", cmd.Args[0]).WithField("cancelled", cancelled).Debug("ride cancel")
		return "", false

	default:
		log.Error("unhandled command")
		return "", false
	}
}

// Run reads command lines from in, executes them in order and writes every
// output line to out. Lines are separated by a newline; the last line is not
// terminated. Blank lines are ignored. Lines that do not parse are skipped
// with a warning unless Strict is set. Run stops early if ctx is done.
// Output produced before an early stop is still written.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer func() {
		if flushErr := w.Flush(); err == nil {
			err = flushErr
		}
	}()

	lineNo, written := 0, 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := Parse(line)
		if err != nil {
			if r.Strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			r.metrics.skippedLinesTotal.Inc()
			r.log.WithError(err).WithField("line", lineNo).Warn("skipping line")
			continue
		}

		output, ok := r.Execute(cmd)
		if !ok {
			continue
		}
		if written > 0 {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(output); err != nil {
			return err
		}
		written++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"lines":   lineNo,
		"outputs": written,
		"pending": r.dispatcher.Len(),
	}).Info("command batch finished")
	return nil
}
