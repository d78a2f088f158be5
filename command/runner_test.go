package command

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewortman/ridequeue"
)

const script = `
Insert(5,50,120)
Insert(4,30,60)
Insert(7,40,90)
Insert(3,20,40)
Insert(1,10,20)
Print(4)
Print(2,6)
GetNextRide()
Insert(9,10,25)
Insert(3,99,99)
UpdateTrip(9,40)
UpdateTrip(4,200)
CancelRide(7)
Print(1,10)
GetNextRide()
GetNextRide()
Print(9)
GetNextRide()
GetNextRide()
Print(1,100)
`

const scriptOutput = `(4,30,60)
(3,20,40),(4,30,60),(5,50,120)
(1,10,20)
Duplicate RideNumber
(3,20,40),(5,50,120),(9,20,40)
(3,20,40)
(9,20,40)
(0,0,0)
(5,50,120)
No active ride requests
(0,0,0)`

func newTestRunner(t *testing.T) (*Runner, *prometheus.Registry, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	reg := prometheus.NewRegistry()
	return NewRunner(ridequeue.New(), logger, NewMetrics(reg)), reg, hook
}

func TestRunner_Script(t *testing.T) {
	r, _, _ := newTestRunner(t)

	var out bytes.Buffer
	require.NoError(t, r.Run(context.Background(), strings.NewReader(script), &out))
	assert.Equal(t, scriptOutput, out.String())
	assert.Equal(t, 0, r.Dispatcher().Len())

	m := r.metrics
	assert.Equal(t, 7.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("Insert")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("GetNextRide")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.duplicateRidesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tripUpdatesTotal.WithLabelValues("repriced")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tripUpdatesTotal.WithLabelValues("dropped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.pendingRides))
}

func TestRunner_EndToEnd(t *testing.T) {
	r, _, _ := newTestRunner(t)

	in := strings.Join([]string{
		"Insert(1,50,10)",
		"Insert(2,30,20)",
		"Insert(3,30,5)",
		"Print(1,3)",
		"GetNextRide()",
		"GetNextRide()",
		"GetNextRide()",
		"GetNextRide()",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, r.Run(context.Background(), strings.NewReader(in), &out))
	assert.Equal(t, strings.Join([]string{
		"(1,50,10),(2,30,20),(3,30,5)",
		"(3,30,5)",
		"(2,30,20)",
		"(1,50,10)",
		NoActiveRides,
	}, "\n"), out.String())
}

func TestRunner_MalformedLines(t *testing.T) {
	in := "Insert(1,2,3)\nFoo(1)\nInsert(1,2)\nPrint(1)\n"

	t.Run("skipped by default", func(t *testing.T) {
		r, _, hook := newTestRunner(t)

		var out bytes.Buffer
		require.NoError(t, r.Run(context.Background(), strings.NewReader(in), &out))
		assert.Equal(t, "(1,2,3)", out.String())
		assert.Equal(t, 2.0, testutil.ToFloat64(r.metrics.skippedLinesTotal))

		var warnings int
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel && e.Message == "skipping line" {
				warnings++
			}
		}
		assert.Equal(t, 2, warnings)
	})

	t.Run("strict mode stops", func(t *testing.T) {
		r, _, _ := newTestRunner(t)
		r.Strict = true

		var out bytes.Buffer
		err := r.Run(context.Background(), strings.NewReader(in), &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestRunner_NegativeFields(t *testing.T) {
	r, _, _ := newTestRunner(t)

	in := "Insert(1,-5,10)\nInsert(2,3,-2)\nPrint(1,2)\nGetNextRide()\nGetNextRide()"
	var out bytes.Buffer
	require.NoError(t, r.Run(context.Background(), strings.NewReader(in), &out))
	assert.Equal(t, "(1,-5,10),(2,3,-2)\n(1,-5,10)\n(2,3,-2)", out.String())
	assert.Equal(t, 0.0, testutil.ToFloat64(r.metrics.duplicateRidesTotal))
}

// lineReader hands out one line per Read and calls onRead before each one.
type lineReader struct {
	lines  []string
	reads  int
	onRead func(n int)
}

func (l *lineReader) Read(p []byte) (int, error) {
	if l.reads >= len(l.lines) {
		return 0, io.EOF
	}
	l.reads++
	l.onRead(l.reads)
	return copy(p, l.lines[l.reads-1]+"\n"), nil
}

func TestRunner_CanceledMidwayKeepsOutput(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := &lineReader{
		lines: []string{"Insert(1,2,3)", "Print(1)", "Print(1)", "Print(1)"},
		onRead: func(n int) {
			if n == 3 {
				cancel()
			}
		},
	}

	var out bytes.Buffer
	err := r.Run(ctx, in, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "(1,2,3)", out.String())
	assert.Equal(t, 1, r.Dispatcher().Len())
}

func TestRunner_ContextCanceled(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := r.Run(ctx, strings.NewReader("Insert(1,2,3)\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.Dispatcher().Len())
}

func TestRunner_MetricsRegistered(t *testing.T) {
	_, reg, _ := newTestRunner(t)

	// Vectors only show up once a label set is observed.
	n, err := testutil.GatherAndCount(reg, "gatortaxi_duplicate_rides_total", "gatortaxi_skipped_lines_total", "gatortaxi_pending_rides")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
