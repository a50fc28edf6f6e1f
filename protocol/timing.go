//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package protocol

import (
	"fmt"
	"os"
	"time"

	"github.com/markkurossi/tabulate"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/transport"
)

// FileSize renders a byte count the way the teacher's circuit.FileSize
// does, for the transfer column of the timing report.
type FileSize uint64

func (s FileSize) String() string {
	switch {
	case s > 1000*1000*1000*1000:
		return fmt.Sprintf("%dTB", s/(1000*1000*1000*1000))
	case s > 1000*1000*1000:
		return fmt.Sprintf("%dGB", s/(1000*1000*1000))
	case s > 1000*1000:
		return fmt.Sprintf("%dMB", s/(1000*1000))
	case s > 1000:
		return fmt.Sprintf("%dkB", s/1000)
	default:
		return fmt.Sprintf("%dB", s)
	}
}

// Sample records the wall-clock span of one named phase of a protocol run.
type Sample struct {
	Label string
	Start time.Time
	End   time.Time
}

// Timing accumulates samples across a single RunGarbler/RunEvaluator call.
// Grounded on circuit/timing.go's Timing/Sample pair, flattened to a
// single level since this protocol has no sub-phases to nest: a run is
// marked as Handshake, OT and Eval in sequence (plus Reply on the
// evaluator side), with no per-gate breakdown worth reporting.
type Timing struct {
	Start   time.Time
	Samples []*Sample
}

// NewTiming starts a timing run from the current moment.
func NewTiming() *Timing {
	return &Timing{Start: time.Now()}
}

// Mark closes out the span since the previous mark (or since Start, for
// the first call) under label.
func (t *Timing) Mark(label string) {
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	t.Samples = append(t.Samples, &Sample{Label: label, Start: start, End: time.Now()})
}

// Print renders the profiling report to standard output, using stats for
// the wire-transfer totals row.
func (t *Timing) Print(stats transport.IOStats) {
	if len(t.Samples) == 0 {
		return
	}

	sent := stats.Sent.Load()
	recvd := stats.Recvd.Load()
	flushed := stats.Flushed.Load()

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := t.Samples[len(t.Samples)-1].End.Sub(t.Start)
	for _, sample := range t.Samples {
		row := tab.Row()
		row.Column(sample.Label)
		duration := sample.End.Sub(sample.Start)
		row.Column(duration.String())
		row.Column(fmt.Sprintf("%.2f%%", float64(duration)/float64(total)*100))
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	row = tab.Row()
	row.Column("├╴Sent").SetFormat(tabulate.FmtItalic)
	row.Column(FileSize(sent).String()).SetFormat(tabulate.FmtItalic)
	row.Column("")

	row = tab.Row()
	row.Column("├╴Rcvd").SetFormat(tabulate.FmtItalic)
	row.Column(FileSize(recvd).String()).SetFormat(tabulate.FmtItalic)
	row.Column("")

	row = tab.Row()
	row.Column("╰╴Flcd").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%v", flushed))
	row.Column("")

	tab.Print(os.Stdout)
}
