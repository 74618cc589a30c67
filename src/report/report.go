// Package report drives the per-host parse/report/plot batch and the
// control-vs-experimental comparison.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/a1g3/ptp-stats/src/plot"
	"github.com/a1g3/ptp-stats/src/ptplog"
	"github.com/a1g3/ptp-stats/src/stats"
)

// DefaultHosts is the monitored fleet. Each host's log is expected at
// <dir>/<lowercase name>.log.
var DefaultHosts = []string{"Beta", "Charlie", "Delta", "Echo"}

// alpha is the fixed significance threshold for both hypothesis tests.
const alpha = 0.05

// Options carries the operational knobs of one batch run.
type Options struct {
	// Hosts overrides DefaultHosts when non-empty.
	Hosts []string
	// PlotDir is the output directory for PNG plots, "plots" when empty.
	PlotDir string
}

func (o Options) hosts() []string {
	if len(o.Hosts) > 0 {
		return o.Hosts
	}
	return DefaultHosts
}

func (o Options) plotDir() string {
	if o.PlotDir != "" {
		return o.PlotDir
	}
	return "plots"
}

// Run processes the control directory and, when experimentalDir is
// non-empty, the experimental directory followed by a per-host per-metric
// Mann-Whitney comparison. Per-host failures are logged and the batch
// continues; the report text goes to w.
func Run(w io.Writer, controlDir, experimentalDir string, opts Options) {
	control := collect(w, controlDir, opts)
	if experimentalDir == "" {
		return
	}
	experimental := collect(w, experimentalDir, opts)

	for _, name := range opts.hosts() {
		c, ok := control[name]
		if !ok {
			continue
		}
		e, ok := experimental[name]
		if !ok {
			ptplog.Warnf("[%s] no experimental data, skipping comparison", name)
			continue
		}
		fmt.Fprintf(w, "Comparing Control vs Experimental for %s Offsets:\n\n", name)
		compare(w, c.Offsets, e.Offsets, name+" Offsets")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Comparing Control vs Experimental for %s Delays:\n", name)
		compare(w, c.Delays, e.Delays, name+" Delays")
		fmt.Fprintln(w)
	}
}

// collect parses one directory's logs and reports stats and plots per host.
// Hosts with unreadable or matchless logs are absent from the result.
func collect(w io.Writer, dir string, opts Options) map[string]*ptplog.HostSamples {
	out := make(map[string]*ptplog.HostSamples)
	for _, name := range opts.hosts() {
		fmt.Fprintln(w, name)
		path := filepath.Join(dir, strings.ToLower(name)+".log")
		hs, err := ptplog.ParseFile(path)
		if err != nil {
			ptplog.Errorf("[%s] %v", name, err)
			continue
		}
		if hs == nil {
			fmt.Fprintln(w, "No valid offset or delay data found.")
			continue
		}
		out[name] = hs
		reportSeries(w, hs.Offsets, name, "Offset", opts)
		fmt.Fprintln(w)
		reportSeries(w, hs.Delays, name, "Delay", opts)
		fmt.Fprintln(w)
	}
	return out
}

func reportSeries(w io.Writer, data []float64, host, metric string, opts Options) {
	sum, err := stats.Describe(data)
	if err != nil {
		ptplog.Errorf("[%s] %s stats: %v", host, metric, err)
		return
	}
	fmt.Fprintf(w, "\t%s Stats:\n", metric)
	fmt.Fprintf(w, "\t  Mean: %.2f\n", sum.Mean)
	fmt.Fprintf(w, "\t  Min: %.2f\n", sum.Min)
	fmt.Fprintf(w, "\t  Max: %.2f\n", sum.Max)
	fmt.Fprintf(w, "\t  Std Dev: %.2f\n", sum.StdDev)
	runShapiro(w, data, metric+"s")
	if err := plot.Render(data, opts.plotDir(), host, metric); err != nil {
		ptplog.Warnf("[%s] %v", host, err)
	}
}

func runShapiro(w io.Writer, data []float64, label string) {
	if len(data) < stats.MinShapiroSamples {
		fmt.Fprintf(w, "\t  Not enough data to perform Shapiro-Wilk test for %s.\n", label)
		return
	}
	st, p, err := stats.ShapiroWilk(data)
	if err != nil {
		ptplog.Warnf("shapiro-wilk for %s: %v", label, err)
		return
	}
	fmt.Fprintf(w, "\t  Shapiro-Wilk Test for %s:\n", label)
	fmt.Fprintf(w, "\t    Statistic: %.4f, p-value: %.4f\n", st, p)
	if p > alpha {
		fmt.Fprintln(w, "\t    Sample appears to be normally distributed.")
	} else {
		fmt.Fprintln(w, "\t    Sample does NOT appear to be normally distributed.")
	}
}

func compare(w io.Writer, control, experimental []float64, label string) {
	u, p, err := stats.MannWhitneyU(control, experimental)
	if err != nil {
		ptplog.Errorf("mann-whitney for %s: %v", label, err)
		return
	}
	fmt.Fprintf(w, "\t  Mann-Whitney U Test for %s:\n", label)
	fmt.Fprintf(w, "\t    Statistic: %.4f, p-value: %.4f\n", u, p)
	if p < alpha {
		fmt.Fprintln(w, "Reject Null Hypothesis (Significant difference between two samples)")
	} else {
		fmt.Fprintln(w, "Do not Reject Null Hypothesis (No significant difference between two samples)")
	}
}
