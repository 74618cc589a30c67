package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeServoLog writes a log with one servo line per (offset, delay) pair.
func writeServoLog(t *testing.T, dir, host string, offsets, delays []float64) {
	t.Helper()
	var b strings.Builder
	for i := range offsets {
		fmt.Fprintf(&b, "ptp4l[100]: ptp4l[%d.5]: master offset   %d s2 freq   5 path delay   %d\n",
			i+1, int(offsets[i]), int(delays[i]))
	}
	path := filepath.Join(dir, strings.ToLower(host)+".log")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunControlOnly(t *testing.T) {
	controlDir := t.TempDir()
	writeServoLog(t, controlDir, "Beta",
		[]float64{10, -7, 4, 1, 9, -2, 3, 0, 6, -5},
		[]float64{20, 22, 21, 23, 20, 24, 21, 22, 23, 20})

	var out bytes.Buffer
	opts := Options{Hosts: []string{"Beta"}, PlotDir: filepath.Join(t.TempDir(), "plots")}
	Run(&out, controlDir, "", opts)

	text := out.String()
	for _, want := range []string{
		"Beta",
		"\tOffset Stats:",
		"\t  Mean: 1.90",
		"\t  Min: -7.00",
		"\t  Max: 10.00",
		"\tDelay Stats:",
		"Shapiro-Wilk Test for Offsets:",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Mann-Whitney") {
		t.Fatalf("comparison ran without an experimental dir:\n%s", text)
	}
	for _, f := range []string{"beta-offset.png", "beta-delay.png"} {
		if _, err := os.Stat(filepath.Join(opts.PlotDir, f)); err != nil {
			t.Fatalf("missing plot %s: %v", f, err)
		}
	}
}

func TestRunConstantSeriesReportsZeroStdDev(t *testing.T) {
	controlDir := t.TempDir()
	writeServoLog(t, controlDir, "Delta",
		[]float64{5, 5, 5, 5},
		[]float64{9, 9, 9, 9})

	var out bytes.Buffer
	Run(&out, controlDir, "", Options{Hosts: []string{"Delta"}, PlotDir: t.TempDir()})
	if !strings.Contains(out.String(), "\t  Std Dev: 0.00") {
		t.Fatalf("expected zero std dev in report:\n%s", out.String())
	}
}

func TestRunSmallSampleSkipsShapiro(t *testing.T) {
	controlDir := t.TempDir()
	writeServoLog(t, controlDir, "Echo", []float64{1, 2}, []float64{3, 4})

	var out bytes.Buffer
	Run(&out, controlDir, "", Options{Hosts: []string{"Echo"}, PlotDir: t.TempDir()})

	text := out.String()
	if !strings.Contains(text, "Not enough data to perform Shapiro-Wilk test for Offsets.") {
		t.Fatalf("expected skip message for offsets:\n%s", text)
	}
	if !strings.Contains(text, "Not enough data to perform Shapiro-Wilk test for Delays.") {
		t.Fatalf("expected skip message for delays:\n%s", text)
	}
}

func TestRunNoValidDataAndMissingFile(t *testing.T) {
	controlDir := t.TempDir()
	path := filepath.Join(controlDir, "beta.log")
	if err := os.WriteFile(path, []byte("ptp4l[1]: ptp4l[0.1]: port 1: FAULTY\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	// charlie.log is deliberately absent; the batch must still finish.
	var out bytes.Buffer
	Run(&out, controlDir, "", Options{Hosts: []string{"Beta", "Charlie"}, PlotDir: t.TempDir()})

	text := out.String()
	if !strings.Contains(text, "No valid offset or delay data found.") {
		t.Fatalf("expected no-valid-data message:\n%s", text)
	}
	if !strings.Contains(text, "Charlie") {
		t.Fatalf("batch did not reach second host:\n%s", text)
	}
}

func TestRunComparisonIdenticalDatasets(t *testing.T) {
	offsets := []float64{10, -7, 4, 1, 9, -2, 3, 0}
	delays := []float64{20, 22, 21, 23, 20, 24, 21, 25}
	controlDir := t.TempDir()
	experimentalDir := t.TempDir()
	writeServoLog(t, controlDir, "Beta", offsets, delays)
	writeServoLog(t, experimentalDir, "Beta", offsets, delays)

	var out bytes.Buffer
	Run(&out, controlDir, experimentalDir, Options{Hosts: []string{"Beta"}, PlotDir: t.TempDir()})

	text := out.String()
	if !strings.Contains(text, "Comparing Control vs Experimental for Beta Offsets:") {
		t.Fatalf("missing offsets comparison header:\n%s", text)
	}
	if !strings.Contains(text, "Comparing Control vs Experimental for Beta Delays:") {
		t.Fatalf("missing delays comparison header:\n%s", text)
	}
	if strings.Count(text, "Do not Reject Null Hypothesis (No significant difference between two samples)") != 2 {
		t.Fatalf("identical datasets should not reject for either metric:\n%s", text)
	}
}

func TestRunComparisonShiftedDatasetsReject(t *testing.T) {
	offsets := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	delays := []float64{20, 21, 22, 23, 24, 25, 26, 27, 28, 29}
	shift := func(xs []float64, by float64) []float64 {
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = v + by
		}
		return out
	}
	controlDir := t.TempDir()
	experimentalDir := t.TempDir()
	writeServoLog(t, controlDir, "Beta", offsets, delays)
	writeServoLog(t, experimentalDir, "Beta", shift(offsets, 1000), shift(delays, 1000))

	var out bytes.Buffer
	Run(&out, controlDir, experimentalDir, Options{Hosts: []string{"Beta"}, PlotDir: t.TempDir()})

	if strings.Count(out.String(), "Reject Null Hypothesis (Significant difference between two samples)") != 2 {
		t.Fatalf("separated datasets should reject for both metrics:\n%s", out.String())
	}
}

func TestRunComparisonSkipsHostMissingExperimental(t *testing.T) {
	offsets := []float64{1, 2, 3, 4, 5}
	delays := []float64{6, 7, 8, 9, 10}
	controlDir := t.TempDir()
	experimentalDir := t.TempDir() // no logs at all
	writeServoLog(t, controlDir, "Beta", offsets, delays)

	var out bytes.Buffer
	Run(&out, controlDir, experimentalDir, Options{Hosts: []string{"Beta"}, PlotDir: t.TempDir()})

	if strings.Contains(out.String(), "Mann-Whitney") {
		t.Fatalf("comparison should be skipped when experimental data is missing:\n%s", out.String())
	}
}
