// Package plot renders per-host measurement series as PNG line plots.
package plot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gonum.org/v1/gonum/floats"
)

// Filename returns the output path for one device/metric plot, e.g.
// plots/beta-offset.png.
func Filename(dir, device, metric string) string {
	return filepath.Join(dir, strings.ToLower(fmt.Sprintf("%s-%s.png", device, metric)))
}

// Render writes a line plot of sample index vs value to
// <dir>/<device>-<metric>.png, creating dir if needed and overwriting any
// existing file. The y-axis is clamped to the [min, max] of the data.
func Render(data []float64, dir, device, metric string) error {
	if len(data) == 0 {
		return fmt.Errorf("no data to plot for %s %s", device, metric)
	}

	xs := make([]float64, len(data))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := data
	if len(data) == 1 {
		// go-chart needs at least two X values to establish a range.
		xs = []float64{0, 1}
		ys = []float64{data[0], data[0]}
	}

	minY := floats.Min(data)
	maxY := floats.Max(data)
	if maxY <= minY {
		// Constant series: open up a minimal band so the range is valid.
		maxY = minY + 1
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("%s %s", device, metric),
		Width:  640,
		Height: 480,
		XAxis:  chart.XAxis{Name: "Sample Number"},
		YAxis: chart.YAxis{
			Name:  "Value (nanoseconds)",
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%s %s", device, metric),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorRed,
					StrokeWidth: 1.5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s %s plot: %w", device, metric, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}
	out := Filename(dir, device, metric)
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
