// Package ptplog extracts clock measurements from ptp4l daemon logs.
//
// A ptp4l servo line looks like:
//
//	ptp4l[1234]: ptp4l[567.890]: master offset  -42 s2 freq  +1503 path delay  8921
//
// Only lines of that exact shape are consumed; everything else in the log
// (port state changes, fault records, announce messages) is skipped.
package ptplog

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// servoRe captures the master offset, the frequency adjustment and the path
// delay from a ptp4l servo line. Offset and freq may carry a sign; path delay
// is always non-negative in ptp4l output.
var servoRe = regexp.MustCompile(`ptp4l\[\d+\]: ptp4l\[\d+\.\d+\]: master offset\s+([+-]?\d+)\s+s2 freq\s+([+-]?\d+)\s+path delay\s+(\d+)`)

// Sample is one matched servo line. Values are nanoseconds (offset, delay)
// and parts per billion (freq), as ptp4l reports them.
type Sample struct {
	Offset float64
	Freq   float64
	Delay  float64
}

// ExtractSample matches one log line against the servo pattern. The second
// return is false when the line is not a servo line.
func ExtractSample(line string) (Sample, bool) {
	m := servoRe.FindStringSubmatch(line)
	if m == nil {
		return Sample{}, false
	}
	// The captures are all-digit strings by construction, so ParseFloat
	// cannot fail here.
	off, _ := strconv.ParseFloat(m[1], 64)
	freq, _ := strconv.ParseFloat(m[2], 64)
	delay, _ := strconv.ParseFloat(m[3], 64)
	return Sample{Offset: off, Freq: freq, Delay: delay}, true
}

// HostSamples holds the measurement series extracted from one host's log.
// Offsets and Delays are always the same length and keep log-line order.
type HostSamples struct {
	Offsets []float64
	Delays  []float64
}

// ParseFile reads a ptp4l log and accumulates offset and path-delay series.
// A readable file with no servo lines yields (nil, nil): absence of data is
// not an error. An unreadable file returns the I/O error for the caller to
// handle.
func ParseFile(path string) (*HostSamples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hs := &HostSamples{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		s, ok := ExtractSample(sc.Text())
		if !ok {
			continue
		}
		hs.Offsets = append(hs.Offsets, s.Offset)
		hs.Delays = append(hs.Delays, s.Delay)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(hs.Offsets) == 0 {
		return nil, nil
	}
	return hs, nil
}
