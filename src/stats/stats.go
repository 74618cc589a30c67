// Package stats provides the descriptive statistics and hypothesis tests
// used by the per-host measurement reports.
package stats

import (
	"errors"

	mwstats "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrEmptySample = errors.New("empty sample")

// Summary holds the descriptive statistics of one measurement series.
// StdDev is the population standard deviation (divide by n, not n-1),
// matching what ptp4l operators expect from servo jitter figures.
type Summary struct {
	N      int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Describe computes the summary of xs.
func Describe(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, ErrEmptySample
	}
	return Summary{
		N:      len(xs),
		Mean:   stat.Mean(xs, nil),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		StdDev: stat.PopStdDev(xs, nil),
	}, nil
}

// MannWhitneyU runs a two-sided Mann-Whitney U test on two independent
// samples of possibly different lengths. It returns the U statistic for x
// and the two-sided p-value. The test is rank-based and makes no normality
// assumption.
func MannWhitneyU(x, y []float64) (u, p float64, err error) {
	res, err := mwstats.MannWhitneyUTest(x, y, mwstats.LocationDiffers)
	if err != nil {
		return 0, 0, err
	}
	return res.U, res.P, nil
}
