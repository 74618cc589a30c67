package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinShapiroSamples is the smallest sample the Shapiro-Wilk test accepts.
const MinShapiroSamples = 3

var ErrIdenticalValues = errors.New("all sample values are identical")

// ShapiroWilk tests the null hypothesis that xs was drawn from a normal
// distribution. It returns the W statistic and an approximate p-value using
// the Royston AS R94 method (the same approximation family scipy uses),
// valid for sample sizes from 3 up to about 5000.
func ShapiroWilk(xs []float64) (w, p float64, err error) {
	n := len(xs)
	if n < MinShapiroSamples {
		return 0, 0, fmt.Errorf("shapiro-wilk requires at least %d samples, got %d", MinShapiroSamples, n)
	}

	x := append([]float64(nil), xs...)
	sort.Float64s(x)
	if x[n-1] == x[0] {
		return 0, 0, ErrIdenticalValues
	}

	a := shapiroWeights(n)

	mean := stat.Mean(x, nil)
	var num, den float64
	for i, v := range x {
		num += a[i] * v
		den += (v - mean) * (v - mean)
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}
	return w, shapiroPValue(w, n), nil
}

// shapiroWeights builds the coefficient vector a for a sample of size n.
// The expected normal order statistics use the Blom approximation; the two
// outermost weights are polynomial-corrected per Royston, and the remainder
// are rescaled so the vector stays unit length.
func shapiroWeights(n int) []float64 {
	m := make([]float64, n)
	var ssq float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssq += m[i] * m[i]
	}

	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
		return a
	}

	u := 1 / math.Sqrt(float64(n))
	rsn := math.Sqrt(ssq)
	an := m[n-1]/rsn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))

	var phi float64
	if n > 5 {
		an1 := m[n-2]/rsn + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*(-3.582633)))))
		phi = (ssq - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		sp := math.Sqrt(phi)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / sp
		}
		a[n-1], a[0] = an, -an
		a[n-2], a[1] = an1, -an1
	} else {
		phi = (ssq - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		sp := math.Sqrt(phi)
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / sp
		}
		a[n-1], a[0] = an, -an
	}
	return a
}

// shapiroPValue maps the W statistic to an approximate p-value. Royston's
// transforms: exact arcsine form for n == 3, a log-gamma normalization for
// 4 <= n <= 11, and a log-log normalization beyond that.
func shapiroPValue(w float64, n int) float64 {
	fn := float64(n)
	switch {
	case n == 3:
		const (
			pi6  = 1.90985931710274 // 6/pi
			stqr = 1.04719755119660 // asin(sqrt(3/4))
		)
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		return math.Min(math.Max(p, 0), 1)
	case n <= 11:
		g := -2.273 + 0.459*fn
		mu := 0.5440 + fn*(-0.39978+fn*(0.025054+fn*(-0.0006714)))
		sigma := math.Exp(1.3822 + fn*(-0.77857+fn*(0.062767+fn*(-0.0020322))))
		z := (-math.Log(g-math.Log1p(-w)) - mu) / sigma
		return distuv.UnitNormal.Survival(z)
	default:
		lw := math.Log1p(-w)
		ln := math.Log(fn)
		mu := -1.5861 + ln*(-0.31082+ln*(-0.083751+ln*0.0038915))
		sigma := math.Exp(-0.4803 + ln*(-0.082676+ln*0.0030302))
		z := (lw - mu) / sigma
		return distuv.UnitNormal.Survival(z)
	}
}
