// Package stats holds the small numeric toolbox used by the insights
// computations. All functions are pure and follow one policy: garbage or
// insufficient input yields a zero value, never an error. The callers decide
// whether a zero is worth showing.
package stats

import "math"

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the sample standard deviation (n-1 denominator).
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// PearsonCorrelation returns the correlation coefficient of the two series,
// or 0 when there are fewer than 3 pairs or either side has zero variance.
func PearsonCorrelation(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 3 {
		return 0
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}

// EWMA computes the exponentially weighted moving average of the series.
// Alpha outside (0, 1] returns the input untouched.
func EWMA(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	if alpha <= 0 || alpha > 1 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// ShannonEntropy returns the entropy in bits of the given count distribution.
func ShannonEntropy(counts []int) float64 {
	var total float64
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			total += float64(c)
			nonZero++
		}
	}
	if nonZero < 2 {
		return 0
	}

	var entropy float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// NormalizedEntropy scales the entropy to [0, 1] by dividing with the
// maximum possible entropy for the number of distinct categories.
func NormalizedEntropy(counts []int) float64 {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	if nonZero < 2 {
		return 0
	}
	return ShannonEntropy(counts) / math.Log2(float64(nonZero))
}

// LinearRegressionSlope fits y = a + b*x over x = 0, 1, 2, ... and returns b.
func LinearRegressionSlope(ys []float64) float64 {
	n := len(ys)
	if n < 2 {
		return 0
	}

	// x values are the indices, so meanX and varX are known in closed form
	meanX := float64(n-1) / 2
	meanY := Mean(ys)

	var cov, varX float64
	for i := 0; i < n; i++ {
		dx := float64(i) - meanX
		cov += dx * (ys[i] - meanY)
		varX += dx * dx
	}

	if varX == 0 {
		return 0
	}

	return cov / varX
}
