package fieldprops

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// minNormalitySamples is the floor below which the omnibus test is skipped.
const minNormalitySamples = 8

// normalityAlpha is the rejection threshold for the null of normality.
const normalityAlpha = 0.05

// testNormality runs the D'Agostino K² omnibus test. It returns nil when
// there are too few samples or the data is degenerate (zero variance), a
// true/false pointer otherwise: true means normality was not rejected at
// p < 0.05.
func testNormality(data []float64) *bool {
	p, ok := NormalityPValue(data)
	if !ok {
		return nil
	}
	normal := p > normalityAlpha
	return &normal
}

// NormalityPValue returns the p-value of the K² omnibus test, or false when
// the sample is too small or degenerate for the test to apply.
func NormalityPValue(data []float64) (float64, bool) {
	if len(data) < minNormalitySamples {
		return 0, false
	}

	m2, m3, m4 := centralMoments(data)
	if m2 == 0 {
		return 0, false
	}

	zs, ok := skewStatistic(data, m2, m3)
	if !ok {
		return 0, false
	}
	zk, ok := kurtosisStatistic(data, m2, m4)
	if !ok {
		return 0, false
	}

	k2 := zs*zs + zk*zk
	return distuv.ChiSquared{K: 2}.Survival(k2), true
}

func centralMoments(data []float64) (m2, m3, m4 float64) {
	n := float64(len(data))
	mean := 0.0
	for _, x := range data {
		mean += x
	}
	mean /= n

	for _, x := range data {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n
	return m2, m3, m4
}

// skewStatistic is the normalized skewness z-score of the omnibus test.
func skewStatistic(data []float64, m2, m3 float64) (float64, bool) {
	n := float64(len(data))
	g1 := m3 / math.Pow(m2, 1.5)

	y := g1 * math.Sqrt(((n+1)*(n+3))/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) /
		((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	if w2 <= 1 {
		return 0, false
	}
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}

	z := delta * math.Log(y/alpha+math.Sqrt((y/alpha)*(y/alpha)+1))
	return z, true
}

// kurtosisStatistic is the normalized kurtosis z-score of the omnibus test.
func kurtosisStatistic(data []float64, m2, m4 float64) (float64, bool) {
	n := float64(len(data))
	b2 := m4 / (m2 * m2)

	e := 3 * (n - 1) / (n + 1)
	variance := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	if variance <= 0 {
		return 0, false
	}
	x := (b2 - e) / math.Sqrt(variance)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	if sqrtBeta1 == 0 {
		return 0, false
	}
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))

	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	var term2 float64
	if denom != 0 {
		term2 = math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	}

	z := (term1 - term2) / math.Sqrt(2/(9*a))
	return z, true
}
