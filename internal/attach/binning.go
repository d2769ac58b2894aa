package attach

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Bin is one half-open interval [Lo, Hi) except for the last bin, whose
// upper edge is nudged outward so the maximum value lands inside it.
type Bin struct {
	Lo, Hi float64
}

// Label renders the interval the way it appears in histogram output.
func (b Bin) Label() string {
	return fmt.Sprintf("[%g, %g)", b.Lo, b.Hi)
}

// freedmanDiaconisBins computes histogram bin edges using the
// Freedman-Diaconis width 2*IQR*n^(-1/3), capped at maxBins. Degenerate
// inputs (constant column, zero IQR) collapse to a single bin.
func freedmanDiaconisBins(values []float64, maxBins int) []Bin {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Lo: lo, Hi: nextAfterUp(hi)}}
	}

	iqr, err := stats.InterQuartileRange(stats.Float64Data(sorted))
	width := 0.0
	if err == nil && iqr > 0 {
		width = 2 * iqr * math.Pow(float64(len(sorted)), -1.0/3.0)
	}
	count := maxBins
	if width > 0 {
		if n := int(math.Ceil((hi - lo) / width)); n < count {
			count = n
		}
	}
	if count < 1 {
		count = 1
	}

	step := (hi - lo) / float64(count)
	bins := make([]Bin, count)
	for i := 0; i < count; i++ {
		bins[i] = Bin{Lo: lo + float64(i)*step, Hi: lo + float64(i+1)*step}
	}
	bins[count-1].Hi = nextAfterUp(hi)
	return bins
}

// binIndex locates the bin containing v, or -1 when v is outside every bin.
func binIndex(bins []Bin, v float64) int {
	for i, b := range bins {
		if v >= b.Lo && v < b.Hi {
			return i
		}
	}
	return -1
}

func nextAfterUp(v float64) float64 {
	next := math.Nextafter(v, math.Inf(1))
	if next == v {
		return v + 1
	}
	return next
}
