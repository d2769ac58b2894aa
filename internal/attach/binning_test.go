package attach

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinsCoverEveryValue(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 500)
	for i := range values {
		values[i] = rng.NormFloat64()*10 + 50
	}

	bins := freedmanDiaconisBins(values, 20)
	require.NotEmpty(t, bins)
	assert.LessOrEqual(t, len(bins), 20)

	// Every value, the maximum included, must land in exactly one bin.
	for _, v := range values {
		idx := binIndex(bins, v)
		require.GreaterOrEqual(t, idx, 0, "value %v fell outside every bin", v)
	}
}

func TestBinsRightEdgeExclusive(t *testing.T) {
	bins := freedmanDiaconisBins([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.Greater(t, len(bins), 1)
	// An interior edge belongs to the bin on its right.
	edge := bins[0].Hi
	assert.Equal(t, 1, binIndex(bins, edge))
	// The maximum still lands in the last bin.
	assert.Equal(t, len(bins)-1, binIndex(bins, 10))
}

func TestBinsConstantColumnCollapsesToOne(t *testing.T) {
	bins := freedmanDiaconisBins([]float64{4, 4, 4, 4}, 20)
	require.Len(t, bins, 1)
	assert.Equal(t, 0, binIndex(bins, 4))
}

func TestBinsEmptyInput(t *testing.T) {
	assert.Nil(t, freedmanDiaconisBins(nil, 20))
}

func TestBinCountRespectsFreedmanDiaconisWidth(t *testing.T) {
	// A tight IQR over a wide range would demand many bins; the cap holds.
	values := make([]float64, 0, 102)
	for i := 0; i < 100; i++ {
		values = append(values, 50)
	}
	values = append(values, 0, 1000)
	bins := freedmanDiaconisBins(values, 20)
	assert.LessOrEqual(t, len(bins), 20)
}
