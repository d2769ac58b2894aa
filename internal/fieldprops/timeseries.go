package fieldprops

import (
	"vizier/domain/field"
	"vizier/internal/typeinf"
)

// detectTimeSeries finds the longest contiguous run of date-like column
// headers. A run of at least two headers classifies the dataset as wide and
// yields a time-series descriptor; otherwise nil is returned and the dataset
// is long.
func detectTimeSeries(headers []string) *field.TimeSeries {
	bestStart, bestLen := -1, 0
	runStart, runLen := -1, 0

	for i, h := range headers {
		if typeinf.LooksLikeDate(h) {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			if runLen > bestLen {
				bestStart, bestLen = runStart, runLen
			}
		} else {
			runLen = 0
		}
	}

	if bestLen < 2 {
		return nil
	}

	end := bestStart + bestLen - 1
	ts := &field.TimeSeries{
		StartIndex:  bestStart,
		StartName:   headers[bestStart],
		EndIndex:    end,
		EndName:     headers[end],
		NumElements: bestLen,
	}

	startTime, okStart := typeinf.ParseTemporal(headers[bestStart])
	endTime, okEnd := typeinf.ParseTemporal(headers[end])
	if okStart && okEnd && bestLen > 1 {
		ts.IntervalSeconds = endTime.Sub(startTime).Seconds() / float64(bestLen-1)
	}

	return ts
}
