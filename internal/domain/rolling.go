package domain

import (
	"math"
	"sort"
)

// RollingAveragePoint is one derived point of a rolling-average series.
// It is never persisted.
type RollingAveragePoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

// RollingAverages computes a sliding-window mean over the entries, sorted
// ascending by date. Fewer entries than the window is not an error; the
// result is simply empty. Averages are in kilograms, rounded to 2 decimal
// places here so that trend deltas survive display formatting; callers must
// not round again. The input slice is not mutated.
func RollingAverages(entries []WeightEntry, window int) []RollingAveragePoint {
	if window <= 0 || len(entries) < window {
		return []RollingAveragePoint{}
	}

	sorted := make([]WeightEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	points := make([]RollingAveragePoint, 0, len(sorted)-window+1)
	for i := window - 1; i < len(sorted); i++ {
		var sum float64
		for _, e := range sorted[i-window+1 : i+1] {
			sum += e.Weight
		}
		points = append(points, RollingAveragePoint{
			Date:    sorted[i].Date,
			Average: math.Round(sum/float64(window)*100) / 100,
		})
	}
	return points
}
