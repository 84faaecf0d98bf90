package watched

import (
	"math"

	"github.com/webtor-io/popcorn/models"
)

// Summarize computes the watched list statistics. Zero catalog ratings and
// runtimes mean "unknown" and are left out of their own mean. A mean over
// nothing is 0.
func Summarize(entries []models.WatchedEntry) models.Summary {
	var catalogRatings, userRatings, runtimes []float64
	for _, e := range entries {
		if e.CatalogRating > 0 {
			catalogRatings = append(catalogRatings, e.CatalogRating)
		}
		userRatings = append(userRatings, float64(e.UserRating))
		if e.RuntimeMinutes > 0 {
			runtimes = append(runtimes, float64(e.RuntimeMinutes))
		}
	}
	return models.Summary{
		Count:            len(entries),
		AvgCatalogRating: round2(mean(catalogRatings)),
		AvgUserRating:    round2(mean(userRatings)),
		AvgRuntime:       round2(mean(runtimes)),
	}
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
