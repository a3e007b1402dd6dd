package analysis

import (
	"sort"
	"time"

	"cafe-analytics/src/analysis/core"
	"cafe-analytics/src/models"
)

// -----------------------------------------------------------------------------
// Weekly resampling of the daily series. Weeks start on Monday (ISO 8601).
// -----------------------------------------------------------------------------

// RollupWeekly folds the daily series into per-week buckets keyed by the
// Monday of each week, sorted ascending.
func RollupWeekly(daily []models.MDailyBucket) []models.MWeeklyBucket {
	weeks := make(map[string]*models.MWeeklyBucket)

	for _, d := range daily {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		start := weekStart(date).Format("2006-01-02")
		w, ok := weeks[start]
		if !ok {
			w = &models.MWeeklyBucket{WeekStart: start}
			weeks[start] = w
		}
		w.Revenue += d.Revenue
		w.Count += d.Count
	}

	out := make([]models.MWeeklyBucket, 0, len(weeks))
	for _, w := range weeks {
		w.Revenue = core.RoundCents(w.Revenue)
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStart < out[j].WeekStart
	})
	return out
}

// weekStart returns the Monday of the week containing date.
func weekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
