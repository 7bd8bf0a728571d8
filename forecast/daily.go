// Package forecast implements reduction of raw forecast samples into daily entries
package forecast

import (
	"sort"
	"time"

	"weatherdesk.app/models"
)

// MaxDays is the number of daily entries returned by ReduceDaily
const MaxDays = 5

const dateLayout = "2006-01-02"

type pick struct {
	sample models.ForecastSample
	score  int
}

// ReduceDaily collapses a fine-grained forecast list into at most MaxDays
// entries, one per UTC calendar day, each the sample closest to noon.
// Days before now's UTC date are dropped. Ties on distance to noon keep the
// sample seen first in input order.
func ReduceDaily(samples []models.ForecastSample, now time.Time) []models.ForecastSample {
	byDate := make(map[string]pick)
	for _, s := range samples {
		t := time.Unix(s.Dt, 0).UTC()
		key := t.Format(dateLayout)
		score := 12 - t.Hour()
		if score < 0 {
			score = -score
		}
		if best, ok := byDate[key]; !ok || score < best.score {
			byDate[key] = pick{sample: s, score: score}
		}
	}

	today := now.UTC().Format(dateLayout)
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		if d >= today {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	if len(dates) > MaxDays {
		dates = dates[:MaxDays]
	}

	daily := make([]models.ForecastSample, 0, len(dates))
	for _, d := range dates {
		daily = append(daily, byDate[d].sample)
	}
	return daily
}
