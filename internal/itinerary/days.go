package itinerary

import "time"

type DayBucket struct {
	DayNumber int       `json:"day_number"`
	Date      time.Time `json:"date"`
	Items     []Item    `json:"items"`
}

type DaySummary struct {
	DayNumber       int       `json:"day_number"`
	Date            time.Time `json:"date"`
	ItemCount       int       `json:"item_count"`
	IsEmpty         bool      `json:"is_empty"`
	OccupiedMinutes int       `json:"occupied_minutes"`
}

// TotalDays counts the trip days, both endpoints included.
func TotalDays(b TripBounds) int {
	return b.TotalDays()
}

// GroupByDay buckets items for days 1..bounds.TotalDays(), each bucket sorted
// by start time. Empty days get an empty bucket. Items outside the range are
// not placed in any bucket; see Draft.Orphans.
func GroupByDay(b TripBounds, items []Item) []DayBucket {
	total := b.TotalDays()
	byDay := make(map[int][]Item, total)
	for _, it := range items {
		if b.Contains(it.DayNumber) {
			byDay[it.DayNumber] = append(byDay[it.DayNumber], it)
		}
	}

	buckets := make([]DayBucket, 0, total)
	for day := 1; day <= total; day++ {
		sorted := sortByStart(byDay[day])
		buckets = append(buckets, DayBucket{
			DayNumber: day,
			Date:      b.DateOf(day),
			Items:     sorted,
		})
	}
	return buckets
}

func summarize(bucket DayBucket) DaySummary {
	occupied := 0
	for _, it := range bucket.Items {
		if r, err := it.Range(); err == nil {
			occupied += r.Minutes()
		}
	}
	return DaySummary{
		DayNumber:       bucket.DayNumber,
		Date:            bucket.Date,
		ItemCount:       len(bucket.Items),
		IsEmpty:         len(bucket.Items) == 0,
		OccupiedMinutes: occupied,
	}
}

// DaySummaries returns one summary per trip day.
func DaySummaries(b TripBounds, items []Item) []DaySummary {
	buckets := GroupByDay(b, items)
	out := make([]DaySummary, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, summarize(bucket))
	}
	return out
}
