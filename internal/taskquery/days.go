package taskquery

import (
	"sort"
	"time"
)

// DayCount is the number of events that fell on one UTC calendar day.
type DayCount struct {
	Day   time.Time
	Count int64
}

// CountByDay buckets timestamps by UTC day, oldest day first.
func CountByDay(times []time.Time) []DayCount {
	counts := make(map[time.Time]int64)
	for _, t := range times {
		counts[StartOfDay(t)]++
	}

	days := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		days = append(days, DayCount{Day: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day.Before(days[j].Day)
	})
	return days
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
