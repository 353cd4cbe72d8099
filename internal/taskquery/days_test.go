package taskquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountByDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	times := []time.Time{
		time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC),
		time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 14, 1, 0, 0, 0, time.UTC),
		// 02:00 IST on the 15th is still the 14th in UTC.
		time.Date(2026, 10, 15, 2, 0, 0, 0, ist),
	}

	days := CountByDay(times)

	assert.Equal(t, []DayCount{
		{Day: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), Count: 1},
		{Day: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), Count: 3},
	}, days)
}

func TestCountByDay_Empty(t *testing.T) {
	assert.Empty(t, CountByDay(nil))
}
