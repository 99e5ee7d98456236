package domain_test

import (
	"testing"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCurrentRoutineDay(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "same day is day 1", today: start, want: 1},
		{name: "next day is day 2", today: start.AddDate(0, 0, 1), want: 2},
		{name: "sixth day", today: start.AddDate(0, 0, 6), want: 7},
		{name: "full cycle wraps to day 1", today: start.AddDate(0, 0, 7), want: 1},
		{name: "eighth day is day 2", today: start.AddDate(0, 0, 8), want: 2},
		{name: "several cycles later", today: start.AddDate(0, 0, 23), want: 3},
		{name: "partial day still counts as day 1", today: start.Add(23 * time.Hour), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CurrentRoutineDay(start, tt.today))
		})
	}
}

func TestCurrentRoutineDay_BackdatedStart(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// A start date in the future (clock skew) must still land in [1,7].
	for daysBack := 1; daysBack <= 15; daysBack++ {
		today := start.AddDate(0, 0, -daysBack)
		got := domain.CurrentRoutineDay(start, today)
		assert.GreaterOrEqual(t, got, 1, "daysBack=%d", daysBack)
		assert.LessOrEqual(t, got, 7, "daysBack=%d", daysBack)
	}

	// One whole day before the start sits at the end of the previous cycle.
	assert.Equal(t, 7, domain.CurrentRoutineDay(start, start.AddDate(0, 0, -1)))
	// A few hours before the start also floors into the previous cycle.
	assert.Equal(t, 7, domain.CurrentRoutineDay(start, start.Add(-2*time.Hour)))
}
