package domain_test

import (
	"testing"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheckInCountsTowardOccupancy(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	checkout := now.Add(-30 * time.Minute)

	tests := []struct {
		name    string
		checkIn domain.CheckIn
		want    bool
	}{
		{
			name:    "recent check-in without checkout counts",
			checkIn: domain.CheckIn{Timestamp: now.Add(-45 * time.Minute)},
			want:    true,
		},
		{
			name:    "check-in older than the window is stale",
			checkIn: domain.CheckIn{Timestamp: now.Add(-3 * time.Hour)},
			want:    false,
		},
		{
			name:    "checked-out visit no longer counts",
			checkIn: domain.CheckIn{Timestamp: now.Add(-1 * time.Hour), CheckoutTimestamp: &checkout},
			want:    false,
		},
		{
			name:    "check-in exactly at the window boundary is stale",
			checkIn: domain.CheckIn{Timestamp: now.Add(-domain.OccupancyWindow)},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checkIn.CountsTowardOccupancy(now))
		})
	}
}
