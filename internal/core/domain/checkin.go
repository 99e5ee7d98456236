package domain

import "time"

// OccupancyWindow is how long a check-in counts toward current occupancy
// when the client never checked out.
const OccupancyWindow = 2 * time.Hour

// CheckIn records a client entering (and optionally leaving) the gym floor.
type CheckIn struct {
	CheckInID         string     `json:"checkInID"`
	ClientID          string     `json:"clientID"`
	ClientName        string     `json:"clientName"` // Denormalized for the access panel
	Timestamp         time.Time  `json:"timestamp"`
	CheckoutTimestamp *time.Time `json:"checkoutTimestamp"`
}

// CountsTowardOccupancy reports whether this check-in represents someone
// still on the floor at the given instant.
func (c CheckIn) CountsTowardOccupancy(now time.Time) bool {
	if c.CheckoutTimestamp != nil {
		return false
	}
	return now.Sub(c.Timestamp) < OccupancyWindow && !c.Timestamp.After(now)
}
