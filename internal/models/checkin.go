package models

import "time"

// CheckIn represents a floor access row.
type CheckIn struct {
	CheckInID         string     `db:"checkin_id"`
	ClientID          string     `db:"client_id"`
	ClientName        string     `db:"client_name"`
	Timestamp         time.Time  `db:"timestamp"`
	CheckoutTimestamp *time.Time `db:"checkout_timestamp"`
}
