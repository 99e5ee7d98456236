package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a gym member row. Balance is the raw signed decimal;
// the domain layer wraps it with the sign convention.
type Client struct {
	ClientID              string          `db:"client_id"`
	Name                  string          `db:"name"`
	Email                 string          `db:"email"`
	Phone                 string          `db:"phone"`
	JoinDate              time.Time       `db:"join_date"`
	Status                string          `db:"status"`
	Balance               decimal.Decimal `db:"balance"`
	Plan                  string          `db:"plan"`
	Points                int             `db:"points"`
	Level                 string          `db:"level"`
	Streak                int             `db:"streak"`
	LastVisit             *time.Time      `db:"last_visit"`
	BirthDate             *time.Time      `db:"birth_date"`
	EmergencyContact      string          `db:"emergency_contact"`
	AssignedRoutineID     string          `db:"assigned_routine_id"` // Nullable
	RoutineStartDate      *time.Time      `db:"routine_start_date"`
	LastMembershipPayment *time.Time      `db:"last_membership_payment"`
	IsActive              bool            `db:"is_active"`
	AuditFields
}
