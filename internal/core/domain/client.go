package domain

import "time"

// MembershipStatus is the lifecycle state of a client's membership.
type MembershipStatus string

const (
	StatusActive   MembershipStatus = "ACTIVE"
	StatusInactive MembershipStatus = "INACTIVE"
	StatusPending  MembershipStatus = "PENDING"
)

// ClientLevel is the loyalty tier derived from accumulated points.
type ClientLevel string

const (
	LevelBronze ClientLevel = "BRONZE"
	LevelSilver ClientLevel = "SILVER"
	LevelGold   ClientLevel = "GOLD"
)

// Client represents a gym member and their running ledger balance.
type Client struct {
	ClientID              string           `json:"clientID"` // Primary key (UUID), immutable
	Name                  string           `json:"name"`
	Email                 string           `json:"email"`
	Phone                 string           `json:"phone"`
	JoinDate              time.Time        `json:"joinDate"`
	Status                MembershipStatus `json:"status"`
	Balance               Balance          `json:"balance"`
	Plan                  string           `json:"plan"` // PlanCatalog key
	Points                int              `json:"points"`
	Level                 ClientLevel      `json:"level"`
	Streak                int              `json:"streak"`
	LastVisit             *time.Time       `json:"lastVisit"`
	BirthDate             *time.Time       `json:"birthDate"`
	EmergencyContact      string           `json:"emergencyContact"`
	AssignedRoutineID     string           `json:"assignedRoutineID"` // Empty when no routine assigned
	RoutineStartDate      *time.Time       `json:"routineStartDate"`
	LastMembershipPayment *time.Time       `json:"lastMembershipPayment"`
	IsActive              bool             `json:"isActive"` // Soft-archive flag, distinct from membership status
	AuditFields
}
