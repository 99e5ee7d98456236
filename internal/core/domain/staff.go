package domain

// StaffRole controls which views and operations a staff account may use.
type StaffRole string

const (
	RoleAdmin      StaffRole = "ADMIN"
	RoleInstructor StaffRole = "INSTRUCTOR"
)

// Staff is an employee account. Passwords are only ever stored as bcrypt
// hashes; the plaintext prompt-and-store scheme of the source system is not
// reproduced.
type Staff struct {
	StaffID      string    `json:"staffID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         StaffRole `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	AuditFields
}
