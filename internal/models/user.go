package models

import "time"

// Role classifies an account as administrator or instructor. The set is
// closed; every permission check matches exhaustively against these values.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleInstructor Role = "INSTRUCTOR"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor:
		return true
	}
	return false
}

// User is an account that can authenticate against the API.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255" json:"email"`
	FirstName    string     `gorm:"size:150" json:"first_name"`
	LastName     string     `gorm:"size:150" json:"last_name"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	// No column default: gorm omits false on insert when a default tag is
	// present. Registration sets the flag explicitly.
	IsActive  bool       `gorm:"not null" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Profile Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile"`
}

// Profile carries the role and department assignment for a user, created
// atomically with the user at registration.
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string    `gorm:"size:200" json:"name"`
	Role         Role      `gorm:"size:10;not null;default:INSTRUCTOR" json:"role"`
	DepartmentID *uint     `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`

	Department *Department `gorm:"constraint:OnDelete:SET NULL" json:"department,omitempty"`
}

// Department groups instructors; deleting one clears the reference on
// profiles rather than cascading.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}
