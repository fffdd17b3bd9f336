package service

import "github.com/edupulse/course-activity-api/internal/models"

// Actor identifies the authenticated caller. It is passed explicitly through
// every operation instead of being looked up from ambient state.
type Actor struct {
	ID   uint
	Role models.Role
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// IsInstructor reports whether the actor holds the instructor role.
func (a Actor) IsInstructor() bool {
	return a.Role == models.RoleInstructor
}
