package dto

import "github.com/edupulse/course-activity-api/internal/models"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// BasicUserResponse is the short user shape embedded in other payloads.
type BasicUserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewBasicUserResponse converts a user model into the embedded shape.
func NewBasicUserResponse(user models.User) BasicUserResponse {
	return BasicUserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
