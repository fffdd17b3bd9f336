package dto

import (
	"time"

	"github.com/edupulse/course-activity-api/internal/models"
)

// ActivityCreateRequest captures the payload for logging an activity.
type ActivityCreateRequest struct {
	ActivityType string                 `json:"activity_type" validate:"required"`
	CourseID     uint                   `json:"course_id" validate:"required"`
	Details      map[string]interface{} `json:"details" validate:"required"`
}

// ActivityUpdateRequest captures partial edits to an owned activity log.
type ActivityUpdateRequest struct {
	ActivityType *string                `json:"activity_type"`
	CourseID     *uint                  `json:"course_id"`
	Details      map[string]interface{} `json:"details"`
}

// ActivityListRequest carries the optional listing filters as raw query
// values; date strings that fail to parse are dropped rather than rejected.
type ActivityListRequest struct {
	ActivityType string
	CourseID     *uint
	DateFrom     string
	DateTo       string
}

// ActivityResponse serializes one activity log entry.
type ActivityResponse struct {
	ID           uint                   `json:"id"`
	Instructor   *BasicUserResponse     `json:"instructor"`
	Course       *CourseResponse        `json:"course"`
	ActivityType string                 `json:"activity_type"`
	LogDate      time.Time              `json:"log_date"`
	Details      map[string]interface{} `json:"details"`
}

// NewActivityResponse converts an activity log model into a DTO.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	response := ActivityResponse{
		ID:           entry.ID,
		ActivityType: string(entry.ActivityType),
		LogDate:      entry.LogDate,
		Details:      entry.Details,
	}
	if entry.Instructor != nil {
		instructor := NewBasicUserResponse(*entry.Instructor)
		response.Instructor = &instructor
	}
	if entry.Course != nil {
		course := NewCourseResponse(*entry.Course)
		response.Course = &course
	}
	return response
}
