package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemEventType enumerates auditable administrative events.
type SystemEventType string

const (
	EventUserCreated     SystemEventType = "USER_CREATED"
	EventUserUpdated     SystemEventType = "USER_UPDATED"
	EventUserDeleted     SystemEventType = "USER_DELETED"
	EventReportGenerated SystemEventType = "REPORT_GENERATED"
	EventCourseCreated   SystemEventType = "COURSE_CREATED"
	EventCourseUpdated   SystemEventType = "COURSE_UPDATED"
	EventCourseDeleted   SystemEventType = "COURSE_DELETED"
)

// SystemEventLog is an append-only audit trail entry. No code path updates or
// deletes rows once written.
type SystemEventLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ActorID   *uint             `json:"actor_id"`
	EventType SystemEventType   `gorm:"size:30;not null" json:"event_type"`
	Details   datatypes.JSONMap `gorm:"type:json" json:"details"`
	Timestamp time.Time         `gorm:"autoCreateTime;index" json:"timestamp"`

	Actor *User `json:"actor,omitempty"`
}
