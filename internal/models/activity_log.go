package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityType enumerates the kinds of instructor work that can be logged.
type ActivityType string

const (
	ActivityMDBReply          ActivityType = "MDB_REPLY"
	ActivityTicketResponse    ActivityType = "TICKET_RESPONSE"
	ActivityAssignmentUpload  ActivityType = "ASSIGNMENT_UPLOAD"
	ActivityAssignmentMarking ActivityType = "ASSIGNMENT_MARKING"
	ActivityGDBMarking        ActivityType = "GDB_MARKING"
	ActivitySessionTracking   ActivityType = "SESSION_TRACKING"
	ActivityEmailResponse     ActivityType = "EMAIL_RESPONSE"
)

// ActivityTypes lists every valid activity type.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityMDBReply,
		ActivityTicketResponse,
		ActivityAssignmentUpload,
		ActivityAssignmentMarking,
		ActivityGDBMarking,
		ActivitySessionTracking,
		ActivityEmailResponse,
	}
}

// Valid reports whether the activity type belongs to the closed enumeration.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ActivityLog records one instructor action against a course. Entries are
// mutated only through the owning instructor's explicit edit.
type ActivityLog struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	InstructorID uint              `gorm:"not null;index" json:"instructor_id"`
	CourseID     *uint             `json:"course_id"`
	ActivityType ActivityType      `gorm:"size:30;not null" json:"activity_type"`
	Details      datatypes.JSONMap `gorm:"type:json" json:"details"`
	LogDate      time.Time         `gorm:"autoCreateTime;index" json:"log_date"`

	Instructor *User   `json:"instructor,omitempty"`
	Course     *Course `gorm:"constraint:OnDelete:SET NULL" json:"course,omitempty"`
}
