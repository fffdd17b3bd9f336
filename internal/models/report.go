package models

import "time"

// ReportType enumerates the aggregation exports users may request.
type ReportType string

const (
	ReportActivitySummary     ReportType = "ACTIVITY_SUMMARY"
	ReportPerformanceAnalysis ReportType = "PERFORMANCE_ANALYSIS"
	ReportSystemUsage         ReportType = "SYSTEM_USAGE"
)

// Valid reports whether the report type belongs to the closed enumeration.
func (t ReportType) Valid() bool {
	switch t {
	case ReportActivitySummary, ReportPerformanceAnalysis, ReportSystemUsage:
		return true
	}
	return false
}

// ReportStatus tracks the report lifecycle. Transitions are one-way:
// PENDING -> PROCESSING -> COMPLETED | FAILED. Terminal states never regress.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "PENDING"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusCompleted  ReportStatus = "COMPLETED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// Terminal reports whether the status allows no further transitions.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusCompleted || s == ReportStatusFailed
}

// Report is a requested aggregation export with a lifecycle status and an
// optional generated artifact on disk.
type Report struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RequestedByID *uint        `json:"requested_by_id"`
	ReportType    ReportType   `gorm:"size:30;not null" json:"report_type"`
	Status        ReportStatus `gorm:"size:10;not null;default:PENDING" json:"status"`
	StartDate     time.Time    `gorm:"not null" json:"start_date"`
	EndDate       time.Time    `gorm:"not null" json:"end_date"`
	InstructorID  *uint        `json:"instructor_id"`
	FilePath      string       `gorm:"size:512" json:"generated_file"`
	FailureReason string       `gorm:"size:512" json:"failure_reason,omitempty"`
	GeneratedAt   time.Time    `gorm:"autoCreateTime" json:"generated_at"`

	RequestedBy *User `json:"requested_by,omitempty"`
}
