package dto

import (
	"time"

	"github.com/edupulse/course-activity-api/internal/models"
)

// ReportCreateRequest captures a report submission. Dates use YYYY-MM-DD.
type ReportCreateRequest struct {
	ReportType   string `json:"report_type" validate:"required"`
	StartDate    string `json:"start_date" validate:"required"`
	EndDate      string `json:"end_date" validate:"required"`
	InstructorID *uint  `json:"instructor_id"`
}

// ReportResponse serializes a report request and its lifecycle state.
type ReportResponse struct {
	ID            uint               `json:"id"`
	RequestedBy   *BasicUserResponse `json:"generated_by"`
	ReportType    string             `json:"report_type"`
	Status        string             `json:"status"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	GeneratedFile string             `json:"generated_file,omitempty"`
	FailureReason string             `json:"failure_reason,omitempty"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// NewReportResponse converts a report model into a DTO.
func NewReportResponse(report models.Report) ReportResponse {
	response := ReportResponse{
		ID:            report.ID,
		ReportType:    string(report.ReportType),
		Status:        string(report.Status),
		StartDate:     report.StartDate.Format(DateLayout),
		EndDate:       report.EndDate.Format(DateLayout),
		GeneratedFile: report.FilePath,
		FailureReason: report.FailureReason,
		GeneratedAt:   report.GeneratedAt,
	}
	if report.RequestedBy != nil {
		requestedBy := NewBasicUserResponse(*report.RequestedBy)
		response.RequestedBy = &requestedBy
	}
	return response
}
