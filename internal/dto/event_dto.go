package dto

import (
	"time"

	"github.com/edupulse/course-activity-api/internal/models"
)

// SystemEventResponse serializes one audit trail entry.
type SystemEventResponse struct {
	ID        uint                   `json:"id"`
	Actor     *BasicUserResponse     `json:"actor"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewSystemEventResponse converts an event model into a DTO.
func NewSystemEventResponse(event models.SystemEventLog) SystemEventResponse {
	response := SystemEventResponse{
		ID:        event.ID,
		EventType: string(event.EventType),
		Details:   event.Details,
		Timestamp: event.Timestamp,
	}
	if event.Actor != nil {
		actor := NewBasicUserResponse(*event.Actor)
		response.Actor = &actor
	}
	return response
}
