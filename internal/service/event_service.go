package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

const activityFeedSize = 20

// EventRecorder appends entries to the system audit trail.
type EventRecorder interface {
	Record(ctx context.Context, actorID *uint, eventType models.SystemEventType, details map[string]interface{}) error
}

// EventService records audit events and serves the admin activity feed.
type EventService interface {
	EventRecorder
	Feed(ctx context.Context) ([]dto.SystemEventResponse, error)
}

type eventService struct {
	repo   repository.SystemEventRepository
	logger zerolog.Logger
}

// NewEventService constructs the system event service.
func NewEventService(repo repository.SystemEventRepository, logger zerolog.Logger) EventService {
	return &eventService{
		repo:   repo,
		logger: logger.With().Str("component", "event_service").Logger(),
	}
}

func (s *eventService) Record(ctx context.Context, actorID *uint, eventType models.SystemEventType, details map[string]interface{}) error {
	payload := datatypes.JSONMap{}
	for key, value := range details {
		payload[key] = value
	}

	event := models.SystemEventLog{
		ActorID:   actorID,
		EventType: eventType,
		Details:   payload,
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		s.logger.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to persist system event")
		return err
	}

	return nil
}

func (s *eventService) Feed(ctx context.Context) ([]dto.SystemEventResponse, error) {
	events, err := s.repo.Recent(ctx, activityFeedSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SystemEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, dto.NewSystemEventResponse(event))
	}

	return responses, nil
}
