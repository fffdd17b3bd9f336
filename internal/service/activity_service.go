package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

// ActivityService records and manages instructor activity logs. Every
// operation is scoped to the calling instructor; entries owned by other
// instructors are indistinguishable from missing ones.
type ActivityService interface {
	Record(ctx context.Context, actor Actor, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	List(ctx context.Context, actor Actor, req dto.ActivityListRequest) ([]dto.ActivityResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type activityService struct {
	activities repository.ActivityLogRepository
	courses    repository.CourseRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(
	activities repository.ActivityLogRepository,
	courses repository.CourseRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ActivityService {
	return &activityService{
		activities: activities,
		courses:    courses,
		validator:  validate,
		logger:     logger.With().Str("component", "activity_service").Logger(),
	}
}

// ownedCourse resolves the course and verifies the actor teaches it. A course
// assigned to someone else yields ErrPermissionDenied; a missing one ErrNotFound.
func (s *activityService) ownedCourse(ctx context.Context, actor Actor, courseID uint) (models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, fmt.Errorf("course %w", ErrNotFound)
		}
		return models.Course{}, err
	}
	if course.InstructorID == nil || *course.InstructorID != actor.ID {
		return models.Course{}, fmt.Errorf("course is not assigned to you: %w", ErrPermissionDenied)
	}
	return course, nil
}

func (s *activityService) Record(ctx context.Context, actor Actor, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	activityType := models.ActivityType(strings.ToUpper(strings.TrimSpace(payload.ActivityType)))
	if !activityType.Valid() {
		return dto.ActivityResponse{}, fmt.Errorf("unknown activity type %q: %w", payload.ActivityType, ErrInvalidInput)
	}

	course, err := s.ownedCourse(ctx, actor, payload.CourseID)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	details := datatypes.JSONMap{}
	for key, value := range payload.Details {
		details[key] = value
	}

	entry := models.ActivityLog{
		InstructorID: actor.ID,
		CourseID:     &course.ID,
		ActivityType: activityType,
		Details:      details,
	}

	if err := s.activities.Create(ctx, &entry); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist activity log")
		return dto.ActivityResponse{}, err
	}

	entry.Course = &course
	return dto.NewActivityResponse(entry), nil
}

func (s *activityService) List(ctx context.Context, actor Actor, req dto.ActivityListRequest) ([]dto.ActivityResponse, error) {
	filter := repository.ActivityLogFilter{
		InstructorID: actor.ID,
	}
	if req.CourseID != nil {
		filter.CourseID = *req.CourseID
	}

	if trimmed := strings.ToUpper(strings.TrimSpace(req.ActivityType)); trimmed != "" {
		filter.ActivityType = models.ActivityType(trimmed)
	}

	// Unparseable date filters are dropped rather than rejected.
	if from, ok := parseDate(req.DateFrom); ok {
		filter.From = &from
	}
	if to, ok := parseDate(req.DateTo); ok {
		end := endOfDay(to)
		filter.To = &end
	}

	entries, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActivityResponse(entry))
	}

	return responses, nil
}

func (s *activityService) Update(ctx context.Context, actor Actor, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	entry, err := s.activities.GetByIDForInstructor(ctx, id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, fmt.Errorf("activity log %w", ErrNotFound)
		}
		return dto.ActivityResponse{}, err
	}

	if payload.ActivityType != nil {
		activityType := models.ActivityType(strings.ToUpper(strings.TrimSpace(*payload.ActivityType)))
		if !activityType.Valid() {
			return dto.ActivityResponse{}, fmt.Errorf("unknown activity type %q: %w", *payload.ActivityType, ErrInvalidInput)
		}
		entry.ActivityType = activityType
	}
	if payload.CourseID != nil {
		course, err := s.ownedCourse(ctx, actor, *payload.CourseID)
		if err != nil {
			return dto.ActivityResponse{}, err
		}
		entry.CourseID = &course.ID
		entry.Course = &course
	}
	if payload.Details != nil {
		details := datatypes.JSONMap{}
		for key, value := range payload.Details {
			details[key] = value
		}
		entry.Details = details
	}

	if err := s.activities.Save(ctx, &entry); err != nil {
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(entry), nil
}

func (s *activityService) Delete(ctx context.Context, actor Actor, id uint) error {
	entry, err := s.activities.GetByIDForInstructor(ctx, id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("activity log %w", ErrNotFound)
		}
		return err
	}

	return s.activities.Delete(ctx, entry.ID)
}

func parseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dto.DateLayout, trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
