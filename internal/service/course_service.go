package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

// CourseService covers the admin course CRUD and instructor course listing.
type CourseService interface {
	Create(ctx context.Context, actor Actor, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	ListForInstructor(ctx context.Context, actor Actor) ([]dto.CourseResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type courseService struct {
	courses   repository.CourseRepository
	users     repository.UserRepository
	events    EventRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(
	courses repository.CourseRepository,
	users repository.UserRepository,
	events EventRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courses:   courses,
		users:     users,
		events:    events,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

// resolveInstructor fetches the user and confirms the instructor role.
func (s *courseService) resolveInstructor(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("instructor %w", ErrNotFound)
		}
		return models.User{}, err
	}
	if user.Profile.Role != models.RoleInstructor {
		return models.User{}, fmt.Errorf("instructor %w", ErrNotFound)
	}
	return user, nil
}

func (s *courseService) Create(ctx context.Context, actor Actor, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	code := strings.TrimSpace(payload.CourseCode)
	exists, err := s.courses.ExistsByCode(ctx, code)
	if err != nil {
		return dto.CourseResponse{}, err
	}
	if exists {
		return dto.CourseResponse{}, fmt.Errorf("course code %w", ErrConflict)
	}

	instructor, err := s.resolveInstructor(ctx, payload.InstructorID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Code:         code,
		Title:        strings.TrimSpace(payload.CourseTitle),
		Description:  payload.Description,
		InstructorID: &instructor.ID,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	if err := s.events.Record(ctx, &actor.ID, models.EventCourseCreated, map[string]interface{}{
		"course_code":  course.Code,
		"course_title": course.Title,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record course creation event")
	}

	course.Instructor = &instructor
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, fmt.Errorf("course %w", ErrNotFound)
		}
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}

	return responses, nil
}

func (s *courseService) ListForInstructor(ctx context.Context, actor Actor) ([]dto.CourseResponse, error) {
	courses, err := s.courses.ListByInstructor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}

	return responses, nil
}

func (s *courseService) Update(ctx context.Context, actor Actor, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, fmt.Errorf("course %w", ErrNotFound)
		}
		return dto.CourseResponse{}, err
	}

	if code := strings.TrimSpace(payload.CourseCode); code != "" && code != course.Code {
		exists, err := s.courses.ExistsByCode(ctx, code)
		if err != nil {
			return dto.CourseResponse{}, err
		}
		if exists {
			return dto.CourseResponse{}, fmt.Errorf("course code %w", ErrConflict)
		}
		course.Code = code
	}
	if title := strings.TrimSpace(payload.CourseTitle); title != "" {
		course.Title = title
	}
	if payload.Description != nil {
		course.Description = *payload.Description
	}
	if payload.InstructorID != nil {
		instructor, err := s.resolveInstructor(ctx, *payload.InstructorID)
		if err != nil {
			return dto.CourseResponse{}, err
		}
		course.InstructorID = &instructor.ID
		course.Instructor = &instructor
	}

	if err := s.courses.Save(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	if err := s.events.Record(ctx, &actor.ID, models.EventCourseUpdated, map[string]interface{}{
		"course_code": course.Code,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record course update event")
	}

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, actor Actor, id uint) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("course %w", ErrNotFound)
		}
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.events.Record(ctx, &actor.ID, models.EventCourseDeleted, map[string]interface{}{
		"course_code": course.Code,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record course deletion event")
	}

	return nil
}
