package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
)

// UserService covers the admin user management operations and the CSV export.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	ExportCSV(ctx context.Context) ([]byte, error)
}

type userService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	events      EventRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(
	users repository.UserRepository,
	departments repository.DepartmentRepository,
	events EventRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:       users,
		departments: departments,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	return responses, nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("user %w", ErrNotFound)
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, actor Actor, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, fmt.Errorf("user %w", ErrNotFound)
		}
		return dto.UserResponse{}, err
	}

	if payload.FirstName != nil {
		user.FirstName = strings.TrimSpace(*payload.FirstName)
	}
	if payload.LastName != nil {
		user.LastName = strings.TrimSpace(*payload.LastName)
	}
	if payload.Email != nil {
		user.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if payload.Role != nil {
		role := models.Role(strings.ToUpper(strings.TrimSpace(*payload.Role)))
		if !role.Valid() {
			return dto.UserResponse{}, fmt.Errorf("unknown role %q: %w", *payload.Role, ErrInvalidInput)
		}
		user.Profile.Role = role
	}
	if payload.DepartmentID != nil {
		department, err := s.departments.GetByID(ctx, *payload.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, fmt.Errorf("department %w", ErrNotFound)
			}
			return dto.UserResponse{}, err
		}
		user.Profile.DepartmentID = &department.ID
	}

	if err := s.users.Save(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.events.Record(ctx, &actor.ID, models.EventUserUpdated, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record user update event")
	}

	updated, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(updated), nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, id uint) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.events.Record(ctx, &actor.ID, models.EventUserDeleted, map[string]interface{}{
		"username": user.Username,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record user deletion event")
	}

	return nil
}

var userExportHeader = []string{"ID", "Username", "First Name", "Last Name", "Email", "Role", "Department", "Status", "Last Login"}

// ExportCSV renders every user account into a CSV document with one header row.
func (s *userService) ExportCSV(ctx context.Context) ([]byte, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(userExportHeader); err != nil {
		return nil, err
	}

	for _, user := range users {
		department := ""
		if user.Profile.Department != nil {
			department = user.Profile.Department.Name
		}

		status := "Inactive"
		if user.IsActive {
			status = "Active"
		}

		lastLogin := ""
		if user.LastLogin != nil {
			lastLogin = user.LastLogin.UTC().Format(time.RFC3339)
		}

		record := []string{
			strconv.FormatUint(uint64(user.ID), 10),
			user.Username,
			user.FirstName,
			user.LastName,
			user.Email,
			string(user.Profile.Role),
			department,
			status,
			lastLogin,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
