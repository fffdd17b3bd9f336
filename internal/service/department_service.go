package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/repository"
)

// defaultDepartments are created on startup when seeding is enabled.
var defaultDepartments = []string{
	"Computer Science",
	"Software Engineering",
	"Information Technology",
	"Data Science",
	"Cybersecurity",
	"Mathematics",
	"Biology",
	"Engineering",
	"Administration",
	"Physics",
}

// DepartmentService lists departments and seeds the default set.
type DepartmentService interface {
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	SeedDefaults(ctx context.Context) error
}

type departmentService struct {
	departments repository.DepartmentRepository
	logger      zerolog.Logger
}

// NewDepartmentService constructs the department service.
func NewDepartmentService(departments repository.DepartmentRepository, logger zerolog.Logger) DepartmentService {
	return &departmentService{
		departments: departments,
		logger:      logger.With().Str("component", "department_service").Logger(),
	}
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, dto.DepartmentResponse{
			ID:   department.ID,
			Name: department.Name,
		})
	}

	return responses, nil
}

// SeedDefaults is idempotent; existing departments are left untouched.
func (s *departmentService) SeedDefaults(ctx context.Context) error {
	created := 0
	for _, name := range defaultDepartments {
		_, fresh, err := s.departments.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if fresh {
			created++
		}
	}

	if created > 0 {
		s.logger.Info().Int("created", created).Msg("seeded default departments")
	}
	return nil
}
