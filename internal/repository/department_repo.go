package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edupulse/course-activity-api/internal/models"
)

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	GetOrCreate(ctx context.Context, name string) (models.Department, bool, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository constructs the department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).First(&department, id).Error
	return department, err
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

// GetOrCreate returns the department with the given name, creating it when
// absent. The second return value reports whether a row was created.
func (r *departmentRepository) GetOrCreate(ctx context.Context, name string) (models.Department, bool, error) {
	var department models.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&department).Error
	if err == nil {
		return department, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Department{}, false, err
	}

	department = models.Department{Name: name}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&department).Error
	if err != nil {
		return models.Department{}, false, err
	}
	return department, true, nil
}
