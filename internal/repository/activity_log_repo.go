package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/models"
)

// ActivityLogFilter narrows activity log queries. Zero values are ignored.
type ActivityLogFilter struct {
	InstructorID uint
	ActivityType models.ActivityType
	CourseID     uint
	From         *time.Time
	To           *time.Time
	Limit        int
}

// ActivityLogRepository persists instructor activity entries.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	GetByIDForInstructor(ctx context.Context, id, instructorID uint) (models.ActivityLog, error)
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, error)
	ListBetween(ctx context.Context, from, to time.Time, instructorID *uint) ([]models.ActivityLog, error)
	Save(ctx context.Context, entry *models.ActivityLog) error
	Delete(ctx context.Context, id uint) error
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) GetByIDForInstructor(ctx context.Context, id, instructorID uint) (models.ActivityLog, error) {
	var entry models.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("id = ? AND instructor_id = ?", id, instructorID).
		First(&entry).Error
	return entry, err
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{}).
		Preload("Instructor").
		Preload("Course")

	if filter.InstructorID > 0 {
		query = query.Where("instructor_id = ?", filter.InstructorID)
	}
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}
	if filter.CourseID > 0 {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.From != nil {
		query = query.Where("log_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("log_date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []models.ActivityLog
	err := query.Order("log_date DESC").Find(&entries).Error
	return entries, err
}

// ListBetween returns entries whose log date falls within [from, to]
// inclusive, optionally narrowed to one instructor. Used by the report
// pipeline, so associations needed for the artifact rows are preloaded.
func (r *activityLogRepository) ListBetween(ctx context.Context, from, to time.Time, instructorID *uint) ([]models.ActivityLog, error) {
	query := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Course").
		Where("log_date >= ? AND log_date <= ?", from, to)

	if instructorID != nil {
		query = query.Where("instructor_id = ?", *instructorID)
	}

	var entries []models.ActivityLog
	err := query.Order("log_date ASC").Find(&entries).Error
	return entries, err
}

func (r *activityLogRepository) Save(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Omit("Instructor", "Course").Save(entry).Error
}

func (r *activityLogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ActivityLog{}, id).Error
}
