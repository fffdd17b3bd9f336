package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/models"
)

// SystemEventRepository appends to and reads the audit trail. There is
// deliberately no update or delete method.
type SystemEventRepository interface {
	Create(ctx context.Context, event *models.SystemEventLog) error
	Recent(ctx context.Context, limit int) ([]models.SystemEventLog, error)
}

type systemEventRepository struct {
	db *gorm.DB
}

// NewSystemEventRepository constructs the system event repository.
func NewSystemEventRepository(db *gorm.DB) SystemEventRepository {
	return &systemEventRepository{db: db}
}

func (r *systemEventRepository) Create(ctx context.Context, event *models.SystemEventLog) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *systemEventRepository) Recent(ctx context.Context, limit int) ([]models.SystemEventLog, error) {
	if limit <= 0 {
		limit = 20
	}

	var events []models.SystemEventLog
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
