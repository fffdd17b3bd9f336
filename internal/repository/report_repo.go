package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/models"
)

// ReportRepository persists report requests and their lifecycle state.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (models.Report, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Report, error)
	TransitionStatus(ctx context.Context, id uint, status models.ReportStatus, filePath, failureReason string) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Preload("RequestedBy").First(&report, id).Error
	return report, err
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Where("requested_by_id = ?", userID).
		Order("generated_at DESC").
		Find(&reports).Error
	return reports, err
}

// TransitionStatus advances a report's lifecycle. The guard clause refuses to
// touch rows already in a terminal state, so COMPLETED and FAILED never
// regress even under concurrent workers. Returns whether a row was updated.
func (r *reportRepository) TransitionStatus(ctx context.Context, id uint, status models.ReportStatus, filePath, failureReason string) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if filePath != "" {
		updates["file_path"] = filePath
	}
	if failureReason != "" {
		updates["failure_reason"] = failureReason
	}

	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ? AND status NOT IN ?", id, []models.ReportStatus{models.ReportStatusCompleted, models.ReportStatusFailed}).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Report{}, id).Error
}
