package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/models"
)

// DashboardRepository supplies the read-only queries behind the dashboard and
// analytics endpoints.
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountActiveInstructors(ctx context.Context) (int64, error)
	CountActiveInstructorsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountCompletedReports(ctx context.Context) (int64, error)
	CountCompletedReportsBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountActivitiesByInstructor(ctx context.Context, instructorID uint) (int64, error)
	CountCoursesByInstructor(ctx context.Context, instructorID uint) (int64, error)
	ListActivities(ctx context.Context, instructorID *uint) ([]models.ActivityLog, error)
	ListActivitiesSince(ctx context.Context, since time.Time, instructorID *uint) ([]models.ActivityLog, error)
	RecentActivities(ctx context.Context, instructorID uint, limit int) ([]models.ActivityLog, error)
	ListActiveInstructors(ctx context.Context) ([]models.User, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository constructs the dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveInstructors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.is_active = ?", true).
		Where("profiles.role = ?", models.RoleInstructor).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveInstructorsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.is_active = ?", true).
		Where("profiles.role = ?", models.RoleInstructor).
		Where("users.created_at >= ? AND users.created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountCompletedReports(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("status = ?", models.ReportStatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountCompletedReportsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("status = ?", models.ReportStatusCompleted).
		Where("generated_at >= ? AND generated_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActivitiesByInstructor(ctx context.Context, instructorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Where("instructor_id = ?", instructorID).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountCoursesByInstructor(ctx context.Context, instructorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("instructor_id = ?", instructorID).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) ListActivities(ctx context.Context, instructorID *uint) ([]models.ActivityLog, error) {
	query := r.db.WithContext(ctx).Preload("Course")
	if instructorID != nil {
		query = query.Where("instructor_id = ?", *instructorID)
	}

	var entries []models.ActivityLog
	err := query.Find(&entries).Error
	return entries, err
}

func (r *dashboardRepository) ListActivitiesSince(ctx context.Context, since time.Time, instructorID *uint) ([]models.ActivityLog, error) {
	query := r.db.WithContext(ctx).Where("log_date >= ?", since)
	if instructorID != nil {
		query = query.Where("instructor_id = ?", *instructorID)
	}

	var entries []models.ActivityLog
	err := query.Find(&entries).Error
	return entries, err
}

func (r *dashboardRepository) RecentActivities(ctx context.Context, instructorID uint, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 5
	}

	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Course").
		Where("instructor_id = ?", instructorID).
		Order("log_date DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *dashboardRepository) ListActiveInstructors(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("users.is_active = ?", true).
		Where("profiles.role = ?", models.RoleInstructor).
		Find(&users).Error
	return users, err
}
