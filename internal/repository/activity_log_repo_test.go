package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/models"
)

func seedActivity(t *testing.T, db *gorm.DB, instructorID uint, courseID *uint, activityType models.ActivityType, logDate time.Time) models.ActivityLog {
	t.Helper()
	entry := models.ActivityLog{
		InstructorID: instructorID,
		CourseID:     courseID,
		ActivityType: activityType,
		LogDate:      logDate,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func TestActivityLogRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)

	instructor := createInstructor(t, db, "logger1")
	course := models.Course{Code: "CS401", Title: "Networks", InstructorID: &instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	base := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	seedActivity(t, db, instructor.ID, &course.ID, models.ActivityMDBReply, base)
	seedActivity(t, db, instructor.ID, &course.ID, models.ActivityGDBMarking, base.AddDate(0, 0, 2))

	byType, err := repo.List(context.Background(), ActivityLogFilter{
		InstructorID: instructor.ID,
		ActivityType: models.ActivityMDBReply,
	})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, models.ActivityMDBReply, byType[0].ActivityType)

	from := base.AddDate(0, 0, 1)
	byDate, err := repo.List(context.Background(), ActivityLogFilter{
		InstructorID: instructor.ID,
		From:         &from,
	})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	require.Equal(t, models.ActivityGDBMarking, byDate[0].ActivityType)
}

func TestActivityLogRepositoryListScopesToInstructor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)

	owner := createInstructor(t, db, "owner")
	stranger := createInstructor(t, db, "stranger")

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	seedActivity(t, db, owner.ID, nil, models.ActivityTicketResponse, now)
	entry := seedActivity(t, db, stranger.ID, nil, models.ActivityTicketResponse, now)

	entries, err := repo.List(context.Background(), ActivityLogFilter{InstructorID: owner.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, owner.ID, entries[0].InstructorID)

	_, err = repo.GetByIDForInstructor(context.Background(), entry.ID, owner.ID)
	require.Error(t, err)
}

func TestActivityLogRepositoryListBetweenInclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)

	instructor := createInstructor(t, db, "ranged")

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)

	seedActivity(t, db, instructor.ID, nil, models.ActivitySessionTracking, start)
	seedActivity(t, db, instructor.ID, nil, models.ActivityEmailResponse, end)
	seedActivity(t, db, instructor.ID, nil, models.ActivityMDBReply, end.Add(time.Hour))

	entries, err := repo.ListBetween(context.Background(), start, end, &instructor.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, models.ActivitySessionTracking, entries[0].ActivityType)
}
