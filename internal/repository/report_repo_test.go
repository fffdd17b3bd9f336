package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edupulse/course-activity-api/internal/models"
)

func seedReport(t *testing.T, repo ReportRepository, requestedBy uint) models.Report {
	t.Helper()
	report := models.Report{
		RequestedByID: &requestedBy,
		ReportType:    models.ReportActivitySummary,
		Status:        models.ReportStatusPending,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), &report))
	return report
}

func TestReportRepositoryTransitionStatusAdvances(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	user := createInstructor(t, db, "reporter")
	report := seedReport(t, repo, user.ID)

	advanced, err := repo.TransitionStatus(context.Background(), report.ID, models.ReportStatusProcessing, "", "")
	require.NoError(t, err)
	require.True(t, advanced)

	advanced, err = repo.TransitionStatus(context.Background(), report.ID, models.ReportStatusCompleted, "reports/out.xlsx", "")
	require.NoError(t, err)
	require.True(t, advanced)

	fetched, err := repo.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusCompleted, fetched.Status)
	require.Equal(t, "reports/out.xlsx", fetched.FilePath)
}

func TestReportRepositoryTerminalStatusNeverRegresses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	user := createInstructor(t, db, "finisher")
	report := seedReport(t, repo, user.ID)

	advanced, err := repo.TransitionStatus(context.Background(), report.ID, models.ReportStatusFailed, "", "query failed")
	require.NoError(t, err)
	require.True(t, advanced)

	advanced, err = repo.TransitionStatus(context.Background(), report.ID, models.ReportStatusProcessing, "", "")
	require.NoError(t, err)
	require.False(t, advanced)

	fetched, err := repo.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusFailed, fetched.Status)
	require.Equal(t, "query failed", fetched.FailureReason)
}

func TestReportRepositoryListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	mine := createInstructor(t, db, "me")
	other := createInstructor(t, db, "them")
	seedReport(t, repo, mine.ID)
	seedReport(t, repo, other.ID)

	reports, err := repo.ListByUser(context.Background(), mine.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, mine.ID, *reports[0].RequestedByID)
}
