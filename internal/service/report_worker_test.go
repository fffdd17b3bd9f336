package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edupulse/course-activity-api/internal/models"
)

func pendingReport(t *testing.T, reports *memReportRepo, requestedBy uint, instructorID *uint) models.Report {
	t.Helper()
	report := models.Report{
		RequestedByID: &requestedBy,
		ReportType:    models.ReportActivitySummary,
		Status:        models.ReportStatusPending,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		InstructorID:  instructorID,
	}
	require.NoError(t, reports.Create(context.Background(), &report))
	return report
}

func TestReportWorkerCompletesWithArtifact(t *testing.T) {
	reports := newMemReportRepo()
	activities := newMemActivityRepo()
	files := newMemStore()
	recorder := &eventRecorderStub{}

	instructor := models.User{ID: 4, Username: "worker"}
	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: instructor.ID,
		ActivityType: models.ActivityMDBReply,
		LogDate:      time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Instructor:   &instructor,
	}))

	report := pendingReport(t, reports, 1, nil)

	worker := NewReportWorker(reports, activities, files, recorder, testLogger(), 4)
	worker.process(context.Background(), report.ID)

	finished, err := reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusCompleted, finished.Status)
	require.NotEmpty(t, finished.FilePath)
	require.Contains(t, files.files, finished.FilePath)

	require.Len(t, recorder.events, 1)
	require.Equal(t, models.EventReportGenerated, recorder.events[0].eventType)
}

func TestReportWorkerFailsOnEmptyPeriod(t *testing.T) {
	reports := newMemReportRepo()
	worker := NewReportWorker(reports, newMemActivityRepo(), newMemStore(), &eventRecorderStub{}, testLogger(), 4)

	report := pendingReport(t, reports, 1, nil)
	worker.process(context.Background(), report.ID)

	finished, err := reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusFailed, finished.Status)
	require.Equal(t, emptyPeriodReason, finished.FailureReason)
	require.Empty(t, finished.FilePath)
}

func TestReportWorkerSkipsTerminalReports(t *testing.T) {
	reports := newMemReportRepo()
	files := newMemStore()
	worker := NewReportWorker(reports, newMemActivityRepo(), files, &eventRecorderStub{}, testLogger(), 4)

	report := pendingReport(t, reports, 1, nil)
	advanced, err := reports.TransitionStatus(context.Background(), report.ID, models.ReportStatusFailed, "", "earlier failure")
	require.NoError(t, err)
	require.True(t, advanced)

	worker.process(context.Background(), report.ID)

	finished, err := reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusFailed, finished.Status)
	require.Equal(t, "earlier failure", finished.FailureReason)
	require.Empty(t, files.files)
}

func TestReportWorkerAppliesInstructorFilter(t *testing.T) {
	reports := newMemReportRepo()
	activities := newMemActivityRepo()
	files := newMemStore()

	wanted := uint(10)
	require.NoError(t, activities.Create(context.Background(), &models.ActivityLog{
		InstructorID: 99,
		ActivityType: models.ActivityGDBMarking,
		LogDate:      time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC),
	}))

	report := pendingReport(t, reports, 1, &wanted)

	worker := NewReportWorker(reports, activities, files, &eventRecorderStub{}, testLogger(), 4)
	worker.process(context.Background(), report.ID)

	finished, err := reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusFailed, finished.Status)
	require.Equal(t, emptyPeriodReason, finished.FailureReason)
}

func TestReportWorkerEnqueueRespectsCapacity(t *testing.T) {
	worker := NewReportWorker(newMemReportRepo(), newMemActivityRepo(), newMemStore(), &eventRecorderStub{}, testLogger(), 1)

	require.True(t, worker.Enqueue(1))
	require.False(t, worker.Enqueue(2), "expected a full queue to reject new ids")
}
