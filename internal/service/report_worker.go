package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/observability"
	"github.com/edupulse/course-activity-api/internal/repository"
	"github.com/edupulse/course-activity-api/pkg/filestore"
	"github.com/edupulse/course-activity-api/pkg/spreadsheet"
)

const emptyPeriodReason = "no activity data found for the selected period"

// ReportWorker consumes queued report ids and generates XLSX artifacts.
// Delivery is at most once: an id is processed by a single consumer and a
// failed run is not retried; the failure reason lands on the report row.
type ReportWorker struct {
	reports    repository.ReportRepository
	activities repository.ActivityLogRepository
	files      filestore.Store
	events     EventRecorder
	logger     zerolog.Logger

	queue chan uint
	once  sync.Once
	wg    sync.WaitGroup
}

// NewReportWorker constructs the worker with a bounded queue.
func NewReportWorker(
	reports repository.ReportRepository,
	activities repository.ActivityLogRepository,
	files filestore.Store,
	events EventRecorder,
	logger zerolog.Logger,
	queueSize int,
) *ReportWorker {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &ReportWorker{
		reports:    reports,
		activities: activities,
		files:      files,
		events:     events,
		logger:     logger.With().Str("component", "report_worker").Logger(),
		queue:      make(chan uint, queueSize),
	}
}

// Enqueue schedules a report for generation without blocking the submitter.
func (w *ReportWorker) Enqueue(id uint) bool {
	select {
	case w.queue <- id:
		return true
	default:
		return false
	}
}

// Start launches the single consumer goroutine. It drains until the context
// is cancelled or Close is called.
func (w *ReportWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case id, ok := <-w.queue:
				if !ok {
					return
				}
				w.process(ctx, id)
			}
		}
	}()
}

// Close stops accepting work and waits for the in-flight report to finish.
func (w *ReportWorker) Close() {
	w.once.Do(func() {
		close(w.queue)
	})
	w.wg.Wait()
}

func (w *ReportWorker) process(ctx context.Context, id uint) {
	report, err := w.reports.GetByID(ctx, id)
	if err != nil {
		w.logger.Error().Err(err).Uint("report_id", id).Msg("failed to load queued report")
		return
	}

	advanced, err := w.reports.TransitionStatus(ctx, id, models.ReportStatusProcessing, "", "")
	if err != nil {
		w.logger.Error().Err(err).Uint("report_id", id).Msg("failed to mark report processing")
		return
	}
	if !advanced {
		// Already terminal, nothing left to do.
		w.logger.Warn().Uint("report_id", id).Msg("queued report already in a terminal state")
		return
	}

	logs, err := w.activities.ListBetween(ctx, report.StartDate, endOfDay(report.EndDate), report.InstructorID)
	if err != nil {
		w.fail(ctx, id, fmt.Sprintf("activity query failed: %v", err))
		return
	}
	if len(logs) == 0 {
		w.fail(ctx, id, emptyPeriodReason)
		return
	}

	data, err := spreadsheet.BuildActivityWorkbook(sheetNameFor(report.ReportType), flattenLogs(logs))
	if err != nil {
		w.fail(ctx, id, fmt.Sprintf("workbook serialization failed: %v", err))
		return
	}

	name := fmt.Sprintf("report_%d_%s_%s.xlsx", report.ID, strings.ToLower(string(report.ReportType)), uuid.NewString())
	path, err := w.files.Save(name, data)
	if err != nil {
		w.fail(ctx, id, fmt.Sprintf("artifact persistence failed: %v", err))
		return
	}

	advanced, err = w.reports.TransitionStatus(ctx, id, models.ReportStatusCompleted, path, "")
	if err != nil || !advanced {
		if removeErr := w.files.Remove(path); removeErr != nil {
			w.logger.Warn().Err(removeErr).Uint("report_id", id).Msg("failed to remove orphaned artifact")
		}
		if err != nil {
			w.logger.Error().Err(err).Uint("report_id", id).Msg("failed to mark report completed")
		}
		return
	}

	observability.ReportGenerations().WithLabelValues("completed").Inc()

	if err := w.events.Record(ctx, report.RequestedByID, models.EventReportGenerated, map[string]interface{}{
		"report_id":   report.ID,
		"report_type": string(report.ReportType),
	}); err != nil {
		w.logger.Warn().Err(err).Uint("report_id", id).Msg("failed to record report generation event")
	}

	w.logger.Info().Uint("report_id", id).Int("rows", len(logs)).Msg("report generated")
}

func (w *ReportWorker) fail(ctx context.Context, id uint, reason string) {
	observability.ReportGenerations().WithLabelValues("failed").Inc()

	if _, err := w.reports.TransitionStatus(ctx, id, models.ReportStatusFailed, "", reason); err != nil {
		w.logger.Error().Err(err).Uint("report_id", id).Msg("failed to mark report failed")
		return
	}

	w.logger.Warn().Uint("report_id", id).Str("reason", reason).Msg("report generation failed")
}

func flattenLogs(logs []models.ActivityLog) []spreadsheet.ActivityRow {
	rows := make([]spreadsheet.ActivityRow, 0, len(logs))
	for _, entry := range logs {
		row := spreadsheet.ActivityRow{
			ActivityType: string(entry.ActivityType),
			LogDate:      entry.LogDate,
		}
		if entry.Instructor != nil {
			row.Instructor = entry.Instructor.Username
		}
		if entry.Course != nil {
			row.CourseCode = entry.Course.Code
		}
		if len(entry.Details) > 0 {
			if encoded, err := json.Marshal(entry.Details); err == nil {
				row.Details = string(encoded)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func sheetNameFor(reportType models.ReportType) string {
	switch reportType {
	case models.ReportActivitySummary:
		return "Activity Summary"
	case models.ReportPerformanceAnalysis:
		return "Performance Analysis"
	case models.ReportSystemUsage:
		return "System Usage"
	default:
		return "Report"
	}
}
