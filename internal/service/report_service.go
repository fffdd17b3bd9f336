package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
	"github.com/edupulse/course-activity-api/pkg/filestore"
)

// ReportEnqueuer hands a report id to the generation worker. Enqueue returns
// false when the queue cannot accept the id.
type ReportEnqueuer interface {
	Enqueue(id uint) bool
}

// ReportDownload is a completed artifact ready for streaming to the caller.
type ReportDownload struct {
	Reader   io.ReadCloser
	FileName string
}

// ReportService covers report submission, listing, download and deletion.
// Generation itself runs on the worker; submitters poll the status field.
type ReportService interface {
	Submit(ctx context.Context, actor Actor, payload dto.ReportCreateRequest) (dto.ReportResponse, error)
	List(ctx context.Context, actor Actor) ([]dto.ReportResponse, error)
	Download(ctx context.Context, actor Actor, id uint) (ReportDownload, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type reportService struct {
	reports   repository.ReportRepository
	files     filestore.Store
	queue     ReportEnqueuer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(
	reports repository.ReportRepository,
	files filestore.Store,
	queue ReportEnqueuer,
	validate *validator.Validate,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reports:   reports,
		files:     files,
		queue:     queue,
		validator: validate,
		logger:    logger.With().Str("component", "report_service").Logger(),
	}
}

// Submit records the request in PENDING and enqueues generation. Submitting
// the same logical report twice deliberately creates two independent rows;
// there is no idempotency key.
func (s *reportService) Submit(ctx context.Context, actor Actor, payload dto.ReportCreateRequest) (dto.ReportResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReportResponse{}, err
	}

	reportType := models.ReportType(strings.ToUpper(strings.TrimSpace(payload.ReportType)))
	if !reportType.Valid() {
		return dto.ReportResponse{}, fmt.Errorf("unknown report type %q: %w", payload.ReportType, ErrInvalidInput)
	}

	startDate, err := time.Parse(dto.DateLayout, payload.StartDate)
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("start date must use YYYY-MM-DD: %w", ErrInvalidInput)
	}
	endDate, err := time.Parse(dto.DateLayout, payload.EndDate)
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("end date must use YYYY-MM-DD: %w", ErrInvalidInput)
	}
	if startDate.After(endDate) {
		return dto.ReportResponse{}, fmt.Errorf("start date is after end date: %w", ErrInvalidInput)
	}

	requesterID := actor.ID
	report := models.Report{
		RequestedByID: &requesterID,
		ReportType:    reportType,
		Status:        models.ReportStatusPending,
		StartDate:     startDate,
		EndDate:       endDate,
		InstructorID:  payload.InstructorID,
	}

	if err := s.reports.Create(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}

	if !s.queue.Enqueue(report.ID) {
		// The row stays PENDING; the submitter sees it via status polling.
		s.logger.Warn().Uint("report_id", report.ID).Msg("report queue full, generation not scheduled")
	}

	return dto.NewReportResponse(report), nil
}

func (s *reportService) List(ctx context.Context, actor Actor) ([]dto.ReportResponse, error) {
	reports, err := s.reports.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, dto.NewReportResponse(report))
	}

	return responses, nil
}

// canAccess gates download and deletion to the owner or an administrator.
func canAccess(actor Actor, report models.Report) bool {
	if actor.IsAdmin() {
		return true
	}
	return report.RequestedByID != nil && *report.RequestedByID == actor.ID
}

func (s *reportService) Download(ctx context.Context, actor Actor, id uint) (ReportDownload, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportDownload{}, fmt.Errorf("report %w", ErrNotFound)
		}
		return ReportDownload{}, err
	}

	if !canAccess(actor, report) {
		return ReportDownload{}, fmt.Errorf("report belongs to another user: %w", ErrPermissionDenied)
	}

	switch {
	case report.Status == models.ReportStatusCompleted && report.FilePath != "":
		reader, err := s.files.Open(report.FilePath)
		if err != nil {
			return ReportDownload{}, fmt.Errorf("report artifact %w", ErrNotFound)
		}
		return ReportDownload{Reader: reader, FileName: filepath.Base(report.FilePath)}, nil
	case report.Status == models.ReportStatusFailed:
		return ReportDownload{}, ErrReportFailed
	default:
		return ReportDownload{}, ErrReportProcessing
	}
}

// Delete removes the artifact first and then the record, so a subsequent
// download can never find the file again.
func (s *reportService) Delete(ctx context.Context, actor Actor, id uint) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("report %w", ErrNotFound)
		}
		return err
	}

	if !canAccess(actor, report) {
		return fmt.Errorf("report belongs to another user: %w", ErrPermissionDenied)
	}

	if report.FilePath != "" {
		if err := s.files.Remove(report.FilePath); err != nil {
			s.logger.Warn().Err(err).Uint("report_id", id).Msg("failed to remove report artifact")
		}
	}

	return s.reports.Delete(ctx, id)
}
