package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/service"
	"github.com/edupulse/course-activity-api/internal/utils"
)

// DashboardHandler serves role-specific statistics and analytics.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard and analytics routes with their role guards.
// The router group must already require authentication.
func (h *DashboardHandler) Register(router fiber.Router, adminOnly, instructorOnly fiber.Handler) {
	router.Get("/dashboard/stats", adminOnly, h.adminStats)
	router.Get("/dashboard/instructor", instructorOnly, h.instructorStats)
	router.Get("/analytics/admin", adminOnly, h.adminAnalytics)
	router.Get("/performance/instructor", instructorOnly, h.instructorPerformance)
}

func (h *DashboardHandler) adminStats(c *fiber.Ctx) error {
	stats, err := h.service.AdminStats(c.Context())
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to compute dashboard statistics")
	}

	return utils.SendSuccess(c, "dashboard statistics retrieved", stats)
}

func (h *DashboardHandler) adminAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.AdminAnalytics(c.Context())
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to compute analytics")
	}

	return utils.SendSuccess(c, "analytics retrieved", analytics)
}

func (h *DashboardHandler) instructorStats(c *fiber.Ctx) error {
	stats, err := h.service.InstructorStats(c.Context(), actorFromContext(c))
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to compute dashboard statistics")
	}

	return utils.SendSuccess(c, "dashboard statistics retrieved", stats)
}

func (h *DashboardHandler) instructorPerformance(c *fiber.Ctx) error {
	performance, err := h.service.InstructorPerformance(c.Context(), actorFromContext(c))
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to compute performance analytics")
	}

	return utils.SendSuccess(c, "performance analytics retrieved", performance)
}
