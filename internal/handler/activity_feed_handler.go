package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/service"
	"github.com/edupulse/course-activity-api/internal/utils"
)

// ActivityFeedHandler serves the admin audit trail feed.
type ActivityFeedHandler struct {
	service service.EventService
	logger  zerolog.Logger
}

// NewActivityFeedHandler constructs the handler.
func NewActivityFeedHandler(service service.EventService, logger zerolog.Logger) *ActivityFeedHandler {
	return &ActivityFeedHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_feed_handler").Logger(),
	}
}

// Register attaches the feed route to the router group.
func (h *ActivityFeedHandler) Register(router fiber.Router) {
	router.Get("/activity-feed", h.feed)
}

func (h *ActivityFeedHandler) feed(c *fiber.Ctx) error {
	events, err := h.service.Feed(c.Context())
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to fetch activity feed")
	}

	return utils.SendSuccess(c, "activity feed retrieved", events)
}
