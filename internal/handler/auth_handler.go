package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/service"
	"github.com/edupulse/course-activity-api/internal/utils"
)

// AuthHandler wires registration, login, logout and profile endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic attaches the routes reachable without a token.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterAdminCreate attaches user creation for admin callers. It reuses the
// registration flow; only the route guard differs.
func (h *AuthHandler) RegisterAdminCreate(router fiber.Router) {
	router.Post("", h.register)
}

// RegisterProtected attaches the routes behind JWT authentication.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/me", h.me)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var actor *service.Actor
	if id := userIDFromContext(c); id != 0 {
		resolved := actorFromContext(c)
		actor = &resolved
	}

	user, err := h.service.Register(c.Context(), actor, payload)
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to register user")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user registered", user)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to log in")
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	token := rawTokenFromContext(c)
	if token == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
	}

	if err := h.service.Logout(c.Context(), token); err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to log out")
	}

	return utils.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, err := h.service.Me(c.Context(), userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, requestLogger(h.logger, c), err, "failed to fetch profile")
	}

	return utils.SendSuccess(c, "profile retrieved", user)
}
