package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/course-activity-api/internal/dto"
	"github.com/edupulse/course-activity-api/internal/handler"
	"github.com/edupulse/course-activity-api/internal/service"
)

type mockActivityService struct {
	lastActor service.Actor
	lastList  dto.ActivityListRequest
	err       error
}

func (m *mockActivityService) Record(_ context.Context, actor service.Actor, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	m.lastActor = actor
	return dto.ActivityResponse{ActivityType: payload.ActivityType}, m.err
}

func (m *mockActivityService) List(_ context.Context, actor service.Actor, req dto.ActivityListRequest) ([]dto.ActivityResponse, error) {
	m.lastActor = actor
	m.lastList = req
	if m.err != nil {
		return nil, m.err
	}
	return []dto.ActivityResponse{}, nil
}

func (m *mockActivityService) Update(_ context.Context, actor service.Actor, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	m.lastActor = actor
	return dto.ActivityResponse{ID: id}, m.err
}

func (m *mockActivityService) Delete(_ context.Context, actor service.Actor, id uint) error {
	m.lastActor = actor
	return m.err
}

func activityApp(svc service.ActivityService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/activities", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(5))
		c.Locals("user_role", "INSTRUCTOR")
		return c.Next()
	})
	handler.NewActivityHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestActivityHandlerListPassesCourseFilter(t *testing.T) {
	svc := &mockActivityService{}
	app := activityApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities?course_id=2&activity_type=MDB_REPLY&date_from=2025-03-01", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, uint(5), svc.lastActor.ID)
	require.NotNil(t, svc.lastList.CourseID)
	require.Equal(t, uint(2), *svc.lastList.CourseID)
	require.Equal(t, "MDB_REPLY", svc.lastList.ActivityType)
	require.Equal(t, "2025-03-01", svc.lastList.DateFrom)
}

func TestActivityHandlerListWithoutCourseFilter(t *testing.T) {
	svc := &mockActivityService{}
	app := activityApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/activities", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.lastList.CourseID)
}

func TestActivityHandlerListRejectsBadCourseID(t *testing.T) {
	app := activityApp(&mockActivityService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/activities?course_id=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	payload := decodeEnvelope(t, resp)
	require.False(t, payload.Status)
}
