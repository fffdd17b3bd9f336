package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload APIResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestSendSuccessEnvelope(t *testing.T) {
	status, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "all good", fiber.Map{"value": 1})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.True(t, payload.Status)
	require.Equal(t, fiber.StatusOK, payload.StatusCode)
	require.Equal(t, "all good", payload.Message)
	require.NotNil(t, payload.Data)
}

func TestSendSuccessWithStatus(t *testing.T) {
	status, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, fiber.StatusAccepted, "queued", nil)
	})

	require.Equal(t, fiber.StatusAccepted, status)
	require.True(t, payload.Status)
	require.Equal(t, fiber.StatusAccepted, payload.StatusCode)
	require.Nil(t, payload.Data)
}

func TestSendErrorEnvelope(t *testing.T) {
	status, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "missing")
	})

	require.Equal(t, fiber.StatusNotFound, status)
	require.False(t, payload.Status)
	require.Equal(t, fiber.StatusNotFound, payload.StatusCode)
	require.Equal(t, "missing", payload.Message)
}
