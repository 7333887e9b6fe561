package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogMiddlewarePassthrough(t *testing.T) {
	app := fiber.New()
	app.Use(AccessLogMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Put("/gates/h", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad payload")
	})

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{fiber.MethodGet, "/ok", fiber.StatusOK},
		{fiber.MethodPut, "/gates/h", fiber.StatusOK},
		{fiber.MethodPost, "/boom", fiber.StatusBadRequest},
	} {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}
