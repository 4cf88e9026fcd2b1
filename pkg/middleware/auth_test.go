package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"recurring-detector/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestApp(t *testing.T, m *auth.JWTManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/me", AuthMiddleware(m, zaptest.NewLogger(t)), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserID).(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	m := auth.NewJWTManager("secret", time.Hour)
	app := newTestApp(t, m)

	token, err := m.GenerateToken("user-1", "sam", "")
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "user-1", string(body))
}

func TestAuthMiddlewareRejects(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, auth.NewJWTManager("secret", time.Hour))

	for name, header := range map[string]string{
		"missing": "",
		"invalid": "Bearer not-a-token",
	} {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}
}
