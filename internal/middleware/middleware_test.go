package middleware

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils/logger"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{}

func (stubProvider) CreateAccount(context.Context, string, string, string) (*domain.SessionUser, error) {
	return nil, domain.ErrEmailAlreadyRegistered
}

func (stubProvider) CreateSession(context.Context, string, string) (string, *domain.SessionUser, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (stubProvider) CurrentUser(_ context.Context, token string) (*domain.SessionUser, error) {
	if token == "valid" {
		return &domain.SessionUser{ID: "user-1", Role: domain.RoleUser}, nil
	}
	return nil, domain.ErrTokenInvalid
}

func (stubProvider) DeleteSession(context.Context, string) error { return nil }

type stubProfiles struct{}

func (stubProfiles) UploadProfileImage(context.Context, string, *multipart.FileHeader) (string, error) {
	return "", nil
}

func (stubProfiles) CreateProfile(context.Context, domain.CreateProfileRequest) error { return nil }

func newTestApp() *fiber.App {
	m := NewMiddleware(stubProvider{}, stubProfiles{}, logger.Discard())
	app := fiber.New()
	app.Use(m.SessionMiddleware())
	app.Get("/open", func(c *fiber.Ctx) error {
		return c.SendString(GetSession(c).State().String())
	})
	app.Get("/closed", m.AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func TestSessionMiddleware_Anonymous(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = newTestApp().Test(httptest.NewRequest("GET", "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/closed", nil)
	req.Header.Set("Authorization", "Bearer valid")

	resp, err := newTestApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/closed", nil)
	req.Header.Set("Authorization", "Bearer forged")

	resp, err := newTestApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
