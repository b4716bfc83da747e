package middleware

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/pkg/session"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const sessionKey = "session"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		SessionMiddleware() fiber.Handler
		AuthMiddleware() fiber.Handler
	}

	middleware struct {
		provider session.Provider
		profiles session.ProfileStore
		log      *logger.Logger
	}
)

func NewMiddleware(provider session.Provider, profiles session.ProfileStore, log *logger.Logger) Middleware {
	return &middleware{
		provider: provider,
		profiles: profiles,
		log:      log,
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

// SessionMiddleware builds one session.Context per request and disposes it
// when the handler chain returns.
func (m *middleware) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc := session.New(m.provider, m.profiles, m.log)
		sc.Init(c.UserContext(), bearerToken(c))
		defer sc.Dispose()

		c.Locals(sessionKey, sc)
		if user := sc.User(); user != nil {
			c.Locals("user_id", user.ID)
			c.Locals("role", user.Role)
		}

		return c.Next()
	}
}

func (m *middleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc := GetSession(c)
		if sc == nil || sc.State() != session.StateAuthenticated {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorized, domain.ErrNotAuthenticated)
		}
		return c.Next()
	}
}

// GetSession returns the request's session, or nil outside SessionMiddleware.
func GetSession(c *fiber.Ctx) *session.Context {
	sc, _ := c.Locals(sessionKey).(*session.Context)
	return sc
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
