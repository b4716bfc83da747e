package routes

import (
	"agri-assistant/internal/api/handlers"
	"agri-assistant/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	ProfileHandler   handlers.ProfileHandler
	ScanHandler      handlers.ScanHandler
	AdviceHandler    handlers.AdviceHandler
	ForumHandler     handlers.ForumHandler
	FarmHandler      handlers.FarmHandler
	DashboardHandler handlers.DashboardHandler
	ContactHandler   handlers.ContactHandler
	Middleware       middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.App.Use(c.Middleware.SessionMiddleware())
	c.User()
	c.Profile()
	c.Scans()
	c.Advice()
	c.Forum()
	c.Farm()
	c.Dashboard()
	c.Contact()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/logout", c.UserHandler.Logout)
		user.Get("/me", c.Middleware.AuthMiddleware(), c.UserHandler.Me)
	}
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware())
	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Put("", c.ProfileHandler.UpdateProfile)
	profile.Post("/image", c.ProfileHandler.UploadProfileImage)
	profile.Get("/stats", c.ProfileHandler.GetStats)
}

func (c *Config) Scans() {
	scans := c.App.Group("/api/v1/scans", c.Middleware.AuthMiddleware())
	scans.Post("", c.ScanHandler.ScanCrop)
	scans.Get("", c.ScanHandler.GetScanHistory)
	scans.Get("/:id", c.ScanHandler.GetScanDetails)
}

func (c *Config) Advice() {
	advice := c.App.Group("/api/v1/advice", c.Middleware.AuthMiddleware())
	advice.Get("", c.AdviceHandler.GetConversation)
	advice.Post("", c.AdviceHandler.AskQuestion)
	advice.Delete("", c.AdviceHandler.ClearConversation)
}

func (c *Config) Forum() {
	forum := c.App.Group("/api/v1/forum")
	forum.Get("/posts", c.ForumHandler.GetPosts)
	forum.Post("/posts", c.Middleware.AuthMiddleware(), c.ForumHandler.CreatePost)
	forum.Post("/posts/:id/like", c.Middleware.AuthMiddleware(), c.ForumHandler.LikePost)
}

func (c *Config) Farm() {
	api := c.App.Group("/api/v1")
	api.Get("/weather", c.FarmHandler.GetWeather)
	api.Get("/market/prices", c.FarmHandler.GetMarketPrices)

	calendar := api.Group("/calendar")
	calendar.Get("", c.FarmHandler.GetCalendar)
	calendar.Get("/day", c.FarmHandler.GetCalendarDay)
	calendar.Get("/:month", c.FarmHandler.GetCalendarMonth)
}

func (c *Config) Dashboard() {
	c.App.Get("/api/v1/dashboard", c.Middleware.AuthMiddleware(), c.DashboardHandler.GetDashboard)
}

func (c *Config) Contact() {
	c.App.Post("/api/v1/contact", c.ContactHandler.SendMessage)
}
