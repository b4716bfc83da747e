package config

import (
	"agri-assistant/internal/api/handlers"
	"agri-assistant/internal/api/routes"
	"agri-assistant/internal/middleware"
	"agri-assistant/internal/utils"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/internal/utils/mailing"
	"agri-assistant/internal/utils/storage"
	"agri-assistant/pkg/advice"
	"agri-assistant/pkg/advisory"
	"agri-assistant/pkg/calendar"
	"agri-assistant/pkg/classifier"
	"agri-assistant/pkg/contact"
	"agri-assistant/pkg/dashboard"
	"agri-assistant/pkg/forum"
	"agri-assistant/pkg/jwt"
	"agri-assistant/pkg/market"
	"agri-assistant/pkg/profile"
	"agri-assistant/pkg/scan"
	"agri-assistant/pkg/user"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, log *logger.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Blantyre",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3()
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	remote := advisory.NewClient(advisory.LoadConfig(), log)
	timeout := time.Duration(utils.GetConfigInt("REMOTE_TIMEOUT_SECONDS", 30)) * time.Second
	model := classifier.NewModelLoader(utils.GetConfig("CLASSIFIER_URL"), timeout)

	// Repository
	userRepository := user.NewUserRepository(db)
	profileRepository := profile.NewProfileRepository(db)
	scanRepository := scan.NewScanRepository(db)
	adviceRepository := advice.NewAdviceRepository(db)
	forumRepository := forum.NewForumRepository(db)

	// Service
	jwtService, err := jwt.NewJWTService()
	if err != nil {
		return nil, err
	}
	userService := user.NewUserService(userRepository, jwtService)
	profileService := profile.NewProfileService(profileRepository, s3, scanRepository, adviceRepository, forumRepository)
	scanService := scan.NewScanService(scanRepository, model, s3, log)
	adviceService := advice.NewAdviceService(adviceRepository, remote, log)
	forumService := forum.NewForumService(forumRepository)
	marketService := market.NewMarketService()
	calendarService := calendar.NewCalendarService(remote)
	dashboardService := dashboard.NewDashboardService(profileService, scanService, remote)
	contactService := contact.NewContactService(mailer, utils.GetConfig("CONTACT_INBOX"))

	middlewares := middleware.NewMiddleware(userService, profileService, log)

	// Handler
	userHandler := handlers.NewUserHandler(validator)
	profileHandler := handlers.NewProfileHandler(profileService, validator)
	scanHandler := handlers.NewScanHandler(scanService, validator)
	adviceHandler := handlers.NewAdviceHandler(adviceService, validator)
	forumHandler := handlers.NewForumHandler(forumService, validator)
	farmHandler := handlers.NewFarmHandler(remote, marketService, calendarService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	contactHandler := handlers.NewContactHandler(contactService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		ProfileHandler:   profileHandler,
		ScanHandler:      scanHandler,
		AdviceHandler:    adviceHandler,
		ForumHandler:     forumHandler,
		FarmHandler:      farmHandler,
		DashboardHandler: dashboardHandler,
		ContactHandler:   contactHandler,
		Middleware:       middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
