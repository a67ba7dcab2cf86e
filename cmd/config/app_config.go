package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/internal/api/handlers"
	"little-lemon/internal/api/routes"
	"little-lemon/internal/messaging"
	"little-lemon/internal/middleware"
	"little-lemon/internal/utils"
	"little-lemon/internal/utils/mailing"
	"little-lemon/internal/utils/storage"
	"little-lemon/pkg/cart"
	"little-lemon/pkg/group"
	"little-lemon/pkg/jwt"
	"little-lemon/pkg/menu"
	"little-lemon/pkg/notification"
	"little-lemon/pkg/order"
	"little-lemon/pkg/user"
)

// NewApp wires every layer. The returned cleanup closes the log file and
// the broker connection.
func NewApp(db *gorm.DB) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	// setting up logging and limiter
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("DB_TIMEZONE"),
		Output:     file,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	var publisher notification.EventPublisher
	var amqpPublisher *messaging.Publisher
	if url := utils.GetConfig("AMQP_URL"); url != "" {
		amqpPublisher, err = messaging.NewPublisher(url)
		if err != nil {
			log.Warnf("order events disabled: %v", err)
		} else {
			publisher = amqpPublisher
		}
	}

	var sendMail notification.MailSender
	if mailing.LoadMailConfig().Enabled() {
		sendMail = mailing.SendMail
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	groupRepository := group.NewGroupRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	cartRepository := cart.NewCartRepository(db)
	orderRepository := order.NewOrderRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	groupService := group.NewGroupService(groupRepository)
	menuService := menu.NewMenuService(menuRepository, s3)
	cartService := cart.NewCartService(cartRepository)
	notifier := notification.NewOrderNotifier(publisher, sendMail, userRepository)
	orderService := order.NewOrderService(orderRepository, notifier)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	cartHandler := handlers.NewCartHandler(cartService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	managerHandler := handlers.NewGroupHandler(groupService, validator, domain.RoleManager)
	deliveryCrewHandler := handlers.NewGroupHandler(groupService, validator, domain.RoleDeliveryCrew)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		MenuHandler:         menuHandler,
		CartHandler:         cartHandler,
		OrderHandler:        orderHandler,
		ManagerHandler:      managerHandler,
		DeliveryCrewHandler: deliveryCrewHandler,
		Middleware:          middleware.NewMiddleware(userService),
		JWTService:          jwtService,
	}
	routesConfig.Setup()

	cleanup := func() {
		if amqpPublisher != nil {
			if err := amqpPublisher.Close(); err != nil {
				log.Warnf("failed to close publisher: %v", err)
			}
		}
		file.Close()
	}
	return app, cleanup, nil
}
