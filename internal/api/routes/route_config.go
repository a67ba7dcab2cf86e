package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"little-lemon/internal/api/handlers"
	"little-lemon/internal/middleware"
	"little-lemon/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	MenuHandler         handlers.MenuHandler
	CartHandler         handlers.CartHandler
	OrderHandler        handlers.OrderHandler
	ManagerHandler      handlers.GroupHandler
	DeliveryCrewHandler handlers.GroupHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	api := c.App.Group("/api")

	c.User(api)
	c.Menu(api)
	c.Cart(api)
	c.Orders(api)
	c.Groups(api)
	c.GuestRoute(api)
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) User(api fiber.Router) {
	api.Post("/users", c.UserHandler.Register)
	api.Post("/api-token-auth", c.UserHandler.Login)
	api.Get("/users/me", c.auth(), c.UserHandler.Me)
}

func (c *Config) Menu(api fiber.Router) {
	api.Get("/categories", c.MenuHandler.GetCategories)
	api.Post("/categories", c.auth(), c.MenuHandler.AddCategory)

	menuItems := api.Group("/menu-items")
	{
		menuItems.Get("", c.MenuHandler.GetMenuItems)
		menuItems.Get("/:id", c.MenuHandler.GetMenuItem)
		menuItems.Post("", c.auth(), c.MenuHandler.AddMenuItem)
		menuItems.Put("/:id", c.auth(), c.MenuHandler.UpdateMenuItem)
		menuItems.Patch("/:id", c.auth(), c.MenuHandler.PatchMenuItem)
		menuItems.Delete("/:id", c.auth(), c.MenuHandler.DeleteMenuItem)
		menuItems.Post("/:id/image", c.auth(), c.MenuHandler.UploadMenuItemImage)
	}
}

func (c *Config) Cart(api fiber.Router) {
	cart := api.Group("/cart/menu-items", c.auth())
	cart.Get("", c.CartHandler.GetCart)
	cart.Post("", c.CartHandler.AddToCart)
	cart.Delete("", c.CartHandler.ClearCart)
}

func (c *Config) Orders(api fiber.Router) {
	orders := api.Group("/orders", c.auth())
	orders.Get("", c.OrderHandler.GetOrders)
	orders.Post("", c.OrderHandler.Checkout)
	orders.Get("/:id", c.OrderHandler.GetOrder)
	orders.Patch("/:id", c.OrderHandler.UpdateOrder)
	orders.Delete("/:id", c.OrderHandler.DeleteOrder)
}

func (c *Config) Groups(api fiber.Router) {
	managers := api.Group("/groups/manager/users", c.auth())
	managers.Get("", c.ManagerHandler.ListMembers)
	managers.Post("", c.ManagerHandler.AddMember)
	managers.Delete("/:id", c.ManagerHandler.RemoveMember)

	crew := api.Group("/groups/delivery-crew/users", c.auth())
	crew.Get("", c.DeliveryCrewHandler.ListMembers)
	crew.Post("", c.DeliveryCrewHandler.AddMember)
	crew.Delete("/:id", c.DeliveryCrewHandler.RemoveMember)
}

func (c *Config) GuestRoute(api fiber.Router) {
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	api.Get("/throttle-check", c.Middleware.AnonThrottle(5, time.Minute), handlers.ThrottleCheck)
	api.Get("/throttle-check-auth", c.auth(), c.Middleware.UserThrottle(10, time.Minute), handlers.ThrottleCheckAuth)
}
