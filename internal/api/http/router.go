package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Menu           *handlers.MenuHandler
	Orders         *handlers.OrdersHandler
	Feedback       *handlers.FeedbackHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Identity resolution runs on every /api
// route; each handler applies its own authorization rule.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	accounts := api.Group("/accounts")
	accounts.Post("/register", cfg.Accounts.Register)
	accounts.Post("/staff/login", cfg.Auth.StaffLogin)
	accounts.Post("/diner/login", cfg.Auth.DinerLogin)
	accounts.Post("/token/refresh", cfg.Auth.Refresh)
	accounts.Post("/logout", cfg.Auth.Logout)
	accounts.Get("/me", cfg.Auth.Me)
	accounts.Get("/diner/info", cfg.Accounts.GetDinerInfo)
	accounts.Post("/user/update", cfg.Accounts.UpdateInfo)
	accounts.Post("/manager/add", cfg.Accounts.Create)
	accounts.Post("/manager/remove", cfg.Accounts.Delete)
	accounts.Post("/manager/update_role", cfg.Accounts.UpdateRole)
	accounts.Get("/", cfg.Accounts.List)

	menu := api.Group("/menu")
	menu.Get("/menus", cfg.Menu.ListMenus)
	menu.Get("/menus/:id", cfg.Menu.GetMenu)
	menu.Get("/items", cfg.Menu.ListItems)
	menu.Post("/items/add", cfg.Menu.AddItem)
	menu.Post("/items/update", cfg.Menu.UpdateItem)
	menu.Post("/items/remove", cfg.Menu.RemoveItem)

	orders := api.Group("/orders")
	orders.Post("/submit", cfg.Orders.Submit)
	orders.Get("/kitchen", cfg.Orders.ListKitchen)
	orders.Get("/diner", cfg.Orders.ListByDiner)
	orders.Post("/items/add", cfg.Orders.AddItems)
	orders.Post("/items/remove", cfg.Orders.RemoveItems)
	orders.Post("/update", cfg.Orders.UpdateItems)
	orders.Post("/status/update", cfg.Orders.UpdateStatus)
	orders.Post("/note", cfg.Orders.AddNote)
	orders.Post("/service/choose", cfg.Orders.ChooseService)
	orders.Post("/pay", cfg.Orders.Pay)
	orders.Get("/:id/bill", cfg.Orders.GetBill)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Get("/", cfg.Orders.ListAll)

	reviews := api.Group("/reviews")
	reviews.Post("/feedback", cfg.Feedback.Submit)
	reviews.Get("/feedbacks", cfg.Feedback.List)

	analytics := api.Group("/analytics")
	analytics.Get("/rating", cfg.Analytics.Rating)
	analytics.Get("/revenue", cfg.Analytics.Revenue)
	analytics.Get("/order-count", cfg.Analytics.OrderCount)
}
