package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pizzeria/internal/config"
	"github.com/example/pizzeria/internal/geo"
	"github.com/example/pizzeria/internal/handlers"
	"github.com/example/pizzeria/internal/middleware"
	"github.com/example/pizzeria/internal/realtime"
	"github.com/example/pizzeria/internal/services"
)

// Register wires up all HTTP routes and the websocket endpoint.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	base := geo.Coordinate{Lat: cfg.RestaurantLat, Lng: cfg.RestaurantLng}
	geocoder := geo.NewStubGeocoder(base)
	notifier := services.NewNotifier(hub, cfg)
	orderService := services.NewOrderService(db, geocoder, hub, notifier, base)

	authHandler := handlers.NewAuthHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(orderService)
	deliveryHandler := handlers.NewDeliveryHandler(orderService)
	productHandler := handlers.NewProductHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	offerHandler := handlers.NewOfferHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "American Pizza API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Websocket endpoint for order tracking and notifications.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.Handler()))

	api := app.Group("/api")

	protect := middleware.Protect(cfg)
	adminOnly := middleware.AdminOnly()

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", protect, authHandler.Me)

	orders := api.Group("/orders")
	orders.Post("/", protect, orderHandler.CreateOrder)
	orders.Get("/", protect, orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id/status", protect, adminOnly, orderHandler.UpdateStatus)
	orders.Get("/:id/print", protect, adminOnly, orderHandler.PrintOrder)

	api.Post("/delivery/calculate", deliveryHandler.Calculate)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", protect, adminOnly, productHandler.CreateProduct)
	products.Put("/:id", protect, adminOnly, productHandler.UpdateProduct)
	products.Delete("/:id", protect, adminOnly, productHandler.DeleteProduct)

	reviews := api.Group("/reviews")
	reviews.Get("/", reviewHandler.ListReviews)
	reviews.Post("/", protect, reviewHandler.CreateReview)

	offers := api.Group("/offers")
	offers.Get("/all", protect, adminOnly, offerHandler.ListAllOffers)
	offers.Get("/", offerHandler.ListActiveOffers)
	offers.Get("/:id", offerHandler.GetOffer)
	offers.Post("/", protect, adminOnly, offerHandler.CreateOffer)
	offers.Put("/:id", protect, adminOnly, offerHandler.UpdateOffer)
	offers.Delete("/:id", protect, adminOnly, offerHandler.DeleteOffer)

	admin := api.Group("/admin", protect, adminOnly)
	admin.Get("/stats", adminHandler.DashboardStats)
}
