package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/eatery/internal/config"
	"github.com/example/eatery/internal/handlers"
	"github.com/example/eatery/internal/middleware"
	"github.com/example/eatery/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, svc *services.RestaurantService, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, cfg.Currency)

	myRestaurantHandler := handlers.NewMyRestaurantHandler(svc, telegramService)
	restaurantHandler := handlers.NewRestaurantHandler(svc)
	profileHandler := handlers.NewProfileHandler(svc)

	api := app.Group("/api")

	// Public reads
	api.Get("/restaurant/:id", restaurantHandler.GetRestaurant)

	// Protected routes
	protected := api.Group("/my", middleware.AuthMiddleware(cfg))

	protected.Get("/restaurant", myRestaurantHandler.GetMyRestaurant)
	protected.Get("/restaurant/form", myRestaurantHandler.GetMyRestaurantForm)
	protected.Post("/restaurant", myRestaurantHandler.CreateMyRestaurant)
	protected.Put("/restaurant", myRestaurantHandler.UpdateMyRestaurant)

	protected.Get("/user", profileHandler.GetMyUser)
	protected.Post("/user", profileHandler.CreateMyUser)
	protected.Put("/user", profileHandler.UpdateMyUser)
}
