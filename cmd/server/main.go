package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/eatery/internal/config"
	"github.com/example/eatery/internal/routes"
	"github.com/example/eatery/internal/services"
)

func main() {
	cfg := config.Load()
	svc := services.NewRestaurantService(cfg)

	app := fiber.New(fiber.Config{
		AppName: "Eatery Gateway",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, svc, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := svc.Token(ctx); err != nil {
		log.Printf("upstream token warm-up failed: %v", err)
	}
	cancel()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
