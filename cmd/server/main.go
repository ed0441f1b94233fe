// Package main is the entry point for the Hairven API server.
package main

import (
	"context"
	"log"

	"hairven/internal/config"
	"hairven/internal/repositories"
	"hairven/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	zapLogger, err := newLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	if err := repositories.CacheService.HealthCheck(context.Background()); err != nil {
		zapLogger.Sugar().Warnw("redis not reachable, search index unavailable", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "hairven-api",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("STORE_CORS", "http://localhost:8000"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, repositories.DB, repositories.CacheService, zapLogger)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "9000")))
}

func newLogger() (*zap.Logger, error) {
	if config.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
