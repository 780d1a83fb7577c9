package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	slogfiber "github.com/samber/slog-fiber"

	"github.com/hackmate-app/hackmate-backend/src/config"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/realtime"
	"github.com/hackmate-app/hackmate-backend/src/routes"
)

func main() {

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "err", err)
	}

	cfg := config.LoadFromEnv()
	logger := lib.GetLogger(slog.LevelInfo)

	app := fiber.New()

	app.Use(slogfiber.New(logger))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Social graph, chats, messages and notifications live in SQLite;
	// the hackathon catalog lives in MongoDB.
	lib.ConnectDB(cfg.DbPath)
	lib.AutoMigrate()
	lib.ConnectMongo(cfg.MongoURI, cfg.MongoDbName)

	// Register routes
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ConnectionRoutes(app)
	routes.ChatRoutes(app)
	routes.MessageRoutes(app)
	routes.NotificationRoutes(app)
	routes.HackathonRoutes(app)

	// Realtime channel for chat delivery and notification push
	app.Use("/ws", realtime.UpgradeRequired)
	app.Get("/ws", realtime.Handler)

	logger.Info("Server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "err", err)
	}
}
