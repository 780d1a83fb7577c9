package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/controllers"
	"github.com/hackmate-app/hackmate-backend/src/middleware"
)

// HackathonRoutes sets up hackathon catalog routes; listing is public, mutations are protected
func HackathonRoutes(app *fiber.App) {
	hackathon := app.Group("/api/v1/hackathons")

	hackathon.Get("/", controllers.GetAllHackathons)
	hackathon.Get("/:id", controllers.GetHackathonByID)

	hackathon.Post("/", middleware.ProtectRoute, controllers.CreateHackathon)
	hackathon.Put("/:id", middleware.ProtectRoute, middleware.AdminOnly, controllers.UpdateHackathon)
	hackathon.Delete("/:id", middleware.ProtectRoute, middleware.AdminOnly, controllers.DeleteHackathon)
}
