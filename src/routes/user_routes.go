package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/controllers"
	"github.com/hackmate-app/hackmate-backend/src/middleware"
)

// UserRoutes sets up user-related routes for profile, recommendations, public profiles, and admin management
func UserRoutes(app *fiber.App) {
	user := app.Group("/api/v1/users")

	user.Get("/public/:id", controllers.GetPublicProfile)

	user.Get("/profile", middleware.ProtectRoute, controllers.GetProfile)
	user.Put("/profile", middleware.ProtectRoute, controllers.UpdateProfile)
	user.Get("/recommendations", middleware.ProtectRoute, controllers.GetRecommendedStudents)

	user.Get("/", middleware.ProtectRoute, middleware.AdminOnly, controllers.GetUsers)
	user.Get("/:id", middleware.ProtectRoute, middleware.AdminOnly, controllers.GetUserByID)
	user.Put("/:id", middleware.ProtectRoute, middleware.AdminOnly, controllers.UpdateUser)
	user.Delete("/:id", middleware.ProtectRoute, middleware.AdminOnly, controllers.DeleteUser)
}
