package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/controllers"
	"github.com/hackmate-app/hackmate-backend/src/middleware"
)

// AuthRoutes sets up authentication-related routes for register, login, logout, and getting the current user
func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/logout", controllers.Logout)
	auth.Get("/me", middleware.ProtectRoute, controllers.GetCurrentUser)
}
