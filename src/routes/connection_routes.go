package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/controllers"
	"github.com/hackmate-app/hackmate-backend/src/middleware"
)

// ConnectionRoutes sets up connection-related routes for sending, accepting, rejecting, and listing requests
func ConnectionRoutes(app *fiber.App) {
	connection := app.Group("/api/v1/connections", middleware.ProtectRoute)

	connection.Get("/", controllers.GetUserConnections)
	connection.Get("/requests", controllers.GetConnectionRequests)
	connection.Post("/request/:userId", controllers.SendConnectionRequest)
	connection.Put("/:userId/accept", controllers.AcceptConnectionRequest)
	connection.Put("/:userId/reject", controllers.RejectConnectionRequest)
}
