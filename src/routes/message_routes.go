package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/controllers"
	"github.com/hackmate-app/hackmate-backend/src/middleware"
)

// MessageRoutes sets up message-related routes for sending and fetching chat history
func MessageRoutes(app *fiber.App) {
	message := app.Group("/api/v1/messages", middleware.ProtectRoute)

	message.Post("/", controllers.SendMessage)
	message.Get("/:chatId", controllers.GetMessages)
}
