package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/controllers"
	"github.com/hackmate-app/hackmate-backend/src/middleware"
)

// ChatRoutes sets up chat-related routes for direct chats, group chats, and membership management
func ChatRoutes(app *fiber.App) {
	chat := app.Group("/api/v1/chats", middleware.ProtectRoute)

	chat.Get("/", controllers.FetchChats)
	chat.Post("/", controllers.AccessChat)
	chat.Post("/group", controllers.CreateGroupChat)
	chat.Put("/rename", controllers.RenameGroup)
	chat.Put("/groupadd", controllers.AddToGroup)
	chat.Put("/groupremove", controllers.RemoveFromGroup)
	chat.Get("/:id", controllers.GetChatByID)
}
