package realtime

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
)

// UpgradeRequired rejects plain HTTP requests on the websocket route and
// stashes the authenticated user id for the session handler.
func UpgradeRequired(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// Browsers can't set headers on websocket dials, so the token rides
	// in the query string.
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Not authorized - no token provided"))
	}

	claims, err := lib.VerifyJWT(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Not authorized - invalid token"))
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Not authorized - invalid token"))
	}

	c.Locals("userID", uint(userID))
	return c.Next()
}

// Handler runs one websocket session: registers it with the hub, then
// serves the client event loop until the socket closes.
var Handler = websocket.New(func(conn *websocket.Conn) {
	userID := conn.Locals("userID").(uint)

	s := DefaultHub.Register(userID, conn)
	defer DefaultHub.Unregister(s)

	slog.Info("websocket connected", "user", userID, "session", s.ID)
	defer slog.Info("websocket disconnected", "user", userID, "session", s.ID)

	if err := s.send("connected", fiber.Map{"session": s.ID}); err != nil {
		return
	}

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			return
		}

		switch ev.Event {
		case "setup":
			// Own room was already joined on register; just acknowledge
			// so clients written against the socket.io flow keep working.
			s.send("connected", fiber.Map{"session": s.ID})

		case "join chat":
			chatID, ok := numberField(ev.Data)
			if !ok {
				continue
			}
			member, err := isChatMember(chatID, userID)
			if err != nil || !member {
				slog.Warn("join chat refused", "user", userID, "chat", chatID, "err", err)
				continue
			}
			DefaultHub.Join(s, ChatRoom(chatID))

		case "leave chat":
			if chatID, ok := numberField(ev.Data); ok {
				DefaultHub.Leave(s, ChatRoom(chatID))
			}

		case "new message":
			// The message is already persisted over HTTP; the server
			// re-emits the payload to every other member's private room.
			payload, ok := ev.Data.(map[string]interface{})
			if !ok {
				continue
			}
			chatID, ok := numberField(payload["chat"])
			if !ok {
				continue
			}
			members, err := chatMemberIDs(chatID)
			if err != nil {
				slog.Warn("new message fan-out failed", "chat", chatID, "err", err)
				continue
			}
			for _, id := range members {
				if id == userID {
					continue
				}
				DefaultHub.EmitToUser(id, "message received", payload)
			}

		case "typing", "stop typing":
			// Advisory only, never persisted.
			if chatID, ok := numberField(ev.Data); ok {
				DefaultHub.EmitExcept(ChatRoom(chatID), s, ev.Event, fiber.Map{
					"chat": chatID,
					"user": userID,
				})
			}
		}
	}
})

// numberField extracts a chat id sent either bare ("join chat": 12),
// wrapped ({"chatId": 12}), or as a chat object ({"_id": 12, ...}).
func numberField(data interface{}) (uint, bool) {
	switch v := data.(type) {
	case float64:
		return uint(v), true
	case map[string]interface{}:
		if n, ok := v["chatId"].(float64); ok {
			return uint(n), true
		}
		if n, ok := v["_id"].(float64); ok {
			return uint(n), true
		}
	}
	return 0, false
}

func chatMemberIDs(chatID uint) ([]uint, error) {
	var ids []uint
	err := lib.DB.Table("chat_users").
		Where("chat_id = ?", chatID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func isChatMember(chatID, userID uint) (bool, error) {
	var count int64
	err := lib.DB.Table("chat_users").
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}
