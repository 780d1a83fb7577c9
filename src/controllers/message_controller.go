package controllers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
	"github.com/hackmate-app/hackmate-backend/src/realtime"
	"gorm.io/gorm"
)

func chatMembership(chatID, userID uint) (bool, error) {
	var count int64
	err := lib.DB.Table("chat_users").
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

// SendMessage appends a message to a chat the authenticated user belongs
// to, updates the chat's latest-message pointer, then pushes the payload
// to every other member's private room. The push is fire-and-forget: the
// response only reflects persistence.
func SendMessage(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		ChatID  uint   `json:"chatId"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil || body.ChatID == 0 || body.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "chatId and content are required",
		})
	}

	var chat models.Chat
	if err := lib.DB.First(&chat, body.ChatID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Chat not found",
			})
		}
		slog.Error("Failed to load chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	member, err := chatMembership(chat.ID, user.ID)
	if err != nil {
		slog.Error("Failed to check chat membership", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	if !member {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not a member of this chat",
		})
	}

	message := models.Message{
		ChatID:   chat.ID,
		SenderID: user.ID,
		Content:  body.Content,
	}

	if err := lib.DB.Create(&message).Error; err != nil {
		slog.Error("Failed to create message", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to send message",
		})
	}

	// Chat.LatestMessage always points at the newest message; Updates
	// also bumps updated_at so listChats sorts this chat first.
	if err := lib.DB.Model(&chat).Update("latest_message_id", message.ID).Error; err != nil {
		slog.Error("Failed to update latest message", "chat", chat.ID, "err", err)
	}

	message.Sender = user
	dto := message.ToDto()

	// Persist-then-emit: every other member gets a message notification
	// and, if connected, the payload on their private room. The sender is
	// excluded.
	var memberIDs []uint
	if err := lib.DB.Table("chat_users").Where("chat_id = ?", chat.ID).Pluck("user_id", &memberIDs).Error; err != nil {
		slog.Warn("Failed to load chat members for fan-out", "chat", chat.ID, "err", err)
	} else {
		for _, id := range memberIDs {
			if id == user.ID {
				continue
			}
			createNotification(id, user.ID, models.NotificationTypeMessage, user.Name+" sent you a message.")
			realtime.DefaultHub.EmitToUser(id, "message received", dto)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto)
}

// GetMessages returns the message history of a chat, oldest first
func GetMessages(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	chatID, err := strconv.ParseUint(c.Params("chatId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid chat ID format",
		})
	}

	member, err := chatMembership(uint(chatID), user.ID)
	if err != nil {
		slog.Error("Failed to check chat membership", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	if !member {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Chat not found or you are not a participant",
		})
	}

	var messages []models.Message
	err = lib.DB.Preload("Sender").
		Where("chat_id = ?", uint(chatID)).
		Order("created_at ASC").
		Find(&messages).Error

	if err != nil {
		slog.Error("Failed to fetch messages", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	response := make([]models.MessageDto, 0, len(messages))
	for i := range messages {
		response = append(response, messages[i].ToDto())
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
