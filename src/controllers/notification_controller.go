package controllers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
)

// GetUserNotifications returns all notifications addressed to the
// authenticated user, newest first, with sender display fields resolved
func GetUserNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var notifications []models.Notification
	err := lib.DB.Preload("Sender").
		Where("recipient_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error

	if err != nil {
		slog.Error("Failed to find notifications", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	response := make([]models.NotificationDto, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, models.NotificationDto{
			ID:        n.ID,
			Sender:    n.Sender.ToDto(),
			Type:      n.Type,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// MarkAllNotificationsRead bulk-marks the authenticated user's
// notifications as read. Idempotent.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	err := lib.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error

	if err != nil {
		slog.Error("Failed to mark notifications read", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notifications marked as read",
	})
}
