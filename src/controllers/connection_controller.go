package controllers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
	"github.com/hackmate-app/hackmate-backend/src/realtime"
	"gorm.io/gorm"
)

// createNotification persists a notification and pushes it to the
// recipient's private room. Failures are logged and never surfaced: the
// primary mutation already succeeded.
func createNotification(recipientID, senderID uint, nType models.NotificationType, message string) {
	notification := models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        nType,
		Message:     message,
	}

	if err := lib.DB.Create(&notification).Error; err != nil {
		slog.Warn("Failed to create notification", "type", nType, "recipient", recipientID, "err", err)
		return
	}

	realtime.DefaultHub.EmitToUser(recipientID, "newNotification", fiber.Map{
		"_id":       notification.ID,
		"type":      notification.Type,
		"message":   notification.Message,
		"sender":    notification.SenderID,
		"createdAt": notification.CreatedAt,
	})
}

// SendConnectionRequest sends a connection request from the authenticated user to another user
func SendConnectionRequest(c *fiber.Ctx) error {
	targetUserIDStr := c.Params("userId")
	targetUserID, err := strconv.ParseUint(targetUserIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	if user.ID == uint(targetUserID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "You can't send a connection request to yourself",
		})
	}

	if _, err := lib.FindUserByID(uint(targetUserID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Target user not found",
			})
		}
		slog.Error("Failed to look up target user", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	// A pending or accepted edge in either direction blocks a new request.
	// Rejected edges are terminal for themselves but do not block a resend.
	var existing models.Connection
	err = lib.DB.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		user.ID, uint(targetUserID), uint(targetUserID), user.ID).
		Where("status IN ?", []models.ConnectionStatus{models.ConnectionStatusPending, models.ConnectionStatusAccepted}).
		First(&existing).Error

	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Request already sent or connection already exists",
		})
	} else if err != gorm.ErrRecordNotFound {
		slog.Error("Failed to check existing connection", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	newRequest := models.Connection{
		SenderID:    user.ID,
		RecipientID: uint(targetUserID),
		Status:      models.ConnectionStatusPending,
	}

	if err := lib.DB.Create(&newRequest).Error; err != nil {
		slog.Error("Failed to create connection request", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to send connection request",
		})
	}

	createNotification(uint(targetUserID), user.ID,
		models.NotificationTypeRequestSent, user.Name+" sent you a connection request.")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Connection request sent successfully",
		"connection": newRequest,
	})
}

// findPendingRequest resolves the unique pending edge from the given
// sender addressed to the acting user
func findPendingRequest(senderID, actingID uint) (*models.Connection, error) {
	var request models.Connection
	err := lib.DB.Where("sender_id = ? AND recipient_id = ? AND status = ?",
		senderID, actingID, models.ConnectionStatusPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// AcceptConnectionRequest accepts a pending connection request addressed to the authenticated user
func AcceptConnectionRequest(c *fiber.Ctx) error {
	senderIDStr := c.Params("userId")
	senderID, err := strconv.ParseUint(senderIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	request, err := findPendingRequest(uint(senderID), user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No pending request found",
			})
		}
		slog.Error("Failed to find connection request", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	request.Status = models.ConnectionStatusAccepted
	if err := lib.DB.Save(request).Error; err != nil {
		slog.Error("Failed to accept connection request", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to accept connection request",
		})
	}

	createNotification(request.SenderID, user.ID,
		models.NotificationTypeRequestAccepted, user.Name+" accepted your connection request. You are now connected!")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Connection accepted successfully",
		"connection": request,
	})
}

// RejectConnectionRequest rejects a pending connection request addressed to the authenticated user
func RejectConnectionRequest(c *fiber.Ctx) error {
	senderIDStr := c.Params("userId")
	senderID, err := strconv.ParseUint(senderIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	request, err := findPendingRequest(uint(senderID), user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No pending request found",
			})
		}
		slog.Error("Failed to find connection request", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	request.Status = models.ConnectionStatusRejected
	if err := lib.DB.Save(request).Error; err != nil {
		slog.Error("Failed to reject connection request", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to reject connection request",
		})
	}

	createNotification(request.SenderID, user.ID,
		models.NotificationTypeRequestRejected, user.Name+" rejected your connection request.")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Connection request rejected",
	})
}

// GetConnectionRequests returns all pending connection requests addressed to the authenticated user
func GetConnectionRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var connections []models.Connection
	err := lib.DB.Preload("Sender").
		Where("recipient_id = ? AND status = ?", user.ID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&connections).Error

	if err != nil {
		slog.Error("Failed to find connection requests", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	type ConnectionRequestResponse struct {
		ID        uint           `json:"_id"`
		Sender    models.UserDto `json:"sender"`
		Recipient uint           `json:"recipient"`
		Status    string         `json:"status"`
		CreatedAt time.Time      `json:"createdAt"`
	}

	response := make([]ConnectionRequestResponse, 0, len(connections))
	for _, conn := range connections {
		response = append(response, ConnectionRequestResponse{
			ID:        conn.ID,
			Sender:    conn.Sender.ToDto(),
			Recipient: conn.RecipientID,
			Status:    string(conn.Status),
			CreatedAt: conn.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserConnections returns the accepted connections of the authenticated user,
// each resolved to the other party, most recently updated first
func GetUserConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var connections []models.Connection
	err := lib.DB.Preload("Sender").Preload("Recipient").
		Where("(sender_id = ? OR recipient_id = ?) AND status = ?",
			user.ID, user.ID, models.ConnectionStatusAccepted).
		Order("updated_at DESC").
		Find(&connections).Error

	if err != nil {
		slog.Error("Failed to find connections", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	type ConnectionResponse struct {
		ID        uint           `json:"_id"`
		User      models.UserDto `json:"user"`
		Status    string         `json:"status"`
		CreatedAt time.Time      `json:"createdAt"`
		UpdatedAt time.Time      `json:"updatedAt"`
	}

	response := make([]ConnectionResponse, 0, len(connections))
	for _, conn := range connections {
		other := conn.Recipient
		if conn.RecipientID == user.ID {
			other = conn.Sender
		}

		response = append(response, ConnectionResponse{
			ID:        conn.ID,
			User:      other.ToDto(),
			Status:    string(conn.Status),
			CreatedAt: conn.CreatedAt,
			UpdatedAt: conn.UpdatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// areConnected reports whether an accepted edge joins the two users
func areConnected(a, b uint) (bool, error) {
	var count int64
	err := lib.DB.Model(&models.Connection{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Where("status = ?", models.ConnectionStatusAccepted).
		Count(&count).Error
	return count > 0, err
}
