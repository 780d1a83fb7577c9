package controllers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
	"gorm.io/gorm"
)

// loadChat fetches a chat with users, admin and latest message resolved
func loadChat(chatID uint) (*models.Chat, error) {
	var chat models.Chat
	err := lib.DB.Preload("Users").Preload("GroupAdmin").
		Preload("LatestMessage").Preload("LatestMessage.Sender").
		First(&chat, chatID).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// AccessChat finds or creates the one-on-one chat between the
// authenticated user and the peer in the request body. The two must be
// connected. The unique pair key makes concurrent creates converge on a
// single chat.
func AccessChat(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "userId not sent with request",
		})
	}

	if body.UserID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "You can't start a chat with yourself",
		})
	}

	connected, err := areConnected(user.ID, body.UserID)
	if err != nil {
		slog.Error("Failed to check connection", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	if !connected {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You must be connected to start a chat",
		})
	}

	pairKey := models.DirectPairKey(user.ID, body.UserID)

	var existing models.Chat
	err = lib.DB.Where("pair_key = ?", pairKey).First(&existing).Error
	if err == nil {
		chat, err := loadChat(existing.ID)
		if err != nil {
			slog.Error("Failed to load chat", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}
		return c.Status(fiber.StatusOK).JSON(chat.ToDto())
	}
	if err != gorm.ErrRecordNotFound {
		slog.Error("Failed to look up chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	peer, err := lib.FindUserByID(body.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		slog.Error("Failed to load peer", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	newChat := models.Chat{
		ChatName:    "sender",
		IsGroupChat: false,
		PairKey:     &pairKey,
		Users:       []models.User{user, *peer},
	}

	if err := lib.DB.Create(&newChat).Error; err != nil {
		// A concurrent request may have created the chat first; the
		// unique pair key turns that conflict into a refetch.
		if refetchErr := lib.DB.Where("pair_key = ?", pairKey).First(&existing).Error; refetchErr == nil {
			chat, loadErr := loadChat(existing.ID)
			if loadErr == nil {
				return c.Status(fiber.StatusOK).JSON(chat.ToDto())
			}
		}
		slog.Error("Failed to create chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create chat",
		})
	}

	chat, err := loadChat(newChat.ID)
	if err != nil {
		slog.Error("Failed to load chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(chat.ToDto())
}

// FetchChats returns the authenticated user's chats, latest message
// resolved, most recently updated first
func FetchChats(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var chats []models.Chat
	err := lib.DB.Preload("Users").Preload("GroupAdmin").
		Preload("LatestMessage").Preload("LatestMessage.Sender").
		Joins("JOIN chat_users ON chat_users.chat_id = chats.id AND chat_users.user_id = ?", user.ID).
		Order("chats.updated_at DESC").
		Find(&chats).Error

	if err != nil {
		slog.Error("Failed to fetch chats", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	response := make([]models.ChatDto, 0, len(chats))
	for i := range chats {
		response = append(response, chats[i].ToDto())
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetChatByID returns a single chat if the authenticated user is a
// member. Absence and non-membership collapse into one NotFound.
func GetChatByID(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	chatID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid chat ID format",
		})
	}

	chat, err := loadChat(uint(chatID))
	if err != nil || !chat.HasUser(user.ID) {
		if err != nil && err != gorm.ErrRecordNotFound {
			slog.Error("Failed to load chat", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Chat not found or you are not a participant",
		})
	}

	return c.Status(fiber.StatusOK).JSON(chat.ToDto())
}

// CreateGroupChat creates a group chat with the authenticated user as admin
func CreateGroupChat(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		Name        string `json:"name"`
		Users       []uint `json:"users"`
		HackathonID string `json:"hackathonId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if body.Name == "" || len(body.Users) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please fill all the fields",
		})
	}

	if len(body.Users) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "More than 2 users are required to form a group chat",
		})
	}

	var members []models.User
	if err := lib.DB.Find(&members, body.Users).Error; err != nil || len(members) != len(body.Users) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "One or more users not found",
		})
	}

	members = append(members, user)
	adminID := user.ID

	groupChat := models.Chat{
		ChatName:     body.Name,
		IsGroupChat:  true,
		GroupAdminID: &adminID,
		HackathonID:  body.HackathonID,
		Users:        members,
	}

	if err := lib.DB.Create(&groupChat).Error; err != nil {
		slog.Error("Failed to create group chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create group chat",
		})
	}

	chat, err := loadChat(groupChat.ID)
	if err != nil {
		slog.Error("Failed to load chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(chat.ToDto())
}

// loadGroupChat fetches a group chat and enforces the admin policy.
// With selfAllowed a member may act on themself (leaving a group).
func loadGroupChat(c *fiber.Ctx, chatID uint, actor models.User, targetID uint, selfAllowed bool) (*models.Chat, error) {
	chat, err := loadChat(chatID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Chat not found",
			})
		}
		slog.Error("Failed to load chat", "err", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if !chat.IsGroupChat {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Not a group chat",
		})
	}

	isAdmin := chat.GroupAdminID != nil && *chat.GroupAdminID == actor.ID
	isSelf := selfAllowed && targetID == actor.ID
	if !isAdmin && !isSelf {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only the group admin can do that",
		})
	}

	return chat, nil
}

// RenameGroup renames a group chat (admin only)
func RenameGroup(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		ChatID   uint   `json:"chatId"`
		ChatName string `json:"chatName"`
	}
	if err := c.BodyParser(&body); err != nil || body.ChatID == 0 || body.ChatName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "chatId and chatName are required",
		})
	}

	chat, errResp := loadGroupChat(c, body.ChatID, user, 0, false)
	if chat == nil {
		return errResp
	}

	if err := lib.DB.Model(chat).Update("chat_name", body.ChatName).Error; err != nil {
		slog.Error("Failed to rename chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to rename chat",
		})
	}

	chat.ChatName = body.ChatName
	return c.Status(fiber.StatusOK).JSON(chat.ToDto())
}

// AddToGroup adds a user to a group chat (admin only)
func AddToGroup(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		ChatID uint `json:"chatId"`
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ChatID == 0 || body.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "chatId and userId are required",
		})
	}

	chat, errResp := loadGroupChat(c, body.ChatID, user, 0, false)
	if chat == nil {
		return errResp
	}

	if chat.HasUser(body.UserID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User is already a member of this chat",
		})
	}

	newMember, err := lib.FindUserByID(body.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	if err := lib.DB.Model(chat).Association("Users").Append(newMember); err != nil {
		slog.Error("Failed to add user to chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add user to chat",
		})
	}

	chat, err = loadChat(chat.ID)
	if err != nil {
		slog.Error("Failed to load chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(chat.ToDto())
}

// RemoveFromGroup removes a user from a group chat. The admin can remove
// anyone; a member can remove themself to leave.
func RemoveFromGroup(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		ChatID uint `json:"chatId"`
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ChatID == 0 || body.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "chatId and userId are required",
		})
	}

	chat, errResp := loadGroupChat(c, body.ChatID, user, body.UserID, true)
	if chat == nil {
		return errResp
	}

	if !chat.HasUser(body.UserID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User is not a member of this chat",
		})
	}

	if err := lib.DB.Model(chat).Association("Users").Delete(&models.User{Model: gorm.Model{ID: body.UserID}}); err != nil {
		slog.Error("Failed to remove user from chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to remove user from chat",
		})
	}

	chat, err := loadChat(chat.ID)
	if err != nil {
		slog.Error("Failed to load chat", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(chat.ToDto())
}
