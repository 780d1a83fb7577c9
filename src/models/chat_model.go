package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Chat struct {
	gorm.Model
	ChatName    string `json:"chatName"`
	IsGroupChat bool   `json:"isGroupChat"`
	// PairKey is the sorted "min:max" id pair, set only for direct chats.
	// The unique index closes the find-or-create race between two
	// concurrent requests for the same pair.
	PairKey         *string  `json:"-" gorm:"uniqueIndex"`
	GroupAdminID    *uint    `json:"groupAdmin,omitempty"`
	LatestMessageID *uint    `json:"-"`
	HackathonID     string   `json:"hackathon,omitempty"`
	Users           []User   `json:"users" gorm:"many2many:chat_users;"`
	GroupAdmin      *User    `json:"-" gorm:"foreignKey:GroupAdminID"`
	LatestMessage   *Message `json:"-" gorm:"foreignKey:LatestMessageID"`
}

// DirectPairKey builds the canonical pair key for a one-on-one chat
func DirectPairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// HasUser reports whether the given user id is a member of the chat.
// Users must be preloaded.
func (c *Chat) HasUser(userID uint) bool {
	for _, u := range c.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

type ChatDto struct {
	ID            uint        `json:"_id"`
	ChatName      string      `json:"chatName"`
	IsGroupChat   bool        `json:"isGroupChat"`
	Users         []UserDto   `json:"users"`
	GroupAdmin    *UserDto    `json:"groupAdmin,omitempty"`
	LatestMessage *MessageDto `json:"latestMessage,omitempty"`
	Hackathon     string      `json:"hackathon,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (c *Chat) ToDto() ChatDto {
	dto := ChatDto{
		ID:          c.ID,
		ChatName:    c.ChatName,
		IsGroupChat: c.IsGroupChat,
		Hackathon:   c.HackathonID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	dto.Users = make([]UserDto, 0, len(c.Users))
	for i := range c.Users {
		dto.Users = append(dto.Users, c.Users[i].ToDto())
	}

	if c.GroupAdmin != nil {
		admin := c.GroupAdmin.ToDto()
		dto.GroupAdmin = &admin
	}

	if c.LatestMessage != nil {
		latest := c.LatestMessage.ToDto()
		dto.LatestMessage = &latest
	}

	return dto
}
