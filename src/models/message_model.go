package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	ChatID   uint   `json:"chat" gorm:"index"`
	SenderID uint   `json:"sender"`
	Content  string `json:"content" gorm:"type:text"`
	Sender   User   `json:"-" gorm:"foreignKey:SenderID"`
}

type MessageDto struct {
	ID        uint      `json:"_id"`
	Chat      uint      `json:"chat"`
	Sender    UserDto   `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) ToDto() MessageDto {
	return MessageDto{
		ID:        m.ID,
		Chat:      m.ChatID,
		Sender:    m.Sender.ToDto(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
