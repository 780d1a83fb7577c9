package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	RecipientID uint             `json:"recipient" gorm:"index"`
	SenderID    uint             `json:"sender"`
	Type        NotificationType `json:"type" gorm:"type:varchar(30)"`
	Message     string           `json:"message"`
	IsRead      bool             `json:"isRead"`
	Sender      User             `json:"-" gorm:"foreignKey:SenderID"`
}

type NotificationType string

const (
	NotificationTypeRequestSent     NotificationType = "request-sent"
	NotificationTypeRequestAccepted NotificationType = "request-accepted"
	NotificationTypeRequestRejected NotificationType = "request-rejected"
	NotificationTypeHackathonAlert  NotificationType = "hackathon-alert"
	NotificationTypeMessage         NotificationType = "message"
)

type NotificationDto struct {
	ID        uint             `json:"_id"`
	Sender    UserDto          `json:"sender"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
