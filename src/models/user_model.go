package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type SocialLinks struct {
	Linkedin  string `json:"linkedin"`
	Github    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

type User struct {
	gorm.Model
	Name         string      `json:"name"`
	Email        string      `json:"email" gorm:"uniqueIndex"`
	Password     string      `json:"-"`
	IsAdmin      bool        `json:"isAdmin"`
	Status       string      `json:"status" gorm:"default:Not Available"`
	Bio          string      `json:"bio"`
	Avatar       string      `json:"avatar" gorm:"default:/uploads/default.png"`
	Achievements string      `json:"achievements"`
	Skills       []string    `json:"skills" gorm:"serializer:json"`
	College      string      `json:"college"`
	State        string      `json:"state"`
	Branch       string      `json:"branch"`
	SocialLinks  SocialLinks `json:"socialLinks" gorm:"embedded;embeddedPrefix:social_"`
}

// MarshalJSON renames ID to _id so the payload matches what clients expect
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User
	return json.Marshal(&struct {
		ID uint `json:"_id"`
		*Alias
	}{
		ID:    u.ID,
		Alias: (*Alias)(&u),
	})
}

type UserDto struct {
	ID     uint   `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func (u *User) ToDto() UserDto {
	return UserDto{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
