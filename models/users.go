package models

import (
	"time"
)

type Role string

const (
	ROLE_USER  Role = "user"
	ROLE_ADMIN Role = "admin"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex:users_username_key" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         Role      `gorm:"size:16;default:user" json:"role"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
