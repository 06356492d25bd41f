package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Avatar    string    `gorm:"default:🌱" json:"avatar"` // emoji 头像
	Karma     int       `gorm:"not null;default:0" json:"karma"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// 登录凭据由上游网关负责，这里不存密码
}
