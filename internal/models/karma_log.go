package models

import (
	"time"
)

type KarmaLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Amount      int         `gorm:"not null" json:"amount"`          // 正数为增加，负数为扣除
	Action      string      `gorm:"size:100;not null" json:"action"` // 动作描述
	ContentKind ContentKind `gorm:"size:10" json:"content_kind"`
	ContentID   uint        `json:"content_id"`
	CreatedAt   time.Time   `json:"created_at"`
}
