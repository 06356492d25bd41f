package models

import (
	"time"
)

type Vote struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Vid         string      `gorm:"uniqueIndex;size:36;not null" json:"vid"`
	UserID      uint        `gorm:"not null;index;uniqueIndex:idx_votes_user_content" json:"user_id"`
	ContentKind ContentKind `gorm:"size:10;not null;uniqueIndex:idx_votes_user_content" json:"content_kind"`
	ContentID   uint        `gorm:"not null;index;uniqueIndex:idx_votes_user_content" json:"content_id"`
	Type        VoteType    `gorm:"column:vote_type;not null" json:"type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// 每个用户对同一内容至多一票，由 idx_votes_user_content 唯一索引兜底。
// 应用层的"先查后写"在并发下会漏判，唯一约束冲突会被翻译成 Conflict 交给调用方重试。
