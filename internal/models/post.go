package models

import (
	"time"
)

type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Pid           string    `gorm:"uniqueIndex;size:36;not null" json:"pid"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title         string    `gorm:"not null" json:"title"`
	URL           string    `json:"url"` // Optional
	Content       string    `gorm:"type:text" json:"content"`
	UpvoteCount   int       `gorm:"not null;default:0" json:"upvote_count"`
	DownvoteCount int       `gorm:"not null;default:0" json:"downvote_count"`
	CommentCount  int       `gorm:"not null;default:0" json:"comment_count"`
	Views         int       `gorm:"not null;default:0" json:"views"` // 浏览/点击量
	ReplySeq      int       `gorm:"not null;default:0" json:"-"`     // 根评论楼层发号器，行锁内递增
	HotRank       float64   `gorm:"not null;default:0" json:"hot_rank"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
