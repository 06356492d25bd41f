package models

import (
	"time"
)

type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Cid           string    `gorm:"uniqueIndex;size:36;not null" json:"cid"`
	PostID        uint      `gorm:"not null;index:idx_comments_post_path,priority:1" json:"post_id"`
	Post          Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID      *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Parent        *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Path          string    `gorm:"size:255;not null;index:idx_comments_post_path,priority:2" json:"path"`
	Depth         int       `gorm:"not null;default:1" json:"depth"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ContentHTML   string    `gorm:"type:text" json:"content_html"` // 渲染并消毒后的 HTML
	UpvoteCount   int       `gorm:"not null;default:0" json:"upvote_count"`
	DownvoteCount int       `gorm:"not null;default:0" json:"downvote_count"`
	ReplySeq      int       `gorm:"not null;default:0" json:"-"` // 子评论楼层发号器
	CreatedAt     time.Time `json:"created_at"`
}

// Path 是物化路径：每段 4 位零填充数字，用 "." 连接。
// 任意后代的 Path 都以祖先的 Path+"." 为前缀，子树查询走 (post_id, path) 前缀匹配。
// 楼层号不从 Path 末段反解，权威来源是父节点上的 ReplySeq 计数器。
