package store

import (
	"context"

	"rootlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type commentStore struct {
	gdb *gorm.DB
}

func (s *commentStore) Get(ctx context.Context, commentID uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.gdb.WithContext(ctx).First(&c, commentID).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// NextRootSegment 锁住帖子行后递增 reply_seq。
// 楼层号对每个 (父节点, 段号) 只发一次，"查最大值再加一"的竞态在这里被行锁消掉。
func (s *commentStore) NextRootSegment(ctx context.Context, postID uint) (int, error) {
	var post models.Post
	err := s.gdb.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, postID).Error
	if err != nil {
		return 0, translateError(err)
	}

	next := post.ReplySeq + 1
	err = s.gdb.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("reply_seq", next).Error
	if err != nil {
		return 0, translateError(err)
	}
	return next, nil
}

// NextChildSegment 同 NextRootSegment，锁的是父评论行
func (s *commentStore) NextChildSegment(ctx context.Context, parentID uint) (int, error) {
	var parent models.Comment
	err := s.gdb.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&parent, parentID).Error
	if err != nil {
		return 0, translateError(err)
	}

	next := parent.ReplySeq + 1
	err = s.gdb.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", parentID).
		UpdateColumn("reply_seq", next).Error
	if err != nil {
		return 0, translateError(err)
	}
	return next, nil
}

func (s *commentStore) Create(ctx context.Context, c *models.Comment) error {
	return translateError(s.gdb.WithContext(ctx).Create(c).Error)
}

func (s *commentStore) IncrementCommentCount(ctx context.Context, postID uint) error {
	return translateError(s.gdb.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error)
}

// Subtree 前缀匹配查后代，path 只含数字和点，不需要转义 LIKE 通配符
func (s *commentStore) Subtree(ctx context.Context, postID uint, pathPrefix string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.gdb.WithContext(ctx).
		Where("post_id = ? AND path LIKE ?", postID, pathPrefix+"%").
		Order("path ASC").
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return comments, nil
}
