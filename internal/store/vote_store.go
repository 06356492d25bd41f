package store

import (
	"context"

	"rootlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type voteStore struct {
	gdb *gorm.DB
}

// FindForUpdate 对已存在的票行加 FOR UPDATE 锁，串行化同一用户对同一内容的并发操作。
// 行不存在时锁不到任何东西，两个并发建票靠唯一索引分出胜负，输家拿 Conflict 重试。
func (s *voteStore) FindForUpdate(ctx context.Context, userID uint, ref models.ContentRef) (*models.Vote, error) {
	var v models.Vote
	err := s.gdb.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND content_kind = ? AND content_id = ?", userID, ref.Kind, ref.ID).
		First(&v).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &v, nil
}

func (s *voteStore) Create(ctx context.Context, v *models.Vote) error {
	return translateError(s.gdb.WithContext(ctx).Create(v).Error)
}

func (s *voteStore) UpdateType(ctx context.Context, voteID uint, t models.VoteType) error {
	return translateError(s.gdb.WithContext(ctx).
		Model(&models.Vote{}).
		Where("id = ?", voteID).
		Update("vote_type", t).Error)
}

func (s *voteStore) Delete(ctx context.Context, voteID uint) error {
	return translateError(s.gdb.WithContext(ctx).Delete(&models.Vote{}, voteID).Error)
}
