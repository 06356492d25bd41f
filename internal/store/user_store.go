package store

import (
	"context"
	"fmt"

	"rootlink/internal/engine"
	"rootlink/internal/models"

	"gorm.io/gorm"
)

type userStore struct {
	gdb *gorm.DB
}

func (s *userStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.gdb.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// ApplyKarmaDelta 写一条积分明细并原子更新积分余额，两步同属调用方的事务
func (s *userStore) ApplyKarmaDelta(ctx context.Context, userID uint, delta int, action string, ref models.ContentRef) error {
	if delta == 0 {
		return nil
	}

	entry := models.KarmaLog{
		UserID:      userID,
		Amount:      delta,
		Action:      action,
		ContentKind: ref.Kind,
		ContentID:   ref.ID,
	}
	if err := s.gdb.WithContext(ctx).Create(&entry).Error; err != nil {
		return translateError(err)
	}

	res := s.gdb.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("karma", gorm.Expr("karma + ?", delta))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", engine.ErrNotFound, userID)
	}
	return nil
}
