package store

import (
	"context"
	"fmt"

	"rootlink/internal/engine"
	"rootlink/internal/models"

	"gorm.io/gorm"
)

type contentStore struct {
	gdb *gorm.DB
}

func (s *contentStore) Get(ctx context.Context, ref models.ContentRef) (*engine.Content, error) {
	switch ref.Kind {
	case models.KindPost:
		var p models.Post
		if err := s.gdb.WithContext(ctx).First(&p, ref.ID).Error; err != nil {
			return nil, translateError(err)
		}
		return &engine.Content{Ref: ref, AuthorID: p.UserID, Upvotes: p.UpvoteCount, Downvotes: p.DownvoteCount, CreatedAt: p.CreatedAt}, nil
	case models.KindComment:
		var c models.Comment
		if err := s.gdb.WithContext(ctx).First(&c, ref.ID).Error; err != nil {
			return nil, translateError(err)
		}
		return &engine.Content{Ref: ref, AuthorID: c.UserID, Upvotes: c.UpvoteCount, Downvotes: c.DownvoteCount, CreatedAt: c.CreatedAt}, nil
	}
	return nil, fmt.Errorf("%w: unknown content kind %q", engine.ErrInvalidArgument, ref.Kind)
}

// ApplyCounterDelta 用单条 UPDATE 做原子自增，不读出旧值再写回
func (s *contentStore) ApplyCounterDelta(ctx context.Context, ref models.ContentRef, dUp, dDown int) error {
	if dUp == 0 && dDown == 0 {
		return nil
	}
	updates := map[string]interface{}{}
	if dUp != 0 {
		updates["upvote_count"] = gorm.Expr("upvote_count + ?", dUp)
	}
	if dDown != 0 {
		updates["downvote_count"] = gorm.Expr("downvote_count + ?", dDown)
	}

	res := s.gdb.WithContext(ctx).Model(modelFor(ref.Kind)).Where("id = ?", ref.ID).UpdateColumns(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", engine.ErrNotFound, ref.Kind, ref.ID)
	}
	return nil
}

func (s *contentStore) Counts(ctx context.Context, ref models.ContentRef) (int, int, error) {
	var row struct {
		UpvoteCount   int
		DownvoteCount int
	}
	err := s.gdb.WithContext(ctx).Model(modelFor(ref.Kind)).
		Select("upvote_count", "downvote_count").
		Where("id = ?", ref.ID).
		Take(&row).Error
	if err != nil {
		return 0, 0, translateError(err)
	}
	return row.UpvoteCount, row.DownvoteCount, nil
}

func modelFor(kind models.ContentKind) interface{} {
	if kind == models.KindPost {
		return &models.Post{}
	}
	return &models.Comment{}
}
