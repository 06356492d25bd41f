package engine

import (
	"context"
	"fmt"

	"rootlink/internal/models"

	"github.com/google/uuid"
)

const (
	pathSegmentWidth = 4
	maxSiblingSeq    = 9999 // 4 位零填充能表达的最大楼层号
)

// Placement 评论在讨论树中的位置
type Placement struct {
	Path  string `json:"path"`
	Depth int    `json:"depth"`
}

// PlaceComment 为新评论分配物化路径和深度。
// 根评论 depth=1、path 为单段楼层号；回复 depth=parent.Depth+1、
// path 为父路径加 "." 加楼层号。楼层号来自父节点行锁下递增的 ReplySeq，
// 同一父节点下的并发回复因此拿不到相同的段号。
func (e *Engine) PlaceComment(ctx context.Context, postID uint, parentID *uint) (*Placement, error) {
	var p *Placement
	err := e.withRetry(ctx, func(s Stores) error {
		var err error
		p, err = placeComment(ctx, s, postID, parentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func placeComment(ctx context.Context, s Stores, postID uint, parentID *uint) (*Placement, error) {
	if parentID == nil {
		seq, err := s.Comments().NextRootSegment(ctx, postID)
		if err != nil {
			return nil, err
		}
		if seq > maxSiblingSeq {
			return nil, fmt.Errorf("%w: post %d has no root floor numbers left", ErrInvalidArgument, postID)
		}
		return &Placement{Path: formatSegment(seq), Depth: 1}, nil
	}

	parent, err := s.Comments().Get(ctx, *parentID)
	if err != nil {
		return nil, err
	}
	if parent.PostID != postID {
		return nil, fmt.Errorf("%w: comment %d does not belong to post %d", ErrInvalidArgument, *parentID, postID)
	}
	seq, err := s.Comments().NextChildSegment(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	if seq > maxSiblingSeq {
		return nil, fmt.Errorf("%w: comment %d has no reply floor numbers left", ErrInvalidArgument, parent.ID)
	}
	return &Placement{
		Path:  parent.Path + "." + formatSegment(seq),
		Depth: parent.Depth + 1,
	}, nil
}

func formatSegment(n int) string {
	return fmt.Sprintf("%0*d", pathSegmentWidth, n)
}

// CreateCommentParams 创建评论所需的全部字段
type CreateCommentParams struct {
	PostID      uint
	UserID      uint
	ParentID    *uint
	Content     string
	ContentHTML string
}

// CreateComment 在一个事务里完成定位、落库和帖子评论数自增。
// 路径和深度在创建时一次性确定，之后不再重算。
func (e *Engine) CreateComment(ctx context.Context, params CreateCommentParams) (*models.Comment, error) {
	if params.Content == "" {
		return nil, fmt.Errorf("%w: empty comment content", ErrInvalidArgument)
	}

	var created *models.Comment
	err := e.withRetry(ctx, func(s Stores) error {
		placement, err := placeComment(ctx, s, params.PostID, params.ParentID)
		if err != nil {
			return err
		}
		c := &models.Comment{
			Cid:         uuid.NewString(),
			PostID:      params.PostID,
			UserID:      params.UserID,
			ParentID:    params.ParentID,
			Path:        placement.Path,
			Depth:       placement.Depth,
			Content:     params.Content,
			ContentHTML: params.ContentHTML,
		}
		if err := s.Comments().Create(ctx, c); err != nil {
			return err
		}
		if err := s.Comments().IncrementCommentCount(ctx, params.PostID); err != nil {
			return fmt.Errorf("%w: increment comment count: %v", ErrInternal, err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Subtree 返回评论的全部后代，按 path 升序（即楼层顺序）。
// 只读查询，不加锁。
func (e *Engine) Subtree(ctx context.Context, commentID uint) ([]models.Comment, error) {
	parent, err := e.db.Comments().Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return e.db.Comments().Subtree(ctx, parent.PostID, parent.Path+".")
}

// DirectChildren 返回评论的直接子评论
func (e *Engine) DirectChildren(ctx context.Context, commentID uint) ([]models.Comment, error) {
	parent, err := e.db.Comments().Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	descendants, err := e.db.Comments().Subtree(ctx, parent.PostID, parent.Path+".")
	if err != nil {
		return nil, err
	}
	children := descendants[:0:0]
	for _, c := range descendants {
		if c.Depth == parent.Depth+1 {
			children = append(children, c)
		}
	}
	return children, nil
}
