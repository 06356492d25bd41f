package engine

import (
	"context"
	"time"

	"rootlink/internal/models"
)

// Content 是帖子与评论在投票核心中的最小视图
type Content struct {
	Ref       models.ContentRef
	AuthorID  uint
	Upvotes   int
	Downvotes int
	CreatedAt time.Time
}

// ContentStore 按 ContentRef 读写内容的聚合计数
type ContentStore interface {
	Get(ctx context.Context, ref models.ContentRef) (*Content, error)
	// ApplyCounterDelta 必须实现为原子自增（SET c = c + ?），
	// 读出再写回会在并发投票下丢更新
	ApplyCounterDelta(ctx context.Context, ref models.ContentRef, dUp, dDown int) error
	Counts(ctx context.Context, ref models.ContentRef) (up, down int, err error)
}

// VoteStore 管理投票记录，"谁投了什么"的唯一事实来源
type VoteStore interface {
	// FindForUpdate 查不到时返回 ErrNotFound；查到的行在事务内持有行锁
	FindForUpdate(ctx context.Context, userID uint, ref models.ContentRef) (*models.Vote, error)
	Create(ctx context.Context, v *models.Vote) error
	UpdateType(ctx context.Context, voteID uint, t models.VoteType) error
	Delete(ctx context.Context, voteID uint) error
}

// UserStore 读写用户及其积分
type UserStore interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	// ApplyKarmaDelta 原子更新积分余额并写一条积分明细
	ApplyKarmaDelta(ctx context.Context, userID uint, delta int, action string, ref models.ContentRef) error
}

// CommentStore 管理评论树与楼层发号
type CommentStore interface {
	Get(ctx context.Context, commentID uint) (*models.Comment, error)
	// NextRootSegment 锁定帖子行后发放下一个根楼层号
	NextRootSegment(ctx context.Context, postID uint) (int, error)
	// NextChildSegment 锁定父评论行后发放下一个子楼层号
	NextChildSegment(ctx context.Context, parentID uint) (int, error)
	Create(ctx context.Context, c *models.Comment) error
	IncrementCommentCount(ctx context.Context, postID uint) error
	// Subtree 返回 path 以 pathPrefix 开头的全部评论，按 path 升序
	Subtree(ctx context.Context, postID uint, pathPrefix string) ([]models.Comment, error)
}

// Stores 聚合一组同一事务作用域内的存储接口
type Stores interface {
	Content() ContentStore
	Votes() VoteStore
	Users() UserStore
	Comments() CommentStore
}

// DB 在 Stores 之上增加事务入口。Atomic 中的修改要么全部可见要么全部回滚。
type DB interface {
	Stores
	Atomic(ctx context.Context, fn func(s Stores) error) error
}
