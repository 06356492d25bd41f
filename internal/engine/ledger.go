package engine

import (
	"context"
	"errors"
	"fmt"

	"rootlink/internal/models"

	"github.com/google/uuid"
)

// VoteOutcome 一次投票操作的结果。Vote 为 nil 表示这次操作把票取消了。
type VoteOutcome struct {
	Vote          *models.Vote `json:"vote"`
	UpvoteCount   int          `json:"upvote_count"`
	DownvoteCount int          `json:"downvote_count"`
}

// CastVote 处理一次投票：
//
//	无票     -> 按请求类型建票
//	同类型票 -> 删票（toggle off）
//	异类型票 -> 改票
//
// 票记录、计数器、作者积分在同一个事务里一起落库，
// 增量都来自同一个 Transition，事务中任何一步失败整体回滚。
func (e *Engine) CastVote(ctx context.Context, userID uint, ref models.ContentRef, requested models.VoteType) (*VoteOutcome, error) {
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrInvalidArgument, ref.Kind)
	}
	if requested != models.VoteUp && requested != models.VoteDown {
		return nil, fmt.Errorf("%w: unknown vote type %d", ErrInvalidArgument, requested)
	}

	var out *VoteOutcome
	err := e.withRetry(ctx, func(s Stores) error {
		content, err := s.Content().Get(ctx, ref)
		if err != nil {
			return err
		}

		tr := Transition{Old: models.VoteNone, New: requested}
		var vote *models.Vote

		existing, err := s.Votes().FindForUpdate(ctx, userID, ref)
		switch {
		case errors.Is(err, ErrNotFound):
			v := &models.Vote{
				Vid:         uuid.NewString(),
				UserID:      userID,
				ContentKind: ref.Kind,
				ContentID:   ref.ID,
				Type:        requested,
			}
			if err := s.Votes().Create(ctx, v); err != nil {
				return err
			}
			vote = v
		case err != nil:
			return err
		case existing.Type == requested:
			// 重复同类型投票即取消
			tr = Transition{Old: existing.Type, New: models.VoteNone}
			if err := s.Votes().Delete(ctx, existing.ID); err != nil {
				return err
			}
		default:
			tr = Transition{Old: existing.Type, New: requested}
			if err := s.Votes().UpdateType(ctx, existing.ID, requested); err != nil {
				return err
			}
			existing.Type = requested
			vote = existing
		}

		dUp, dDown := tr.CounterDelta()
		if err := s.Content().ApplyCounterDelta(ctx, ref, dUp, dDown); err != nil {
			return fmt.Errorf("%w: apply counter delta: %v", ErrInternal, err)
		}

		// 自己给自己的内容投票不动积分
		if content.AuthorID != userID {
			if delta := tr.KarmaDelta(ref.Kind); delta != 0 {
				if err := s.Users().ApplyKarmaDelta(ctx, content.AuthorID, delta, karmaAction(ref.Kind, tr), ref); err != nil {
					return fmt.Errorf("%w: apply karma delta: %v", ErrInternal, err)
				}
			}
		}

		up, down, err := s.Content().Counts(ctx, ref)
		if err != nil {
			return fmt.Errorf("%w: read counters: %v", ErrInternal, err)
		}
		out = &VoteOutcome{Vote: vote, UpvoteCount: up, DownvoteCount: down}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
