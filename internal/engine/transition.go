package engine

import (
	"rootlink/internal/models"
)

// Transition 描述一次投票操作引起的状态迁移 Old -> New。
// 计数器增量和积分增量都从同一个迁移值推导，绝不各自重算。
type Transition struct {
	Old models.VoteType
	New models.VoteType
}

// CounterDelta 返回迁移对应的计数器增量 (Δup, Δdown)：
//
//	None→Up (+1,0)  None→Down (0,+1)
//	Up→None (-1,0)  Down→None (0,-1)
//	Up→Down (-1,+1) Down→Up   (+1,-1)
func (t Transition) CounterDelta() (dUp, dDown int) {
	switch t.Old {
	case models.VoteUp:
		dUp = -1
	case models.VoteDown:
		dDown = -1
	}
	switch t.New {
	case models.VoteUp:
		dUp++
	case models.VoteDown:
		dDown++
	}
	return dUp, dDown
}

// KarmaDelta 返回作者视角的积分增量：赞 +1、踩 -1、无 0，
// 差值乘以内容权重（帖子 2，评论 1）。自投由调用方剔除。
func (t Transition) KarmaDelta(kind models.ContentKind) int {
	return (authorValue(t.New) - authorValue(t.Old)) * kind.KarmaWeight()
}

func authorValue(v models.VoteType) int {
	switch v {
	case models.VoteUp:
		return 1
	case models.VoteDown:
		return -1
	}
	return 0
}

// 积分动作常量
const (
	ActionPostUpvoted          = "帖子获赞"
	ActionPostUpvoteRemoved    = "帖子取消获赞"
	ActionPostDownvoted        = "帖子被踩"
	ActionPostDownvoteRemoved  = "帖子取消被踩"
	ActionPostUpToDown         = "帖子由赞转踩"
	ActionPostDownToUp         = "帖子由踩转赞"
	ActionCommentUpvoted       = "评论获赞"
	ActionCommentUpvoteRemoved = "评论取消获赞"
	ActionCommentDownvoted     = "评论被踩"
	ActionCommentDownvoteRmvd  = "评论取消被踩"
	ActionCommentUpToDown      = "评论由赞转踩"
	ActionCommentDownToUp      = "评论由踩转赞"
)

// karmaAction 返回迁移对应的积分明细描述
func karmaAction(kind models.ContentKind, t Transition) string {
	post := kind == models.KindPost
	switch {
	case t.Old == models.VoteNone && t.New == models.VoteUp:
		return pick(post, ActionPostUpvoted, ActionCommentUpvoted)
	case t.Old == models.VoteUp && t.New == models.VoteNone:
		return pick(post, ActionPostUpvoteRemoved, ActionCommentUpvoteRemoved)
	case t.Old == models.VoteNone && t.New == models.VoteDown:
		return pick(post, ActionPostDownvoted, ActionCommentDownvoted)
	case t.Old == models.VoteDown && t.New == models.VoteNone:
		return pick(post, ActionPostDownvoteRemoved, ActionCommentDownvoteRmvd)
	case t.Old == models.VoteUp && t.New == models.VoteDown:
		return pick(post, ActionPostUpToDown, ActionCommentUpToDown)
	case t.Old == models.VoteDown && t.New == models.VoteUp:
		return pick(post, ActionPostDownToUp, ActionCommentDownToUp)
	}
	return ""
}

func pick(post bool, postAction, commentAction string) string {
	if post {
		return postAction
	}
	return commentAction
}
