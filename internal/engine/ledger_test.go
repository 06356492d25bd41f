package engine

import (
	"context"
	"testing"

	"rootlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteToggleOff(t *testing.T) {
	db := newMemDB()
	db.addUser(1) // 作者
	db.addUser(2)
	db.addPost(10, 1)
	e := New(db)
	ref := models.ContentRef{Kind: models.KindPost, ID: 10}

	out, err := e.CastVote(context.Background(), 2, ref, models.VoteUp)
	require.NoError(t, err)
	require.NotNil(t, out.Vote)
	assert.Equal(t, models.VoteUp, out.Vote.Type)
	assert.Equal(t, 1, out.UpvoteCount)
	assert.Equal(t, 0, out.DownvoteCount)
	assert.Equal(t, 2, db.users[1].Karma)

	// 同类型再投一次即取消，计数和积分都回到投票前
	out, err = e.CastVote(context.Background(), 2, ref, models.VoteUp)
	require.NoError(t, err)
	assert.Nil(t, out.Vote)
	assert.Equal(t, 0, out.UpvoteCount)
	assert.Equal(t, 0, out.DownvoteCount)
	assert.Equal(t, 0, db.users[1].Karma)
	assert.Empty(t, db.votes)
}

func TestCastVoteChange(t *testing.T) {
	db := newMemDB()
	db.addUser(1)
	db.addUser(2)
	db.addPost(10, 1)
	e := New(db)
	ref := models.ContentRef{Kind: models.KindPost, ID: 10}

	_, err := e.CastVote(context.Background(), 2, ref, models.VoteUp)
	require.NoError(t, err)

	// 改票：相对赞态计数变化恰为 (-1, +1)
	out, err := e.CastVote(context.Background(), 2, ref, models.VoteDown)
	require.NoError(t, err)
	require.NotNil(t, out.Vote)
	assert.Equal(t, models.VoteDown, out.Vote.Type)
	assert.Equal(t, 0, out.UpvoteCount)
	assert.Equal(t, 1, out.DownvoteCount)
	// 帖子权重 2：获赞 +2，由赞转踩 -4
	assert.Equal(t, -2, db.users[1].Karma)
	assert.Len(t, db.votes, 1)
}

// 规格场景：0 票起步，A 赞 (1,0)，B 踩 (1,1)，A 再赞取消 (0,1)
func TestCastVoteScenario(t *testing.T) {
	db := newMemDB()
	db.addUser(1)
	db.addUser(2) // A
	db.addUser(3) // B
	db.addPost(10, 1)
	e := New(db)
	ref := models.ContentRef{Kind: models.KindPost, ID: 10}

	out, err := e.CastVote(context.Background(), 2, ref, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, []int{out.UpvoteCount, out.DownvoteCount})

	out, err = e.CastVote(context.Background(), 3, ref, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, []int{out.UpvoteCount, out.DownvoteCount})

	out, err = e.CastVote(context.Background(), 2, ref, models.VoteUp)
	require.NoError(t, err)
	assert.Nil(t, out.Vote)
	assert.Equal(t, []int{0, 1}, []int{out.UpvoteCount, out.DownvoteCount})
}

func TestCastVoteSelfVoteSkipsKarma(t *testing.T) {
	db := newMemDB()
	db.addUser(1)
	db.addPost(10, 1)
	e := New(db)
	ref := models.ContentRef{Kind: models.KindPost, ID: 10}

	out, err := e.CastVote(context.Background(), 1, ref, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, out.UpvoteCount)
	assert.Equal(t, 0, db.users[1].Karma)
	assert.Empty(t, db.karmaLogs)

	_, err = e.CastVote(context.Background(), 1, ref, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 0, db.users[1].Karma)
	assert.Empty(t, db.karmaLogs)
}

func TestCastVoteCommentKarmaWeight(t *testing.T) {
	db := newMemDB()
	db.addUser(1)
	db.addUser(2)
	db.addPost(10, 1)
	db.addComment(20, 10, 1, "0001", 1)
	e := New(db)
	ref := models.ContentRef{Kind: models.KindComment, ID: 20}

	out, err := e.CastVote(context.Background(), 2, ref, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, out.UpvoteCount)
	// 评论权重 1
	assert.Equal(t, 1, db.users[1].Karma)
	require.Len(t, db.karmaLogs, 1)
	assert.Equal(t, ActionCommentUpvoted, db.karmaLogs[0].Action)
}

func TestCastVoteInvalidInput(t *testing.T) {
	db := newMemDB()
	db.addUser(1)
	db.addPost(10, 1)
	e := New(db)

	_, err := e.CastVote(context.Background(), 1, models.ContentRef{Kind: "story", ID: 10}, models.VoteUp)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.CastVote(context.Background(), 1, models.ContentRef{Kind: models.KindPost, ID: 10}, models.VoteNone)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.CastVote(context.Background(), 1, models.ContentRef{Kind: models.KindPost, ID: 99}, models.VoteUp)
	assert.ErrorIs(t, err, ErrNotFound)

	// 入参校验失败不应产生任何写入
	assert.Empty(t, db.votes)
	assert.Equal(t, 0, db.posts[10].UpvoteCount)
}
