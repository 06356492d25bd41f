package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rootlink/internal/models"
)

// memDB 内存版存储，满足 DB 接口，供核心逻辑测试使用。
// Atomic 用一把互斥锁把整个事务串行化，模拟数据库的并发控制。
type memDB struct {
	txMu sync.Mutex // 事务级串行化
	mu   sync.Mutex // 单操作保护

	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	users    map[uint]*models.User
	votes    map[uint]*models.Vote

	karmaLogs []models.KarmaLog

	nextVoteID    uint
	nextCommentID uint
}

func newMemDB() *memDB {
	return &memDB{
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		users:    make(map[uint]*models.User),
		votes:    make(map[uint]*models.Vote),
	}
}

func (d *memDB) addUser(id uint) *models.User {
	u := &models.User{ID: id, Username: fmt.Sprintf("user%d", id), Email: fmt.Sprintf("u%d@example.com", id)}
	d.users[id] = u
	return u
}

func (d *memDB) addPost(id, authorID uint) *models.Post {
	p := &models.Post{ID: id, Pid: fmt.Sprintf("p%d", id), UserID: authorID, Title: fmt.Sprintf("post %d", id)}
	d.posts[id] = p
	return p
}

func (d *memDB) addComment(id, postID, authorID uint, path string, depth int) *models.Comment {
	c := &models.Comment{ID: id, Cid: fmt.Sprintf("c%d", id), PostID: postID, UserID: authorID, Path: path, Depth: depth, Content: "x"}
	d.comments[id] = c
	if id > d.nextCommentID {
		d.nextCommentID = id
	}
	return c
}

func (d *memDB) Content() ContentStore  { return (*memContent)(d) }
func (d *memDB) Votes() VoteStore       { return (*memVotes)(d) }
func (d *memDB) Users() UserStore       { return (*memUsers)(d) }
func (d *memDB) Comments() CommentStore { return (*memComments)(d) }

func (d *memDB) Atomic(_ context.Context, fn func(s Stores) error) error {
	d.txMu.Lock()
	defer d.txMu.Unlock()
	return fn(d)
}

type memContent memDB

func (m *memContent) Get(_ context.Context, ref models.ContentRef) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ref.Kind {
	case models.KindPost:
		if p, ok := m.posts[ref.ID]; ok {
			return &Content{Ref: ref, AuthorID: p.UserID, Upvotes: p.UpvoteCount, Downvotes: p.DownvoteCount, CreatedAt: p.CreatedAt}, nil
		}
	case models.KindComment:
		if c, ok := m.comments[ref.ID]; ok {
			return &Content{Ref: ref, AuthorID: c.UserID, Upvotes: c.UpvoteCount, Downvotes: c.DownvoteCount, CreatedAt: c.CreatedAt}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Kind, ref.ID)
}

func (m *memContent) ApplyCounterDelta(_ context.Context, ref models.ContentRef, dUp, dDown int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ref.Kind {
	case models.KindPost:
		if p, ok := m.posts[ref.ID]; ok {
			p.UpvoteCount += dUp
			p.DownvoteCount += dDown
			return nil
		}
	case models.KindComment:
		if c, ok := m.comments[ref.ID]; ok {
			c.UpvoteCount += dUp
			c.DownvoteCount += dDown
			return nil
		}
	}
	return fmt.Errorf("%w: %s %d", ErrNotFound, ref.Kind, ref.ID)
}

func (m *memContent) Counts(ctx context.Context, ref models.ContentRef) (int, int, error) {
	c, err := m.Get(ctx, ref)
	if err != nil {
		return 0, 0, err
	}
	return c.Upvotes, c.Downvotes, nil
}

type memVotes memDB

func (m *memVotes) FindForUpdate(_ context.Context, userID uint, ref models.ContentRef) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.votes {
		if v.UserID == userID && v.ContentKind == ref.Kind && v.ContentID == ref.ID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: vote", ErrNotFound)
}

func (m *memVotes) Create(_ context.Context, v *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.votes {
		if existing.UserID == v.UserID && existing.ContentKind == v.ContentKind && existing.ContentID == v.ContentID {
			return fmt.Errorf("%w: duplicate vote", ErrConflict)
		}
	}
	m.nextVoteID++
	v.ID = m.nextVoteID
	cp := *v
	m.votes[v.ID] = &cp
	return nil
}

func (m *memVotes) UpdateType(_ context.Context, voteID uint, t models.VoteType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.votes[voteID]
	if !ok {
		return fmt.Errorf("%w: vote %d", ErrNotFound, voteID)
	}
	v.Type = t
	return nil
}

func (m *memVotes) Delete(_ context.Context, voteID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.votes, voteID)
	return nil
}

type memUsers memDB

func (m *memUsers) Get(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
}

func (m *memUsers) ApplyKarmaDelta(_ context.Context, userID uint, delta int, action string, ref models.ContentRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	u.Karma += delta
	m.karmaLogs = append(m.karmaLogs, models.KarmaLog{
		UserID:      userID,
		Amount:      delta,
		Action:      action,
		ContentKind: ref.Kind,
		ContentID:   ref.ID,
	})
	return nil
}

type memComments memDB

func (m *memComments) Get(_ context.Context, commentID uint) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.comments[commentID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
}

func (m *memComments) NextRootSegment(_ context.Context, postID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[postID]
	if !ok {
		return 0, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	p.ReplySeq++
	return p.ReplySeq, nil
}

func (m *memComments) NextChildSegment(_ context.Context, parentID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[parentID]
	if !ok {
		return 0, fmt.Errorf("%w: comment %d", ErrNotFound, parentID)
	}
	c.ReplySeq++
	return c.ReplySeq, nil
}

func (m *memComments) Create(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCommentID++
	c.ID = m.nextCommentID
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memComments) IncrementCommentCount(_ context.Context, postID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[postID]
	if !ok {
		return fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	p.CommentCount++
	return nil
}

func (m *memComments) Subtree(_ context.Context, postID uint, pathPrefix string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID && len(c.Path) > len(pathPrefix) && c.Path[:len(pathPrefix)] == pathPrefix {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
