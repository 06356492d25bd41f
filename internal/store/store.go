// Package store 用 GORM/Postgres 实现 engine 的存储接口。
// 数据库错误在这里统一翻译成 engine 的错误分级。
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rootlink/internal/engine"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DB 满足 engine.DB
type DB struct {
	gdb         *gorm.DB
	lockTimeout time.Duration
}

// Option 构造选项
type Option func(*DB)

// WithLockTimeout 设置事务内等锁的上限，超时翻译成 Conflict 让调用方重试
func WithLockTimeout(d time.Duration) Option {
	return func(db *DB) { db.lockTimeout = d }
}

func New(gdb *gorm.DB, opts ...Option) *DB {
	db := &DB{gdb: gdb, lockTimeout: 3 * time.Second}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (d *DB) Content() engine.ContentStore  { return &contentStore{gdb: d.gdb} }
func (d *DB) Votes() engine.VoteStore       { return &voteStore{gdb: d.gdb} }
func (d *DB) Users() engine.UserStore       { return &userStore{gdb: d.gdb} }
func (d *DB) Comments() engine.CommentStore { return &commentStore{gdb: d.gdb} }

// Atomic 把 fn 放进一个数据库事务执行。
// 事务内用 SET LOCAL lock_timeout 限制等锁时间，拿不到锁不无限阻塞。
func (d *DB) Atomic(ctx context.Context, fn func(s engine.Stores) error) error {
	err := d.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(&txStores{tx: tx})
	})
	return translateError(err)
}

// txStores 是绑定到单个事务的一组存储
type txStores struct {
	tx *gorm.DB
}

func (s *txStores) Content() engine.ContentStore  { return &contentStore{gdb: s.tx} }
func (s *txStores) Votes() engine.VoteStore       { return &voteStore{gdb: s.tx} }
func (s *txStores) Users() engine.UserStore       { return &userStore{gdb: s.tx} }
func (s *txStores) Comments() engine.CommentStore { return &commentStore{gdb: s.tx} }

// translateError 把底层错误翻译成核心错误分级。
// 已经是核心错误的原样放行，避免重复包装。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{engine.ErrNotFound, engine.ErrInvalidArgument, engine.ErrConflict, engine.ErrInternal} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", engine.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation，投票唯一索引兜底命中
			return fmt.Errorf("%w: %v", engine.ErrConflict, err)
		case "55P03", "40001", "40P01": // lock_not_available / serialization_failure / deadlock_detected
			return fmt.Errorf("%w: %v", engine.ErrConflict, err)
		}
	}
	return fmt.Errorf("%w: %v", engine.ErrInternal, err)
}
