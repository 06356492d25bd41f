package engine

import (
	"context"
	"errors"
)

// Engine 投票聚合与内容排序核心。
// 只依赖存储接口，持久化细节（GORM/Postgres）在 internal/store 里实现。
type Engine struct {
	db      DB
	retries int // 锁冲突时的有限重试次数，超出后把 Conflict 交还调用方
}

func New(db DB) *Engine {
	return &Engine{db: db, retries: 2}
}

// withRetry 在事务遇到 Conflict 时做有限次重试。
// 只重试冲突类错误，其余错误原样上抛，重试策略由更上层的调用方掌控。
func (e *Engine) withRetry(ctx context.Context, fn func(s Stores) error) error {
	var err error
	for attempt := 0; attempt <= e.retries; attempt++ {
		err = e.db.Atomic(ctx, fn)
		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return err
}
