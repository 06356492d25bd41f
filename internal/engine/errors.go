package engine

import (
	"errors"
)

// 错误分级，调用方用 errors.Is 判断如何处理：
// NotFound/InvalidArgument 直接报错，Conflict 可重试，Internal 记日志后报 500。
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)
