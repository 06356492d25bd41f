package models

// ContentKind 标识可投票内容的类型
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

// Valid 判断内容类型是否合法
func (k ContentKind) Valid() bool {
	return k == KindPost || k == KindComment
}

// KarmaWeight 返回该类型内容的积分权重：帖子 2，评论 1
func (k ContentKind) KarmaWeight() int {
	if k == KindPost {
		return 2
	}
	return 1
}

// ContentRef 指向一条具体内容。入口处解析一次，之后在核心逻辑中作为值传递
type ContentRef struct {
	Kind ContentKind
	ID   uint
}

// VoteType 投票类型：1 赞，-1 踩，0 仅用于状态迁移表示"无投票"
type VoteType int8

const (
	VoteNone VoteType = 0
	VoteUp   VoteType = 1
	VoteDown VoteType = -1
)

// ParseVoteType 解析请求中的投票类型字符串
func ParseVoteType(s string) (VoteType, bool) {
	switch s {
	case "up":
		return VoteUp, true
	case "down":
		return VoteDown, true
	}
	return VoteNone, false
}

func (t VoteType) String() string {
	switch t {
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	}
	return "none"
}
