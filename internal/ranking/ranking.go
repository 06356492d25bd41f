// Package ranking 提供纯函数形式的内容排序打分。
// 所有函数只依赖入参，不做 IO，排序场景可以直接复用。
package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"rootlink/internal/engine"
)

// Mode 排序模式
type Mode string

const (
	ModeTop           Mode = "top"
	ModeHot           Mode = "hot"
	ModeControversial Mode = "controversial"
	ModeTrending      Mode = "trending"
)

// ParseMode 解析排序模式字符串
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeTop, ModeHot, ModeControversial, ModeTrending:
		return Mode(s), true
	}
	return "", false
}

// Item 打分所需的内容快照
type Item struct {
	ID        uint
	Upvotes   int
	Downvotes int
	Views     int
	Comments  int
	CreatedAt time.Time
}

const (
	gravity     = 1.5 // 热度时间重力
	minAgeHours = 2.0 // 热度年龄下限，新内容在前两小时内同分同热度
)

// TrendConfig 趋势分的混合权重
type TrendConfig struct {
	WeightRatio   float64 // 赞占比权重
	WeightComment float64 // 每小时评论数权重
	WeightView    float64 // 每小时浏览数权重，浏览量级大所以权重给得极小
	Decay         float64 // 时间衰减指数
}

var DefaultTrendConfig = TrendConfig{
	WeightRatio:   1.0,
	WeightComment: 2.0,
	WeightView:    0.01,
	Decay:         0.8,
}

// Top 净赞数
func Top(up, down int) int {
	return up - down
}

// Hot 热度分：sign(s) × log10(max(|s|,1)) / max(ageHours,2)^1.5。
// 同一公式同时用于帖子和评论。净赞数取对数平滑，
// 时间项随内容年龄单调衰减，年龄下限 2 小时防止刚发布的内容分母过小。
func Hot(up, down int, createdAt, now time.Time) float64 {
	s := float64(up - down)
	sign := 0.0
	if s > 0 {
		sign = 1
	} else if s < 0 {
		sign = -1
	}
	order := math.Log10(math.Max(math.Abs(s), 1))

	age := now.Sub(createdAt).Hours()
	if age < minAgeHours {
		age = minAgeHours
	}
	return sign * order / math.Pow(age, gravity)
}

// Controversial 争议分：(up+down) / max(|up-down|,1)。
// 只在两侧都有票时有意义，单边投票返回 0（不参与争议排序）。
// 交换 up/down 结果不变。
func Controversial(up, down int) float64 {
	if up <= 0 || down <= 0 {
		return 0
	}
	diff := up - down
	if diff < 0 {
		diff = -diff
	}
	if diff < 1 {
		diff = 1
	}
	return float64(up+down) / float64(diff)
}

// Trending 趋势分：互动值 × 时间衰减。
// 互动值混合赞占比、每小时评论数、每小时浏览数，
// 时间衰减为 1/max(ageHours,1)^0.8。
func Trending(it Item, now time.Time) float64 {
	return trending(it, now, DefaultTrendConfig)
}

func trending(it Item, now time.Time, cfg TrendConfig) float64 {
	ageHours := now.Sub(it.CreatedAt).Hours()
	if ageHours < 1 {
		ageHours = 1
	}

	ratio := 0.0
	if total := it.Upvotes + it.Downvotes; total > 0 {
		ratio = float64(it.Upvotes) / float64(total)
	}
	engagement := ratio*cfg.WeightRatio +
		(float64(it.Comments)/ageHours)*cfg.WeightComment +
		(float64(it.Views)/ageHours)*cfg.WeightView

	return engagement / math.Pow(ageHours, cfg.Decay)
}

// Rank 按指定模式排序并返回新切片，入参不被修改。
// 同分时新内容在前。计数为负说明上游数据已坏，直接拒绝。
func Rank(mode Mode, items []Item, now time.Time) ([]Item, error) {
	if _, ok := ParseMode(string(mode)); !ok {
		return nil, fmt.Errorf("%w: unknown ranking mode %q", engine.ErrInvalidArgument, mode)
	}
	for _, it := range items {
		if it.Upvotes < 0 || it.Downvotes < 0 || it.Views < 0 || it.Comments < 0 {
			return nil, fmt.Errorf("%w: negative counters on item %d", engine.ErrInvalidArgument, it.ID)
		}
	}

	score := scoreFunc(mode, now)
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := score(out[i]), score(out[j])
		if si != sj {
			return si > sj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func scoreFunc(mode Mode, now time.Time) func(Item) float64 {
	switch mode {
	case ModeHot:
		return func(it Item) float64 { return Hot(it.Upvotes, it.Downvotes, it.CreatedAt, now) }
	case ModeControversial:
		return func(it Item) float64 { return Controversial(it.Upvotes, it.Downvotes) }
	case ModeTrending:
		return func(it Item) float64 { return Trending(it, now) }
	default:
		return func(it Item) float64 { return float64(Top(it.Upvotes, it.Downvotes)) }
	}
}
