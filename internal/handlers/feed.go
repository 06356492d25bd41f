package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"rootlink/internal/db"
	"rootlink/internal/engine"
	"rootlink/internal/models"
	"rootlink/internal/ranking"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

const (
	feedPerPage     = 30
	feedWindowSize  = 200              // 参与精排的候选窗口
	feedRecentDays  = 7                // 争议/趋势榜只看最近一周
	feedCacheTTL    = 30 * time.Second // 榜单缓存，写入时主动失效
)

// List 排序榜单：/feed/top /feed/hot /feed/controversial /feed/trending。
// SQL 先按冗余列圈出候选窗口，再用 ranking.Rank 对快照精排。
func (h *FeedHandler) List(c *gin.Context) {
	mode, ok := ranking.ParseMode(c.Param("mode"))
	if !ok {
		JSONError(c, fmt.Errorf("%w: unknown feed mode %q", engine.ErrInvalidArgument, c.Param("mode")))
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	cacheKey := fmt.Sprintf("feed:%s:page:%d", mode, page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			c.JSON(http.StatusOK, hData)
			return
		}
	}

	posts, err := h.candidateWindow(mode)
	if err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInternal, err))
		return
	}

	byID := make(map[uint]models.Post, len(posts))
	items := make([]ranking.Item, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		items = append(items, ranking.Item{
			ID:        p.ID,
			Upvotes:   p.UpvoteCount,
			Downvotes: p.DownvoteCount,
			Views:     p.Views,
			Comments:  p.CommentCount,
			CreatedAt: p.CreatedAt,
		})
	}

	ordered, err := ranking.Rank(mode, items, time.Now())
	if err != nil {
		JSONError(c, err)
		return
	}

	// 争议榜只收两侧都有票的内容
	if mode == ranking.ModeControversial {
		filtered := ordered[:0]
		for _, it := range ordered {
			if it.Upvotes > 0 && it.Downvotes > 0 {
				filtered = append(filtered, it)
			}
		}
		ordered = filtered
	}

	totalPages := int(math.Ceil(float64(len(ordered)) / float64(feedPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * feedPerPage
	if start > len(ordered) {
		start = len(ordered)
	}
	end := start + feedPerPage
	if end > len(ordered) {
		end = len(ordered)
	}

	pagePosts := make([]models.Post, 0, end-start)
	for _, it := range ordered[start:end] {
		pagePosts = append(pagePosts, byID[it.ID])
	}

	data := gin.H{
		"mode":        mode,
		"posts":       pagePosts,
		"page":        page,
		"total_pages": totalPages,
	}
	utils.GetCache().Set(cacheKey, data, feedCacheTTL)
	c.JSON(http.StatusOK, data)
}

// New 最新帖子，不走打分
func (h *FeedHandler) New(c *gin.Context) {
	var posts []models.Post
	if err := db.DB.Preload("User").
		Order("created_at DESC").
		Limit(feedPerPage).
		Find(&posts).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInternal, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": "new", "posts": posts})
}

func (h *FeedHandler) candidateWindow(mode ranking.Mode) ([]models.Post, error) {
	q := db.DB.Preload("User").Limit(feedWindowSize)
	switch mode {
	case ranking.ModeTop:
		q = q.Order("(upvote_count - downvote_count) DESC, created_at DESC")
	case ranking.ModeHot:
		// 候选按后台刷新的 hot_rank 圈定，精确分数由 Rank 现算
		q = q.Order("hot_rank DESC, created_at DESC")
	default:
		cutoff := time.Now().AddDate(0, 0, -feedRecentDays)
		q = q.Where("created_at >= ?", cutoff).Order("created_at DESC").Limit(feedWindowSize * 2)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
