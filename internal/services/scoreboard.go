package services

import (
	"log"
	"sync"
	"time"

	"rootlink/internal/db"
	"rootlink/internal/models"
	"rootlink/internal/ranking"

	"github.com/jonboulle/clockwork"
)

// Scoreboard 异步重算帖子热度分的服务。
// 投票和评论写入后把帖子丢进队列，后台批量用 ranking.Hot 刷新
// 冗余的 hot_rank 列，榜单 SQL 直接按该列排序。
type Scoreboard struct {
	queue   chan uint // 待更新的帖子 ID 队列
	pending map[uint]bool
	mu      sync.Mutex
	clock   clockwork.Clock
	update  func(postID uint) // 单帖刷新实现，测试时可替换
}

var (
	scoreboard *Scoreboard
	once       sync.Once
)

// GetScoreboard 获取单例服务
func GetScoreboard() *Scoreboard {
	once.Do(func() {
		scoreboard = newScoreboard(clockwork.NewRealClock(), nil)
		// 启动后台 worker
		go scoreboard.worker()
	})
	return scoreboard
}

func newScoreboard(clock clockwork.Clock, update func(postID uint)) *Scoreboard {
	s := &Scoreboard{
		queue:   make(chan uint, 1000), // 缓冲队列，防止阻塞
		pending: make(map[uint]bool),
		clock:   clock,
	}
	if update == nil {
		update = s.updatePostHotRank
	}
	s.update = update
	return s
}

// ScheduleUpdate 将帖子加入更新队列（异步）。
// 带去重，短时间内同一帖子只算一次。
func (s *Scoreboard) ScheduleUpdate(postID uint) {
	s.mu.Lock()
	if s.pending[postID] {
		s.mu.Unlock()
		return
	}
	s.pending[postID] = true
	s.mu.Unlock()

	// 非阻塞发送到队列
	select {
	case s.queue <- postID:
	default:
		// 队列满了，移除 pending 标记
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
		log.Printf("热度更新队列已满，跳过帖子 %d", postID)
	}
}

// worker 后台批量处理队列中的更新请求
func (s *Scoreboard) worker() {
	batch := make([]uint, 0, 50)
	ticker := s.clock.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case postID := <-s.queue:
			batch = append(batch, postID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.Chan():
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *Scoreboard) processBatch(postIDs []uint) {
	for _, postID := range postIDs {
		s.update(postID)

		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
	}
}

// updatePostHotRank 重算并落库单个帖子的热度分
func (s *Scoreboard) updatePostHotRank(postID uint) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		log.Printf("更新热度失败：帖子 %d 不存在", postID)
		return
	}

	score := ranking.Hot(post.UpvoteCount, post.DownvoteCount, post.CreatedAt, s.clock.Now())

	if err := db.DB.Model(&post).UpdateColumn("hot_rank", score).Error; err != nil {
		log.Printf("更新帖子 %d 热度失败: %v", postID, err)
	}
}

// StartScheduledRefresh 启动定时全量刷新（每天凌晨 3 点）。
// 热度分随时间自然衰减，没有新投票的帖子也要定期重算。
func (s *Scoreboard) StartScheduledRefresh() {
	go func() {
		for {
			now := s.clock.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			s.clock.Sleep(next.Sub(now))

			log.Println("开始定时刷新帖子热度...")
			s.refreshHotPosts()
			log.Println("定时刷新帖子热度完成")
		}
	}()
}

// refreshHotPosts 刷新最近 7 天和当前热度最高的 30 篇帖子（边遍历边去重）
func (s *Scoreboard) refreshHotPosts() {
	processed := make(map[uint]bool)
	count := 0

	sevenDaysAgo := s.clock.Now().AddDate(0, 0, -7)
	var recentPosts []models.Post
	db.DB.Where("created_at >= ?", sevenDaysAgo).Select("id").Find(&recentPosts)
	for _, p := range recentPosts {
		s.update(p.ID)
		processed[p.ID] = true
		count++
	}

	var topPosts []models.Post
	db.DB.Order("hot_rank DESC").Limit(30).Select("id").Find(&topPosts)
	for _, p := range topPosts {
		if !processed[p.ID] {
			s.update(p.ID)
			count++
		}
	}

	log.Printf("本次刷新 %d 篇帖子热度", count)
}
