package handlers

import (
	"fmt"
	"net/http"

	"rootlink/internal/db"
	"rootlink/internal/engine"
	"rootlink/internal/models"
	"rootlink/internal/services"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	engine *engine.Engine
}

func NewCommentHandler(e *engine.Engine) *CommentHandler {
	return &CommentHandler{engine: e}
}

type createCommentRequest struct {
	Content   string `json:"content" binding:"required"`
	ParentCid string `json:"parent_cid"` // 为空表示根评论
}

// Create 发布评论。路径、深度由核心在事务内分配。
func (h *CommentHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: post %q", engine.ErrNotFound, pid))
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err))
		return
	}

	var parentID *uint
	if req.ParentCid != "" {
		var parent models.Comment
		if err := db.DB.Where("cid = ?", req.ParentCid).First(&parent).Error; err != nil {
			JSONError(c, fmt.Errorf("%w: parent comment %q", engine.ErrNotFound, req.ParentCid))
			return
		}
		parentID = &parent.ID
	}

	comment, err := h.engine.CreateComment(c.Request.Context(), engine.CreateCommentParams{
		PostID:      post.ID,
		UserID:      user.ID,
		ParentID:    parentID,
		Content:     req.Content,
		ContentHTML: utils.RenderMarkdown(req.Content),
	})
	if err != nil {
		JSONError(c, err)
		return
	}

	utils.GetCache().DeletePrefix("feed:")

	// 评论数变了，异步重算帖子热度
	services.GetScoreboard().ScheduleUpdate(post.ID)

	c.JSON(http.StatusCreated, comment)
}

// ListByPost 返回帖子的全部评论，按 path 升序即树的先序遍历，
// 客户端按 depth 缩进即可还原树形。
func (h *CommentHandler) ListByPost(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: post %q", engine.ErrNotFound, pid))
		return
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("path ASC").
		Find(&comments).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInternal, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Subtree 返回某条评论的全部后代
func (h *CommentHandler) Subtree(c *gin.Context) {
	cid := c.Param("cid")

	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: comment %q", engine.ErrNotFound, cid))
		return
	}

	descendants, err := h.engine.Subtree(c.Request.Context(), comment.ID)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment, "descendants": descendants})
}
