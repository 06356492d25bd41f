package handlers

import (
	"fmt"
	"net/http"

	"rootlink/internal/db"
	"rootlink/internal/engine"
	"rootlink/internal/models"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Create 发布帖子
func (h *PostHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInvalidArgument, err))
		return
	}

	post := models.Post{
		Pid:     uuid.NewString(),
		UserID:  user.ID,
		Title:   req.Title,
		URL:     req.URL,
		Content: req.Content,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: %v", engine.ErrInternal, err))
		return
	}

	utils.GetCache().DeletePrefix("feed:")

	c.JSON(http.StatusCreated, post)
}

// Detail 帖子详情，顺带累加浏览量（趋势分的输入之一）
func (h *PostHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: post %q", engine.ErrNotFound, pid))
		return
	}

	// 浏览量原子自增，不参与投票事务
	db.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	post.Views++

	c.JSON(http.StatusOK, post)
}
