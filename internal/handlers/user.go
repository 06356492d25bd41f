package handlers

import (
	"fmt"
	"net/http"

	"rootlink/internal/db"
	"rootlink/internal/engine"
	"rootlink/internal/models"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile 用户主页：基本信息加当前积分
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: user %d", engine.ErrNotFound, id))
		return
	}

	c.JSON(http.StatusOK, user)
}

// KarmaLogs 积分明细
func (h *UserHandler) KarmaLogs(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		JSONError(c, fmt.Errorf("%w: user %d", engine.ErrNotFound, id))
		return
	}

	var logs []models.KarmaLog
	db.DB.Where("user_id = ?", id).
		Order("created_at DESC").
		Limit(100).
		Find(&logs)

	c.JSON(http.StatusOK, gin.H{"karma": user.Karma, "logs": logs})
}
