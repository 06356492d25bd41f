package handlers

import (
	"errors"
	"log"
	"net/http"

	"rootlink/internal/engine"
	"rootlink/internal/middleware"
	"rootlink/internal/models"

	"github.com/gin-gonic/gin"
)

// statusFor 把核心错误分级映射到 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// JSONError 统一错误响应。Internal 级别只回状态码，细节进日志
func JSONError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(code, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// CurrentUser 取出 LoadUser 放进 context 的用户
func CurrentUser(c *gin.Context) *models.User {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil
	}
	return user.(*models.User)
}
