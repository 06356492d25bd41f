package middleware

import (
	"net/http"

	"rootlink/internal/db"
	"rootlink/internal/models"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// 身份鉴别在上游网关完成，这里只信任网关透传的用户 ID 头
const UserIDHeader = "X-User-ID"

// LoadUser 从网关头加载用户并放入 context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := utils.StringToUint(c.GetHeader(UserIDHeader)); id != 0 {
			var user models.User
			result := db.DB.First(&user, id)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is resolved for write operations
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}
