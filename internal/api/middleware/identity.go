package middleware

import (
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/response"
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware 信任网关注入的 X-User-ID，鉴权在网关完成
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(consts.HeaderUserID)
		userID, err := strconv.ParseUint(raw, 10, 64)
		if raw == "" || err != nil || userID == 0 {
			response.Fail(c, response.Unauthorized, "缺少用户身份")
			c.Abort()
			return
		}

		c.Set(consts.UserIDKey, userID)
		newCtx := context.WithValue(c.Request.Context(), consts.UserIDKey, userID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
