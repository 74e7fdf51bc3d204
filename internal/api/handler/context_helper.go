package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/api/middleware"
)

// MustGetUserID 从 Gin 上下文中安全提取当前登录用户 ID。
// RequireAuth 未正确挂载时跳转登录页并返回 false，调用方应直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.ContextUserID)
	if id == "" {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return "", false
	}
	return id, true
}

// CurrentUserName 当前登录用户姓名，游客为空
func CurrentUserName(c *gin.Context) string {
	return c.GetString(middleware.ContextUserName)
}
