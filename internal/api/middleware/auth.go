package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/pkg/jwt"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// 上下文中保存登录用户的键
const (
	ContextUserID   = "user_id"
	ContextUserName = "user_name"
)

// Authenticator 校验登录令牌（由 AuthService 实现）
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// CurrentUser 从 Cookie 中读取登录令牌并注入用户信息
// 未登录不拦截；令牌无效或已注销时清除 Cookie，按游客继续
func CurrentUser(auth Authenticator, cookie *config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			ClearAuthCookie(c, cookie)
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserName, claims.Name)
		c.Next()
	}
}

// RequireAuth 未登录时记住目标地址并跳转登录页
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetString(ContextUserID); id != "" {
			c.Next()
			return
		}

		if sess := websession.From(c); sess != nil {
			if c.Request.Method == http.MethodGet {
				sess.SetIntended(c.Request.URL.RequestURI())
			}
			sess.Flash(websession.FlashError, "Please log in to continue.")
			_ = sess.Save()
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// GuestOnly 已登录用户访问登录 / 注册页时回到首页
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserID) != "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ── 登录 Cookie ──

// SetAuthCookie 写入登录令牌 Cookie（HttpOnly）
func SetAuthCookie(c *gin.Context, cookie *config.CookieConfig, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(sameSite(cookie.SameSite))
	c.SetCookie(cookie.Name, token, maxAge, "/", cookie.Domain, cookie.Secure, true)
}

// ClearAuthCookie 删除登录令牌 Cookie
func ClearAuthCookie(c *gin.Context, cookie *config.CookieConfig) {
	c.SetSameSite(sameSite(cookie.SameSite))
	c.SetCookie(cookie.Name, "", -1, "/", cookie.Domain, cookie.Secure, true)
}

func sameSite(v string) http.SameSite {
	switch v {
	case "Strict", "strict":
		return http.SameSiteStrictMode
	case "None", "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
