package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// RateLimiter 滑动窗口限流（由 pkg/redis 实现）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按客户端 IP 与路由限制登录 / 注册提交次数
// limiter 为 nil 或 Redis 出错时降级放行
// 超限时带错误提示跳回原页面
func RateLimit(limiter RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("限流检查失败，降级放行", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			if sess := websession.From(c); sess != nil {
				sess.Flash(websession.FlashError, "Too many attempts. Please try again later.")
				_ = sess.Save()
			}
			c.Redirect(http.StatusFound, c.Request.URL.Path)
			c.Abort()
			return
		}

		c.Next()
	}
}
