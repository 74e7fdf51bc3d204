package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// CSRFField 表单中携带令牌的隐藏字段
const CSRFField = "_token"

// CSRFHeader 脚本请求携带令牌的请求头
const CSRFHeader = "X-CSRF-Token"

// CSRF 校验非安全方法请求携带的令牌，失败时交由 onFail 渲染
// 依赖 websession.Middleware 先行挂载
func CSRF(onFail gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sess := websession.From(c)
		token := c.PostForm(CSRFField)
		if token == "" {
			token = c.GetHeader(CSRFHeader)
		}
		if sess == nil || !sess.VerifyCSRF(token) {
			onFail(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
