package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/api/middleware"
	"github.com/saelmaa/pso-itsmentormatch/pkg/response"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// Flashes 模板中的一次性提示
type Flashes struct {
	Success []string
	Error   []string
}

// render 渲染页面：合并 flash、字段错误、表单回填、CSRF 令牌与当前用户
// 会话必须在写出响应体之前保存
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["Errors"] = map[string]string{}
	data["Old"] = map[string]string{}
	data["Flash"] = Flashes{}
	if sess := websession.From(c); sess != nil {
		token, _ := sess.CSRFToken()
		data["CSRF"] = token
		data["Flash"] = Flashes{
			Success: sess.Flashes(websession.FlashSuccess),
			Error:   sess.Flashes(websession.FlashError),
		}
		if errs := sess.Errors(); errs != nil {
			data["Errors"] = errs
		}
		if old := sess.OldInput(); old != nil {
			data["Old"] = old
		}
		if err := sess.Save(); err != nil {
			_ = c.Error(err)
		}
	}

	data["AuthID"] = c.GetString(middleware.ContextUserID)
	data["AuthName"] = CurrentUserName(c)
	data["Path"] = c.Request.URL.Path
	data["Query"] = c.Request.URL.Query()

	c.HTML(status, name, data)
}

// redirect 保存会话后 302 跳转
func redirect(c *gin.Context, location string) {
	if sess := websession.From(c); sess != nil {
		if err := sess.Save(); err != nil {
			_ = c.Error(err)
		}
	}
	c.Redirect(http.StatusFound, location)
}

// flashRedirect 带一次性提示跳转
func flashRedirect(c *gin.Context, kind, message, location string) {
	if sess := websession.From(c); sess != nil {
		sess.Flash(kind, message)
	}
	redirect(c, location)
}

// withErrors 带字段错误与已填写内容跳回表单
func withErrors(c *gin.Context, errs map[string]string, location string) {
	if sess := websession.From(c); sess != nil {
		if msg, ok := errs[formErrorKey]; ok {
			sess.Flash(websession.FlashError, msg)
			delete(errs, formErrorKey)
		}
		sess.SetErrors(errs)
		_ = c.Request.ParseForm()
		sess.SetOldInput(c.Request.PostForm)
	}
	redirect(c, location)
}

// backURL 同站 Referer 的路径，否则返回 fallback
func backURL(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || u.Path == "" {
		return fallback
	}
	return u.RequestURI()
}

// ── 错误页 ──

// renderError 浏览器返回错误页，JSON 客户端返回统一错误结构
func renderError(c *gin.Context, status int) {
	if response.WantsJSON(c) {
		response.Error(c, status, status, http.StatusText(status))
		c.Abort()
		return
	}
	render(c, status, fmt.Sprintf("errors/%d", status), gin.H{
		"Title":     http.StatusText(status),
		"Status":    status,
		"RequestID": middleware.GetRequestID(c),
	})
	c.Abort()
}

// serverError 记录到请求上下文（由 Logger 中间件输出）并渲染 500
func serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	renderError(c, http.StatusInternalServerError)
}

// NotFound 未匹配路由
func NotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound)
}

// Forbidden 无权访问（CSRF 校验失败同样使用）
func Forbidden(c *gin.Context) {
	renderError(c, http.StatusForbidden)
}
