package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/internal/api/middleware"
	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cookie  *config.CookieConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cookie *config.CookieConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: cookie}
}

// ShowLogin GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "auth/login", gin.H{"Title": "Login"})
}

// Login 用户登录
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, "/login")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			withErrors(c, map[string]string{"email": err.Error()}, "/login")
			return
		}
		serverError(c, err)
		return
	}

	h.startSession(c, result)
	target := "/"
	if sess := websession.From(c); sess != nil {
		target = sess.PopIntended("/")
	}
	redirect(c, target)
}

// ShowRegister GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "auth/register", gin.H{"Title": "Register"})
}

// Register 注册并直接登录
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, "/register")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if fe, ok := pkgerrors.AsFieldError(err); ok {
			withErrors(c, map[string]string{fe.Field: fe.Message}, "/register")
			return
		}
		serverError(c, err)
		return
	}

	h.startSession(c, result)
	flashRedirect(c, websession.FlashSuccess, "Welcome to ITS MentorMatch, "+result.Name+"!", "/")
}

// Logout 注销令牌并清除 Cookie
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			// 令牌已失效不影响登出
			_ = c.Error(err)
		}
	}

	middleware.ClearAuthCookie(c, h.cookie)
	if sess := websession.From(c); sess != nil {
		sess.RotateCSRF()
	}
	redirect(c, "/login")
}

// startSession 写入登录 Cookie，并更换 CSRF 令牌
func (h *AuthHandler) startSession(c *gin.Context, result *dto.LoginResult) {
	middleware.SetAuthCookie(c, h.cookie, result.Token, time.Unix(result.ExpiresAt, 0))
	if sess := websession.From(c); sess != nil {
		sess.RotateCSRF()
	}
}
