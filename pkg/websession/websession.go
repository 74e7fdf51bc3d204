package websession

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/gob"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/saelmaa/pso-itsmentormatch/config"
)

// 浏览器会话保存的键
const (
	keyErrors   = "_errors"
	keyOld      = "_old_input"
	keyIntended = "_intended"
	keyCSRF     = "_csrf_token"

	// FlashSuccess / FlashError flash 消息类别
	FlashSuccess = "success"
	FlashError   = "error"

	contextKey = "websession"
)

func init() {
	gob.Register(map[string]string{})
}

// Store 基于 gorilla/sessions 的 Cookie 会话仓库
type Store struct {
	store sessions.Store
	name  string
}

// NewStore 创建 Cookie 会话仓库
func NewStore(cfg *config.SessionConfig, secure bool) *Store {
	cs := sessions.NewCookieStore([]byte(cfg.Secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs, name: cfg.Name}
}

// NewWithStore 使用任意 gorilla Store 构造（测试使用）
func NewWithStore(store sessions.Store, name string) *Store {
	return &Store{store: store, name: name}
}

// Session 单次请求的浏览器会话
type Session struct {
	raw *sessions.Session
	r   *http.Request
	w   http.ResponseWriter
}

// Load 读取请求对应的会话；Cookie 损坏时返回一个新会话
func (s *Store) Load(r *http.Request, w http.ResponseWriter) *Session {
	raw, err := s.store.Get(r, s.name)
	if err != nil {
		// 密钥轮换或 Cookie 篡改：丢弃旧值
		raw, _ = s.store.New(r, s.name)
	}
	return &Session{raw: raw, r: r, w: w}
}

// Save 将会话写回响应，必须在写出响应体之前调用
func (s *Session) Save() error {
	return s.raw.Save(s.r, s.w)
}

// ── Flash ──

// Flash 追加一条 flash 消息
func (s *Session) Flash(kind, message string) {
	s.raw.AddFlash(message, kind)
}

// Flashes 取出并清空某一类别的 flash 消息
func (s *Session) Flashes(kind string) []string {
	raw := s.raw.Flashes(kind)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// ── 字段错误与旧输入 ──

// SetErrors 保存字段级校验错误，下次读取后清除
func (s *Session) SetErrors(errs map[string]string) {
	s.raw.Values[keyErrors] = errs
}

// Errors 取出并清空字段级校验错误
func (s *Session) Errors() map[string]string {
	return s.popMap(keyErrors)
}

// SetOldInput 保存表单旧输入；密码类字段不回填
func (s *Session) SetOldInput(form url.Values) {
	old := make(map[string]string, len(form))
	for k, v := range form {
		if isSecretField(k) || len(v) == 0 {
			continue
		}
		old[k] = v[0]
	}
	s.raw.Values[keyOld] = old
}

// OldInput 取出并清空旧输入
func (s *Session) OldInput() map[string]string {
	return s.popMap(keyOld)
}

func (s *Session) popMap(key string) map[string]string {
	v, ok := s.raw.Values[key]
	if !ok {
		return map[string]string{}
	}
	delete(s.raw.Values, key)
	m, ok := v.(map[string]string)
	if !ok {
		return map[string]string{}
	}
	return m
}

func isSecretField(name string) bool {
	switch name {
	case "password", "password_confirmation", "new_password", "new_password_confirmation", "_token":
		return true
	}
	return false
}

// ── 登录后跳转 ──

// SetIntended 记录登录前访问的地址
func (s *Session) SetIntended(path string) {
	s.raw.Values[keyIntended] = path
}

// PopIntended 取出登录前访问的地址，不存在时返回 fallback
func (s *Session) PopIntended(fallback string) string {
	v, ok := s.raw.Values[keyIntended].(string)
	delete(s.raw.Values, keyIntended)
	if !ok || v == "" {
		return fallback
	}
	return v
}

// ── CSRF ──

// CSRFToken 返回当前会话的 CSRF 令牌，不存在时生成；created 表示本次新生成
func (s *Session) CSRFToken() (token string, created bool) {
	if t, ok := s.raw.Values[keyCSRF].(string); ok && t != "" {
		return t, false
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	t := base64.RawURLEncoding.EncodeToString(buf)
	s.raw.Values[keyCSRF] = t
	return t, true
}

// VerifyCSRF 常量时间比较提交的令牌
func (s *Session) VerifyCSRF(submitted string) bool {
	t, ok := s.raw.Values[keyCSRF].(string)
	if !ok || t == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(t), []byte(submitted)) == 1
}

// RotateCSRF 登录 / 登出后更换令牌
func (s *Session) RotateCSRF() string {
	delete(s.raw.Values, keyCSRF)
	t, _ := s.CSRFToken()
	return t
}

// ── gin 集成 ──

// Middleware 为每个请求加载会话并注入 gin 上下文
func Middleware(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, store.Load(c.Request, c.Writer))
		c.Next()
	}
}

// From 从 gin 上下文取出会话；未挂载中间件时返回 nil
func From(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
