package router

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/internal/api/handler"
	"github.com/saelmaa/pso-itsmentormatch/internal/api/middleware"
	"github.com/saelmaa/pso-itsmentormatch/internal/api/view"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	"github.com/saelmaa/pso-itsmentormatch/pkg/redis"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// Assets 页面模板与静态文件
type Assets struct {
	Templates fs.FS
	Static    fs.FS
}

// Setup 初始化 Gin 路由引擎，返回外层包裹了请求体限制与 _method 覆盖的 http.Handler
// rdb 可为 nil（Redis 不可用时跳过限流）
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	authSvc service.AuthService,
	assets Assets,
	rdb *redis.Client,
	logger *zap.Logger,
) (http.Handler, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	renderer, err := view.New(assets.Templates, view.Funcs())
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())

	// ── 静态文件（不需要会话） ──
	r.StaticFS("/static", http.FS(assets.Static))

	// ── 健康检查 ──
	r.GET("/health", h.Page.Health)

	store := websession.NewStore(&cfg.Session, cfg.Auth.Cookie.Secure)
	web := r.Group("")
	web.Use(websession.Middleware(store))
	web.Use(middleware.CurrentUser(authSvc, &cfg.Auth.Cookie))
	web.Use(middleware.CSRF(handler.Forbidden))

	// nil *redis.Client 不能直接作为接口传入
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	throttle := middleware.RateLimit(limiter, cfg.RateLimit.AuthAttempts, cfg.RateLimit.AuthWindow, logger)

	// ── 公开页面 ──
	{
		web.GET("/", h.Page.Home)
		web.GET("/search", h.Page.Home)
		web.GET("/about", h.Page.About)
		web.GET("/guidelines", h.Page.Guidelines)
		web.GET("/faq", h.Page.FAQ)

		web.GET("/mentors", h.Mentor.Index)
		web.GET("/mentors/:id", h.Mentor.Show)
		web.GET("/become-mentor", h.Mentor.Create)
		web.POST("/mentors", h.Mentor.Store)
	}

	// ── 游客（登录 / 注册） ──
	guest := web.Group("")
	guest.Use(middleware.GuestOnly())
	{
		guest.GET("/login", h.Auth.ShowLogin)
		guest.POST("/login", throttle, h.Auth.Login)
		guest.GET("/register", h.Auth.ShowRegister)
		guest.POST("/register", throttle, h.Auth.Register)
	}

	// ── 需要登录 ──
	authorized := web.Group("")
	authorized.Use(middleware.RequireAuth())
	{
		authorized.POST("/logout", h.Auth.Logout)

		// 辅导会话：/sessions/export 必须先于 /sessions/:id 注册
		sessions := authorized.Group("/sessions")
		{
			sessions.GET("", h.Session.Index)
			sessions.GET("/create", h.Session.Create)
			sessions.GET("/export", h.Export.ExportSessions)
			sessions.POST("", h.Session.Store)
			sessions.GET("/:id/edit", h.Session.Edit)
			sessions.PUT("/:id", h.Session.Update)
			sessions.PUT("/:id/cancel", h.Session.Cancel)
			sessions.DELETE("/:id", h.Session.Destroy)
			sessions.GET("/:id/complete", h.Session.ShowComplete)
			sessions.PUT("/:id/complete", h.Session.Complete)
			sessions.GET("/:id/calendar", h.Session.Calendar)
		}

		// 评价
		reviews := authorized.Group("/reviews")
		{
			reviews.GET("/create", h.Review.Create)
			reviews.POST("", h.Review.Store)
			reviews.PUT("/:id", h.Review.Update)
			reviews.DELETE("/:id", h.Review.Destroy)
		}

		// 学习进度与目标
		authorized.GET("/my/progress", h.Dashboard.Progress)
		authorized.POST("/goals", h.Dashboard.StoreGoal)

		// 账号设置
		authorized.GET("/settings", h.Settings.Edit)
		authorized.PUT("/settings", h.Settings.Update)
	}

	// 404 页同样需要会话（导航栏登录状态）
	r.NoRoute(websession.Middleware(store), middleware.CurrentUser(authSvc, &cfg.Auth.Cookie), handler.NotFound)

	return middleware.BodyLimit(r, cfg.Server.BodyLimit), nil
}
