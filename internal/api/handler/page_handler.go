package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	"github.com/saelmaa/pso-itsmentormatch/pkg/response"
)

// PageHandler 首页与静态页面
type PageHandler struct {
	mentorSvc service.MentorService
}

// NewPageHandler 创建 PageHandler
func NewPageHandler(mentorSvc service.MentorService) *PageHandler {
	return &PageHandler{mentorSvc: mentorSvc}
}

// Home 首页：评分榜、推荐导师（支持搜索）与统计
// GET /  GET /search
func (h *PageHandler) Home(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	data, err := h.mentorSvc.Home(c.Request.Context(), search)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "home", gin.H{"Title": "Home", "Home": data})
}

// About GET /about
func (h *PageHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "pages/about", gin.H{"Title": "About"})
}

// Guidelines GET /guidelines
func (h *PageHandler) Guidelines(c *gin.Context) {
	render(c, http.StatusOK, "pages/guidelines", gin.H{"Title": "Guidelines"})
}

// FAQ GET /faq
func (h *PageHandler) FAQ(c *gin.Context) {
	render(c, http.StatusOK, "pages/faq", gin.H{"Title": "FAQ"})
}

// Health 存活探针
// GET /health
func (h *PageHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}
