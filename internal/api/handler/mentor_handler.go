package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// MentorHandler 导师目录与申请
type MentorHandler struct {
	mentorSvc service.MentorService
}

// NewMentorHandler 创建 MentorHandler
func NewMentorHandler(mentorSvc service.MentorService) *MentorHandler {
	return &MentorHandler{mentorSvc: mentorSvc}
}

// Index 导师目录
// GET /mentors?search=&department=&page=
func (h *MentorHandler) Index(c *gin.Context) {
	var req dto.MentorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		// 非法页码等参数回到第一页
		req = dto.MentorListRequest{Search: c.Query("search"), Department: c.Query("department")}
	}

	result, err := h.mentorSvc.List(c.Request.Context(), &req)
	if err != nil {
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "mentors/index", gin.H{
		"Title":      "Mentors",
		"Result":     result,
		"Pagination": result.Pagination,
		"Search":     req.Search,
		"Department": req.Department,
	})
}

// Show 导师详情
// GET /mentors/:id
func (h *MentorHandler) Show(c *gin.Context) {
	profile, err := h.mentorSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMentorError(c, err)
		return
	}
	render(c, http.StatusOK, "mentors/show", gin.H{
		"Title":   profile.Mentor.Name,
		"Profile": profile,
	})
}

// Create 成为导师申请表
// GET /become-mentor
func (h *MentorHandler) Create(c *gin.Context) {
	render(c, http.StatusOK, "mentors/create", gin.H{"Title": "Become a Mentor"})
}

// Store 提交导师申请
// POST /mentors
func (h *MentorHandler) Store(c *gin.Context) {
	var req dto.MentorApplyRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, "/become-mentor")
		return
	}

	if _, err := h.mentorSvc.Apply(c.Request.Context(), &req); err != nil {
		if fe, ok := pkgerrors.AsFieldError(err); ok {
			withErrors(c, map[string]string{fe.Field: fe.Message}, "/become-mentor")
			return
		}
		serverError(c, err)
		return
	}

	flashRedirect(c, websession.FlashSuccess, "Mentor application submitted successfully!", "/mentors")
}

func (h *MentorHandler) handleMentorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMentorNotFound):
		NotFound(c)
	default:
		serverError(c, err)
	}
}
