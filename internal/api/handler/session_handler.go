package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// SessionHandler 辅导会话模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
	mentorSvc  service.MentorService
	now        service.Clock
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService, mentorSvc service.MentorService, now service.Clock) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, mentorSvc: mentorSvc, now: now}
}

// Index 我的会话
// GET /sessions?page=
func (h *SessionHandler) Index(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		req = dto.PaginationRequest{}
	}

	result, err := h.sessionSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "sessions/index", gin.H{
		"Title":      "My Sessions",
		"Result":     result,
		"Pagination": result.Pagination,
	})
}

// Create 预约表单
// GET /sessions/create?mentor=
func (h *SessionHandler) Create(c *gin.Context) {
	mentorID := c.Query("mentor")
	if mentorID == "" {
		flashRedirect(c, websession.FlashError, "Please choose a mentor first.", "/mentors")
		return
	}

	mentor, err := h.mentorSvc.GetByID(c.Request.Context(), mentorID)
	if err != nil {
		if errors.Is(err, service.ErrMentorNotFound) {
			NotFound(c)
			return
		}
		serverError(c, err)
		return
	}

	render(c, http.StatusOK, "sessions/create", gin.H{
		"Title":   "Book a Session",
		"Mentor":  mentor,
		"Session": &model.Session{Duration: 60, Type: model.SessionTypeVideoCall}, // 表单默认值
		"Today":   h.today(),
	})
}

// Store 预约会话
// POST /sessions
func (h *SessionHandler) Store(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	back := "/sessions/create?mentor=" + url.QueryEscape(c.PostForm("mentor_id"))
	var req dto.CreateSessionRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, back)
		return
	}

	if _, err := h.sessionSvc.Create(c.Request.Context(), userID, &req); err != nil {
		h.handleSessionError(c, err, back)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Session booked successfully!", "/sessions")
}

// Edit 修改表单
// GET /sessions/:id/edit
func (h *SessionHandler) Edit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sess, err := h.sessionSvc.GetEditable(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}
	render(c, http.StatusOK, "sessions/edit", gin.H{
		"Title":   "Edit Session",
		"Session": sess,
		"Today":   h.today(),
	})
}

// Update 修改会话
// PUT /sessions/:id
func (h *SessionHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	back := "/sessions/" + id + "/edit"
	// 先校验归属与可编辑窗口，再校验表单
	if _, err := h.sessionSvc.GetEditable(c.Request.Context(), userID, id); err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}

	var req dto.UpdateSessionRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, back)
		return
	}

	if _, err := h.sessionSvc.Update(c.Request.Context(), userID, id, &req); err != nil {
		h.handleSessionError(c, err, back)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Session updated successfully!", "/sessions")
}

// Cancel 取消会话
// PUT /sessions/:id/cancel
func (h *SessionHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Cancel(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Session cancelled successfully.", "/sessions")
}

// Destroy 删除会话
// DELETE /sessions/:id
func (h *SessionHandler) Destroy(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Session deleted successfully.", "/sessions")
}

// ShowComplete 完成会话表单
// GET /sessions/:id/complete
func (h *SessionHandler) ShowComplete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sess, err := h.sessionSvc.GetCompletable(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}
	render(c, http.StatusOK, "sessions/complete", gin.H{"Title": "Complete Session", "Session": sess})
}

// Complete 标记完成，随后引导评价
// PUT /sessions/:id/complete
func (h *SessionHandler) Complete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := h.sessionSvc.GetCompletable(c.Request.Context(), userID, id); err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}

	var req dto.CompleteSessionRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, "/sessions/"+id+"/complete")
		return
	}

	sess, err := h.sessionSvc.Complete(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Session completed! Please rate your mentor.",
		"/reviews/create?session="+url.QueryEscape(sess.SessionID))
}

// Calendar 下载 iCalendar 邀请
// GET /sessions/:id/calendar
func (h *SessionHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	body, filename, err := h.sessionSvc.Calendar(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleSessionError(c, err, "/sessions")
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// today 业务时区的今天，用于日期输入框下限
func (h *SessionHandler) today() string {
	return h.now().Format("2006-01-02")
}

// handleSessionError 字段错误回到表单，规则拒绝回到列表并提示
func (h *SessionHandler) handleSessionError(c *gin.Context, err error, back string) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		withErrors(c, map[string]string{fe.Field: fe.Message}, back)
		return
	}

	switch {
	case errors.Is(err, pkgerrors.ErrForbidden):
		Forbidden(c)
	case errors.Is(err, service.ErrSessionNotFound):
		NotFound(c)
	case errors.Is(err, service.ErrSessionNotEditable),
		errors.Is(err, service.ErrSessionNotCancellable),
		errors.Is(err, service.ErrSessionAlreadyCompleted):
		flashRedirect(c, websession.FlashError, err.Error(), "/sessions")
	default:
		serverError(c, err)
	}
}
