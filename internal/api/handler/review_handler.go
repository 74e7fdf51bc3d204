package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// ReviewHandler 评价模块 HTTP 处理器
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Create 评价表单；带 session 参数时针对该会话
// GET /reviews/create?session=
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	form, err := h.reviewSvc.PrepareCreate(c.Request.Context(), userID, c.Query("session"))
	if err != nil {
		h.handleReviewError(c, err, "/sessions")
		return
	}
	render(c, http.StatusOK, "reviews/create", gin.H{"Title": "Rate Your Mentor", "Form": form})
}

// Store 提交评价
// POST /reviews
func (h *ReviewHandler) Store(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	back := "/reviews/create"
	if sid := c.PostForm("session_id"); sid != "" {
		back += "?session=" + url.QueryEscape(sid)
	}

	var req dto.CreateReviewRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, back)
		return
	}

	if _, err := h.reviewSvc.Create(c.Request.Context(), userID, &req); err != nil {
		h.handleReviewError(c, err, back)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Thank you for your review!", "/sessions")
}

// Update 修改本人评价
// PUT /reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	back := backURL(c, "/sessions")
	var req dto.UpdateReviewRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, back)
		return
	}

	review, err := h.reviewSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleReviewError(c, err, back)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Review updated successfully!", "/mentors/"+review.MentorID)
}

// Destroy 删除本人评价
// DELETE /reviews/:id
func (h *ReviewHandler) Destroy(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	back := backURL(c, "/sessions")
	if err := h.reviewSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleReviewError(c, err, back)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Review deleted successfully.", back)
}

func (h *ReviewHandler) handleReviewError(c *gin.Context, err error, back string) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		withErrors(c, map[string]string{fe.Field: fe.Message}, back)
		return
	}

	switch {
	case errors.Is(err, service.ErrReviewDuplicate):
		flashRedirect(c, websession.FlashError, err.Error(), "/sessions")
	case errors.Is(err, pkgerrors.ErrForbidden):
		Forbidden(c)
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		NotFound(c)
	default:
		serverError(c, err)
	}
}
