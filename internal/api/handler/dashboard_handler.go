package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/websession"
)

// DashboardHandler 学习进度与目标
type DashboardHandler struct {
	dashboardSvc service.DashboardService
	goalSvc      service.GoalService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService, goalSvc service.GoalService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, goalSvc: goalSvc}
}

// Progress 学习进度
// GET /my/progress
func (h *DashboardHandler) Progress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := h.dashboardSvc.Get(c.Request.Context(), userID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "dashboard/index", gin.H{"Title": "My Progress", "Dashboard": data})
}

// StoreGoal 新建学习目标
// POST /goals
func (h *DashboardHandler) StoreGoal(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, "/my/progress")
		return
	}

	if _, err := h.goalSvc.Create(c.Request.Context(), userID, &req); err != nil {
		if fe, ok := pkgerrors.AsFieldError(err); ok {
			withErrors(c, map[string]string{fe.Field: fe.Message}, "/my/progress")
			return
		}
		serverError(c, err)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Goal created successfully!", "/my/progress")
}
