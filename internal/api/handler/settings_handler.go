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

// SettingsHandler 账号设置
type SettingsHandler struct {
	userSvc service.UserService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(userSvc service.UserService) *SettingsHandler {
	return &SettingsHandler{userSvc: userSvc}
}

// Edit GET /settings
func (h *SettingsHandler) Edit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			NotFound(c)
			return
		}
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "settings/edit", gin.H{"Title": "Settings", "User": user})
}

// Update 修改资料；新密码留空表示不修改
// PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SettingsRequest
	if errs, ok := bindForm(c, &req); !ok {
		withErrors(c, errs, "/settings")
		return
	}

	if _, err := h.userSvc.UpdateSettings(c.Request.Context(), userID, &req); err != nil {
		if fe, ok := pkgerrors.AsFieldError(err); ok {
			withErrors(c, map[string]string{fe.Field: fe.Message}, "/settings")
			return
		}
		serverError(c, err)
		return
	}
	flashRedirect(c, websession.FlashSuccess, "Settings updated successfully!", "/settings")
}
