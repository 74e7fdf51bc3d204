package handler

import (
	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Page      *PageHandler
	Auth      *AuthHandler
	Mentor    *MentorHandler
	Session   *SessionHandler
	Review    *ReviewHandler
	Dashboard *DashboardHandler
	Settings  *SettingsHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	registerFormTagNames()
	clock := service.NewClock(cfg.Server.Location())
	return &Handler{
		Page:      NewPageHandler(svc.Mentor),
		Auth:      NewAuthHandler(svc.Auth, &cfg.Auth.Cookie),
		Mentor:    NewMentorHandler(svc.Mentor),
		Session:   NewSessionHandler(svc.Session, svc.Mentor, clock),
		Review:    NewReviewHandler(svc.Review),
		Dashboard: NewDashboardHandler(svc.Dashboard, svc.Goal),
		Settings:  NewSettingsHandler(svc.User),
		Export:    NewExportHandler(svc.Export),
	}
}
