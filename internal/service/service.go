package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	"github.com/saelmaa/pso-itsmentormatch/pkg/jwt"
)

// Clock 返回业务时区下的当前时刻；测试中替换为固定时间
type Clock func() time.Time

// NewClock 基于系统时间的 Clock
func NewClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Mentor    MentorService
	Session   SessionService
	Review    ReviewService
	Goal      GoalService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
// blacklist 可为 nil（Redis 不可用时降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	clock := NewClock(cfg.Server.Location())
	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, blacklist, logger),
		User:      NewUserService(repo, logger),
		Mentor:    NewMentorService(repo, logger),
		Session:   NewSessionService(repo, clock, cfg.Server.BaseURL, logger),
		Review:    NewReviewService(repo, logger),
		Goal:      NewGoalService(repo, clock, logger),
		Dashboard: NewDashboardService(repo, logger),
		Export:    NewExportService(repo, clock, logger),
	}
}

// validID 路径参数必须是 UUID，否则按不存在处理，避免把格式错误交给数据库
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
