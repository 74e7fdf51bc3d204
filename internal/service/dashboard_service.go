package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
)

// DashboardService 学习进度（仪表盘）业务接口
type DashboardService interface {
	Get(ctx context.Context, userID string) (*dto.DashboardData, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *dashboardService) Get(ctx context.Context, userID string) (*dto.DashboardData, error) {
	sessions, err := s.repo.Session.ListAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询会话历史失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	completed := 0
	for i := range sessions {
		if sessions[i].IsCompleted() {
			completed++
		}
	}

	avg, err := s.repo.Review.AverageByUser(ctx, userID)
	if err != nil {
		s.logger.Error("统计用户平均评分失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	goals, err := s.repo.Goal.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询学习目标失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	for i := range goals {
		goals[i].CountCompleted(sessions)
	}

	return &dto.DashboardData{
		TotalSessions:     len(sessions),
		CompletedSessions: completed,
		AverageRating:     model.RoundRating(avg),
		SessionHistory:    sessions,
		Goals:             goals,
	}, nil
}
