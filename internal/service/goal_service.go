package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
)

// 截止日期接受的输入格式
var deadlineLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"01/02/2006",
	"2 January 2006",
	"January 2, 2006",
}

// GoalService 学习目标业务接口
type GoalService interface {
	Create(ctx context.Context, userID string, req *dto.CreateGoalRequest) (*model.Goal, error)
}

type goalService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewGoalService 创建 GoalService 实例
func NewGoalService(repo *repository.Repository, now Clock, logger *zap.Logger) GoalService {
	return &goalService{repo: repo, now: now, logger: logger}
}

// ────────────────────── Create ──────────────────────
//
// 完成进度不落库：仪表盘每次渲染时按话题实时统计

func (s *goalService) Create(ctx context.Context, userID string, req *dto.CreateGoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		UserID:         userID,
		Title:          strings.TrimSpace(req.Title),
		MentorName:     strings.TrimSpace(req.MentorName),
		TargetSessions: req.TargetSessions,
	}

	if raw := strings.TrimSpace(req.Deadline); raw != "" {
		deadline, err := s.parseDeadline(raw)
		if err != nil {
			return nil, err
		}
		goal.Deadline = &deadline
	}

	if err := s.repo.Goal.Create(ctx, goal); err != nil {
		s.logger.Error("创建学习目标失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return goal, nil
}

func (s *goalService) parseDeadline(raw string) (datatypes.Date, error) {
	loc := s.now().Location()
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return datatypes.Date(t), nil
		}
	}
	return datatypes.Date{}, pkgerrors.NewFieldError("deadline", "Invalid date format")
}
