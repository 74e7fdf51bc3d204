package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// GoalRepository 学习目标数据访问接口
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ListByUser(ctx context.Context, userID string) ([]model.Goal, error)
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo 创建 GoalRepository 实例
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepo) ListByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goals).Error
	return goals, err
}
