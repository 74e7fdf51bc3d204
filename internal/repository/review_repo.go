package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// RatingStats 导师评价聚合结果
type RatingStats struct {
	Average float64
	Count   int64
}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
	// ExistsForSession 该用户是否已评价过该会话
	ExistsForSession(ctx context.Context, sessionID, userID string) (bool, error)
	// StatsByMentor 对导师全部评价做一次 AVG / COUNT
	StatsByMentor(ctx context.Context, mentorID string) (RatingStats, error)
	ListByMentor(ctx context.Context, mentorID string, limit int) ([]model.Review, error)
	AverageByUser(ctx context.Context, userID string) (float64, error)
}

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo 创建 ReviewRepository 实例
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Omit("User", "Mentor").Create(review).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("review_id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *model.Review) error {
	result := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]interface{}{
			"rating":   review.Rating,
			"feedback": review.Feedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("review_id = ?", id).
		Delete(&model.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepo) ExistsForSession(ctx context.Context, sessionID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *reviewRepo) StatsByMentor(ctx context.Context, mentorID string) (RatingStats, error) {
	var stats RatingStats
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("mentor_id = ?", mentorID).
		Scan(&stats).Error
	return stats, err
}

func (r *reviewRepo) ListByMentor(ctx context.Context, mentorID string, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) AverageByUser(ctx context.Context, userID string) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}
