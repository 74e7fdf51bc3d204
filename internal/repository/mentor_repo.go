package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// mentorRanking 导师排序：评分优先，其次完成会话数
const mentorRanking = "rating DESC, total_sessions DESC, name ASC"

// MentorFilter 导师目录查询条件；Search 为空表示不按关键字过滤
type MentorFilter struct {
	Search     string
	Department string
}

// MentorRepository 导师数据访问接口
type MentorRepository interface {
	Create(ctx context.Context, mentor *model.Mentor) error
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter MentorFilter, offset, limit int) ([]model.Mentor, int64, error)
	Top(ctx context.Context, limit int) ([]model.Mentor, error)
	Count(ctx context.Context) (int64, error)
	Departments(ctx context.Context) ([]string, error)
	// ListWithCompletedSessions 该用户至少完成过一次会话的导师
	ListWithCompletedSessions(ctx context.Context, userID string) ([]model.Mentor, error)
	UpdateRatingStats(ctx context.Context, id string, rating float64, totalReviews int) error
	IncrementTotalSessions(ctx context.Context, id string) error
}

type mentorRepo struct {
	db *gorm.DB
}

// NewMentorRepo 创建 MentorRepository 实例
func NewMentorRepo(db *gorm.DB) MentorRepository {
	return &mentorRepo{db: db}
}

func (r *mentorRepo) Create(ctx context.Context, mentor *model.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepo) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", id).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Mentor{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&n).Error
	return n > 0, err
}

// applyFilter 关键字匹配姓名 / 专长 / 院系（不区分大小写子串），院系精确过滤
func applyFilter(db *gorm.DB, f MentorFilter) *gorm.DB {
	if f.Search != "" {
		p := containsPattern(f.Search)
		db = db.Where("(name ILIKE ? OR expertise ILIKE ? OR department ILIKE ?)", p, p, p)
	}
	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	return db
}

func (r *mentorRepo) List(ctx context.Context, filter MentorFilter, offset, limit int) ([]model.Mentor, int64, error) {
	var mentors []model.Mentor
	var total int64

	db := applyFilter(r.db.WithContext(ctx).Model(&model.Mentor{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order(mentorRanking).
		Offset(offset).Limit(limit).
		Find(&mentors).Error; err != nil {
		return nil, 0, err
	}

	return mentors, total, nil
}

func (r *mentorRepo) Top(ctx context.Context, limit int) ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := r.db.WithContext(ctx).
		Order(mentorRanking).
		Limit(limit).
		Find(&mentors).Error
	return mentors, err
}

func (r *mentorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Mentor{}).Count(&n).Error
	return n, err
}

func (r *mentorRepo) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	err := r.db.WithContext(ctx).
		Model(&model.Mentor{}).
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	return departments, err
}

func (r *mentorRepo) ListWithCompletedSessions(ctx context.Context, userID string) ([]model.Mentor, error) {
	completed := r.db.Model(&model.Session{}).
		Select("mentor_id").
		Where("user_id = ? AND status = ?", userID, model.SessionStatusCompleted)

	var mentors []model.Mentor
	err := r.db.WithContext(ctx).
		Where("mentor_id IN (?)", completed).
		Order("name ASC").
		Find(&mentors).Error
	return mentors, err
}

func (r *mentorRepo) UpdateRatingStats(ctx context.Context, id string, rating float64, totalReviews int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Mentor{}).
		Where("mentor_id = ?", id).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": totalReviews,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mentorRepo) IncrementTotalSessions(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Mentor{}).
		Where("mentor_id = ?", id).
		UpdateColumn("total_sessions", gorm.Expr("total_sessions + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
