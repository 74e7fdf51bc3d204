package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// EmailTaken / StudentIDTaken 唯一性检查，excludeID 非空时排除该用户自身
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	StudentIDTaken(ctx context.Context, studentID, excludeID string) (bool, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("name", "email", "password_hash", "department", "student_id", "phone", "updated_at").
		Updates(user).Error
}

func (r *userRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		db = db.Where("user_id <> ?", excludeID)
	}
	var n int64
	err := db.Count(&n).Error
	return n > 0, err
}

func (r *userRepo) StudentIDTaken(ctx context.Context, studentID, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).Model(&model.User{}).Where("student_id = ?", studentID)
	if excludeID != "" {
		db = db.Where("user_id <> ?", excludeID)
	}
	var n int64
	err := db.Count(&n).Error
	return n > 0, err
}
