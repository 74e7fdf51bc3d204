package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// sessionSchedule 会话排序：日期、时间倒序
const sessionSchedule = "session_date DESC, session_time DESC"

// SessionRepository 辅导会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	// Update 写回可编辑字段（话题、描述、日期、时间、时长、形式）
	Update(ctx context.Context, session *model.Session) error
	UpdateStatus(ctx context.Context, id, status, notes string) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Session, int64, error)
	ListAllByUser(ctx context.Context, userID string) ([]model.Session, error)
	Count(ctx context.Context) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Omit("User", "Mentor", "Review").Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Review").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ?", session.SessionID).
		Updates(map[string]interface{}{
			"topic":        session.Topic,
			"description":  session.Description,
			"session_date": session.SessionDate,
			"session_time": session.SessionTime,
			"duration":     session.Duration,
			"type":         session.Type,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepo) UpdateStatus(ctx context.Context, id, status, notes string) error {
	updates := map[string]interface{}{"status": status}
	if status == model.SessionStatusCompleted {
		updates["notes"] = notes
	}
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Session, int64, error) {
	var sessions []model.Session
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Session{}).Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Mentor").
		Preload("Review").
		Order(sessionSchedule).
		Offset(offset).Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *sessionRepo) ListAllByUser(ctx context.Context, userID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Review").
		Where("user_id = ?", userID).
		Order(sessionSchedule).
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Session{}).Count(&n).Error
	return n, err
}
