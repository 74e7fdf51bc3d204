package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/response"
)

// ── 会话模块业务错误 ──

var (
	ErrSessionNotFound         = errors.New("Session not found.")
	ErrSessionNotEditable      = errors.New("This session cannot be edited.")
	ErrSessionNotCancellable   = errors.New("This session cannot be cancelled.")
	ErrSessionAlreadyCompleted = errors.New("This session is already completed.")
)

// 表单接受的时间格式
var sessionTimeLayouts = []string{"15:04", "15:04:05"}

// SessionService 辅导会话业务接口
type SessionService interface {
	List(ctx context.Context, userID string, req *dto.PaginationRequest) (*dto.SessionListResult, error)
	Create(ctx context.Context, userID string, req *dto.CreateSessionRequest) (*model.Session, error)
	// GetEditable 返回可编辑的本人会话；他人会话返回 ErrForbidden
	GetEditable(ctx context.Context, userID, id string) (*model.Session, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateSessionRequest) (*model.Session, error)
	Cancel(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	// GetCompletable 返回尚未完成的本人会话
	GetCompletable(ctx context.Context, userID, id string) (*model.Session, error)
	Complete(ctx context.Context, userID, id string, req *dto.CompleteSessionRequest) (*model.Session, error)
	// Calendar 生成会话的 iCalendar 邀请，返回内容与建议文件名
	Calendar(ctx context.Context, userID, id string) ([]byte, string, error)
}

type sessionService struct {
	repo    *repository.Repository
	now     Clock
	baseURL string
	logger  *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, now Clock, baseURL string, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, now: now, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *sessionService) List(ctx context.Context, userID string, req *dto.PaginationRequest) (*dto.SessionListResult, error) {
	sessions, total, err := s.repo.Session.ListByUser(ctx, userID, req.GetOffset(dto.SessionPageSize), dto.SessionPageSize)
	if err != nil {
		s.logger.Error("查询会话列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	now := s.now()
	items := make([]dto.SessionItem, 0, len(sessions))
	for i := range sessions {
		sess := &sessions[i]
		items = append(items, dto.SessionItem{
			Session:     *sess,
			Editable:    sess.CanBeEdited(now),
			Cancellable: sess.CanBeCancelled(now),
			Reviewable:  sess.IsCompleted() && sess.Review == nil,
		})
	}

	return &dto.SessionListResult{
		Items:      items,
		Pagination: response.NewPagination(total, req.GetPage(), dto.SessionPageSize),
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, userID string, req *dto.CreateSessionRequest) (*model.Session, error) {
	if !validID(req.MentorID) {
		return nil, pkgerrors.NewFieldError("mentor_id", "The selected mentor is invalid.")
	}
	if _, err := s.repo.Mentor.GetByID(ctx, req.MentorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewFieldError("mentor_id", "The selected mentor is invalid.")
		}
		s.logger.Error("查询导师失败", zap.String("mentor_id", req.MentorID), zap.Error(err))
		return nil, err
	}

	sess := &model.Session{
		UserID:   userID,
		MentorID: req.MentorID,
		Status:   model.SessionStatusPending,
	}
	if err := s.applyForm(sess, &req.SessionFormRequest); err != nil {
		return nil, err
	}

	if err := s.repo.Session.Create(ctx, sess); err != nil {
		s.logger.Error("创建会话失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("会话已预约",
		zap.String("session_id", sess.SessionID),
		zap.String("mentor_id", sess.MentorID),
	)
	return sess, nil
}

// ────────────────────── Edit / Update ──────────────────────

func (s *sessionService) GetEditable(ctx context.Context, userID, id string) (*model.Session, error) {
	sess, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !sess.CanBeEdited(s.now()) {
		return nil, ErrSessionNotEditable
	}
	return sess, nil
}

func (s *sessionService) Update(ctx context.Context, userID, id string, req *dto.UpdateSessionRequest) (*model.Session, error) {
	sess, err := s.GetEditable(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyForm(sess, &req.SessionFormRequest); err != nil {
		return nil, err
	}

	if err := s.repo.Session.Update(ctx, sess); err != nil {
		s.logger.Error("更新会话失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}
	return sess, nil
}

// ────────────────────── Cancel ──────────────────────

func (s *sessionService) Cancel(ctx context.Context, userID, id string) error {
	sess, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if !sess.CanBeCancelled(s.now()) {
		return ErrSessionNotCancellable
	}

	if err := s.repo.Session.UpdateStatus(ctx, id, model.SessionStatusCancelled, ""); err != nil {
		s.logger.Error("取消会话失败", zap.String("session_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(ctx context.Context, userID, id string) error {
	sess, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	// 会话的评价随外键级联删除，导师评分需在同一事务内重算
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Session.Delete(ctx, id); err != nil {
			return err
		}
		return recomputeMentorRating(ctx, tx, sess.MentorID)
	})
	if err != nil {
		s.logger.Error("删除会话失败", zap.String("session_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Complete ──────────────────────

func (s *sessionService) GetCompletable(ctx context.Context, userID, id string) (*model.Session, error) {
	sess, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sess.IsCompleted() {
		return nil, ErrSessionAlreadyCompleted
	}
	return sess, nil
}

func (s *sessionService) Complete(ctx context.Context, userID, id string, req *dto.CompleteSessionRequest) (*model.Session, error) {
	sess, err := s.GetCompletable(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(req.Notes)
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Session.UpdateStatus(ctx, id, model.SessionStatusCompleted, notes); err != nil {
			return err
		}
		return tx.Mentor.IncrementTotalSessions(ctx, sess.MentorID)
	})
	if err != nil {
		s.logger.Error("完成会话失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}

	sess.Status = model.SessionStatusCompleted
	sess.Notes = notes
	return sess, nil
}

// ── 内部辅助方法 ──

// getOwned 查询会话并校验归属
func (s *sessionService) getOwned(ctx context.Context, userID, id string) (*model.Session, error) {
	if !validID(id) {
		return nil, ErrSessionNotFound
	}
	sess, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}
	if !sess.IsOwnedBy(userID) {
		s.logger.Warn("越权访问会话",
			zap.String("session_id", id),
			zap.String("user_id", userID),
		)
		return nil, pkgerrors.ErrForbidden
	}
	return sess, nil
}

// applyForm 解析表单日期与时间并写入会话；日期不得早于今天
func (s *sessionService) applyForm(sess *model.Session, form *dto.SessionFormRequest) error {
	now := s.now()
	date, err := time.ParseInLocation("2006-01-02", form.SessionDate, now.Location())
	if err != nil {
		return pkgerrors.NewFieldError("session_date", "The session date is not a valid date.")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return pkgerrors.NewFieldError("session_date", "The session date must be a date after or equal to today.")
	}

	clock, err := parseClock(form.SessionTime)
	if err != nil {
		return pkgerrors.NewFieldError("session_time", "The session time is not a valid time.")
	}

	sess.Topic = strings.TrimSpace(form.Topic)
	sess.Description = strings.TrimSpace(form.Description)
	sess.SessionDate = datatypes.Date(date)
	sess.SessionTime = datatypes.NewTime(clock.Hour(), clock.Minute(), clock.Second(), 0)
	sess.Duration = form.Duration
	sess.Type = form.Type
	return nil
}

func parseClock(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	var lastErr error
	for _, layout := range sessionTimeLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
