package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
)

// ── 评价模块业务错误 ──

var (
	ErrReviewNotFound  = errors.New("Review not found.")
	ErrReviewDuplicate = errors.New("You have already reviewed this session.")
)

// ReviewService 评价业务接口
// 每次创建 / 修改 / 删除评价都在同一事务内重算导师评分与评价数
type ReviewService interface {
	// PrepareCreate sessionID 非空时返回待评价会话，否则返回可选导师列表
	PrepareCreate(ctx context.Context, userID, sessionID string) (*dto.ReviewForm, error)
	Create(ctx context.Context, userID string, req *dto.CreateReviewRequest) (*model.Review, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, userID, id string) error
}

type reviewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, logger *zap.Logger) ReviewService {
	return &reviewService{repo: repo, logger: logger}
}

// ────────────────────── PrepareCreate ──────────────────────

func (s *reviewService) PrepareCreate(ctx context.Context, userID, sessionID string) (*dto.ReviewForm, error) {
	if sessionID != "" {
		sess, err := s.reviewableSession(ctx, s.repo, userID, sessionID)
		if err != nil {
			if !isBusinessError(err) {
				s.logger.Error("查询待评价会话失败", zap.String("session_id", sessionID), zap.Error(err))
			}
			return nil, err
		}
		return &dto.ReviewForm{Session: sess}, nil
	}

	mentors, err := s.repo.Mentor.ListWithCompletedSessions(ctx, userID)
	if err != nil {
		s.logger.Error("查询可评价导师失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &dto.ReviewForm{Mentors: mentors}, nil
}

// ────────────────────── Create ──────────────────────

func (s *reviewService) Create(ctx context.Context, userID string, req *dto.CreateReviewRequest) (*model.Review, error) {
	review := &model.Review{
		UserID:   userID,
		MentorID: req.MentorID,
		Rating:   req.Rating,
		Feedback: strings.TrimSpace(req.Feedback),
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if req.SessionID != "" {
			sess, err := s.reviewableSession(ctx, tx, userID, req.SessionID)
			if err != nil {
				return err
			}
			if sess.MentorID != req.MentorID {
				return pkgerrors.NewFieldError("mentor_id", "The selected mentor does not match the session.")
			}
			sessionID := sess.SessionID
			review.SessionID = &sessionID
		} else if err := s.checkMentor(ctx, tx, req.MentorID); err != nil {
			return err
		}

		if err := tx.Review.Create(ctx, review); err != nil {
			return err
		}
		return recomputeMentorRating(ctx, tx, review.MentorID)
	})
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		s.logger.Error("创建评价失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return review, nil
}

// ────────────────────── Update ──────────────────────

func (s *reviewService) Update(ctx context.Context, userID, id string, req *dto.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Feedback = strings.TrimSpace(req.Feedback)

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Review.Update(ctx, review); err != nil {
			return err
		}
		return recomputeMentorRating(ctx, tx, review.MentorID)
	})
	if err != nil {
		s.logger.Error("更新评价失败", zap.String("review_id", id), zap.Error(err))
		return nil, err
	}
	return review, nil
}

// ────────────────────── Delete ──────────────────────

func (s *reviewService) Delete(ctx context.Context, userID, id string) error {
	review, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Review.Delete(ctx, id); err != nil {
			return err
		}
		return recomputeMentorRating(ctx, tx, review.MentorID)
	})
	if err != nil {
		s.logger.Error("删除评价失败", zap.String("review_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// reviewableSession 本人、已完成、尚未评价的会话；不满足前两项按不存在处理
func (s *reviewService) reviewableSession(ctx context.Context, repo *repository.Repository, userID, sessionID string) (*model.Session, error) {
	if !validID(sessionID) {
		return nil, ErrSessionNotFound
	}
	sess, err := repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !sess.IsOwnedBy(userID) || !sess.IsCompleted() {
		return nil, ErrSessionNotFound
	}

	reviewed, err := repo.Review.ExistsForSession(ctx, sess.SessionID, userID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrReviewDuplicate
	}
	return sess, nil
}

func (s *reviewService) checkMentor(ctx context.Context, repo *repository.Repository, mentorID string) error {
	if !validID(mentorID) {
		return pkgerrors.NewFieldError("mentor_id", "The selected mentor is invalid.")
	}
	if _, err := repo.Mentor.GetByID(ctx, mentorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewFieldError("mentor_id", "The selected mentor is invalid.")
		}
		return err
	}
	return nil
}

func (s *reviewService) getOwned(ctx context.Context, userID, id string) (*model.Review, error) {
	if !validID(id) {
		return nil, ErrReviewNotFound
	}
	review, err := s.repo.Review.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("查询评价失败", zap.String("review_id", id), zap.Error(err))
		return nil, err
	}
	if review.UserID != userID {
		return nil, pkgerrors.ErrForbidden
	}
	return review, nil
}

// recomputeMentorRating 以一次 AVG / COUNT 全量重算导师评分并写回
func recomputeMentorRating(ctx context.Context, repo *repository.Repository, mentorID string) error {
	stats, err := repo.Review.StatsByMentor(ctx, mentorID)
	if err != nil {
		return err
	}
	return repo.Mentor.UpdateRatingStats(ctx, mentorID, model.RoundRating(stats.Average), int(stats.Count))
}

// isBusinessError 业务规则 / 校验类错误，无需记录错误日志
func isBusinessError(err error) bool {
	if _, ok := pkgerrors.AsFieldError(err); ok {
		return true
	}
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrReviewDuplicate) ||
		errors.Is(err, pkgerrors.ErrForbidden)
}
