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
	"github.com/saelmaa/pso-itsmentormatch/pkg/response"
)

// ── 导师模块业务错误 ──

var (
	ErrMentorNotFound = errors.New("Mentor not found.")
)

// MentorService 导师业务接口
type MentorService interface {
	Home(ctx context.Context, search string) (*dto.HomeData, error)
	List(ctx context.Context, req *dto.MentorListRequest) (*dto.MentorListResult, error)
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
	GetProfile(ctx context.Context, id string) (*dto.MentorProfile, error)
	Apply(ctx context.Context, req *dto.MentorApplyRequest) (*model.Mentor, error)
}

type mentorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMentorService 创建 MentorService 实例
func NewMentorService(repo *repository.Repository, logger *zap.Logger) MentorService {
	return &mentorService{repo: repo, logger: logger}
}

// ────────────────────── Home ──────────────────────

func (s *mentorService) Home(ctx context.Context, search string) (*dto.HomeData, error) {
	search = strings.TrimSpace(search)

	top, err := s.repo.Mentor.Top(ctx, dto.TopMentorsLimit)
	if err != nil {
		s.logger.Error("查询榜单导师失败", zap.Error(err))
		return nil, err
	}

	featured, _, err := s.repo.Mentor.List(ctx, repository.MentorFilter{Search: search}, 0, dto.FeaturedMentors)
	if err != nil {
		s.logger.Error("查询推荐导师失败", zap.String("search", search), zap.Error(err))
		return nil, err
	}

	totalMentors, err := s.repo.Mentor.Count(ctx)
	if err != nil {
		s.logger.Error("统计导师数量失败", zap.Error(err))
		return nil, err
	}
	totalSessions, err := s.repo.Session.Count(ctx)
	if err != nil {
		s.logger.Error("统计会话数量失败", zap.Error(err))
		return nil, err
	}

	return &dto.HomeData{
		Search:          search,
		TopMentors:      top,
		FeaturedMentors: featured,
		TotalMentors:    totalMentors,
		TotalSessions:   totalSessions,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *mentorService) List(ctx context.Context, req *dto.MentorListRequest) (*dto.MentorListResult, error) {
	filter := repository.MentorFilter{
		Search:     strings.TrimSpace(req.Search),
		Department: strings.TrimSpace(req.Department),
	}
	page := req.GetPage()

	mentors, total, err := s.repo.Mentor.List(ctx, filter, req.GetOffset(dto.MentorPageSize), dto.MentorPageSize)
	if err != nil {
		s.logger.Error("查询导师目录失败", zap.Error(err))
		return nil, err
	}

	departments, err := s.repo.Mentor.Departments(ctx)
	if err != nil {
		s.logger.Error("查询院系列表失败", zap.Error(err))
		return nil, err
	}

	return &dto.MentorListResult{
		Mentors:     mentors,
		Pagination:  response.NewPagination(total, page, dto.MentorPageSize),
		Departments: departments,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *mentorService) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	if !validID(id) {
		return nil, ErrMentorNotFound
	}
	mentor, err := s.repo.Mentor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("查询导师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return mentor, nil
}

// ────────────────────── GetProfile ──────────────────────

func (s *mentorService) GetProfile(ctx context.Context, id string) (*dto.MentorProfile, error) {
	mentor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.ListByMentor(ctx, mentor.MentorID, dto.ProfileReviewCap)
	if err != nil {
		s.logger.Error("查询导师评价失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.MentorProfile{Mentor: mentor, Reviews: reviews}, nil
}

// ────────────────────── Apply ──────────────────────

func (s *mentorService) Apply(ctx context.Context, req *dto.MentorApplyRequest) (*model.Mentor, error) {
	email := normalizeEmail(req.Email)

	taken, err := s.repo.Mentor.EmailTaken(ctx, email)
	if err != nil {
		s.logger.Error("检查导师邮箱失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, pkgerrors.NewFieldError("email", "A mentor with this email has already applied.")
	}

	status := req.AvailabilityStatus
	if status == "" {
		status = model.AvailabilityAvailable
	}
	price := strings.TrimSpace(req.Price)
	if price == "" {
		price = "Free"
	}

	mentor := &model.Mentor{
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		Department:         strings.TrimSpace(req.Department),
		Expertise:          strings.TrimSpace(req.Expertise),
		Bio:                strings.TrimSpace(req.Bio),
		ExperienceYears:    req.ExperienceYears,
		AvailabilityStatus: status,
		Skills:             req.SkillList(),
		Location:           strings.TrimSpace(req.Location),
		Price:              price,
	}

	if err := s.repo.Mentor.Create(ctx, mentor); err != nil {
		s.logger.Error("创建导师失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("收到导师申请", zap.String("mentor_id", mentor.MentorID))
	return mentor, nil
}
