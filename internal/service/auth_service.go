package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrUserNotFound       = errors.New("User not found.")
	ErrUnauthenticated    = errors.New("Please log in to continue.")
)

// TokenBlacklist 已注销令牌的存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Logout(ctx context.Context, token string) error
	// Authenticate 校验 Cookie 中的令牌，已注销或无效时返回 ErrUnauthenticated
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResult, error) {
	email := normalizeEmail(req.Email)
	studentID := strings.TrimSpace(req.StudentID)

	if err := checkUserUnique(ctx, s.repo, email, studentID, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Department:   strings.TrimSpace(req.Department),
		StudentID:    studentID,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("新用户注册", zap.String("user_id", user.UserID))
	return s.issue(user, false)
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发令牌
	return s.issue(user, req.Remember)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" || s.blacklist == nil {
		return nil
	}
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		// 已过期或无效的令牌无需拉黑
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("令牌加入黑名单失败", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Authenticate ──────────────────────

func (s *authService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis 故障时降级放行
			s.logger.Warn("查询令牌黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrUnauthenticated
		}
	}
	return claims, nil
}

// ── 内部辅助方法 ──

func (s *authService) issue(user *model.User, remember bool) (*dto.LoginResult, error) {
	token, expiresAt, err := s.jwtMgr.GenerateToken(user.UserID, user.Name, remember)
	if err != nil {
		s.logger.Error("生成令牌失败", zap.Error(err))
		return nil, err
	}
	return &dto.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    user.UserID,
		Name:      user.Name,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkUserUnique 校验邮箱与学号唯一；excludeID 为当前用户时忽略其自身
func checkUserUnique(ctx context.Context, repo *repository.Repository, email, studentID, excludeID string) error {
	taken, err := repo.User.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return pkgerrors.NewFieldError("email", "The email has already been taken.")
	}

	if studentID == "" {
		return nil
	}
	taken, err = repo.User.StudentIDTaken(ctx, studentID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return pkgerrors.NewFieldError("student_id", "The student ID has already been taken.")
	}
	return nil
}
