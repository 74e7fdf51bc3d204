package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/internal/dto"
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	pkgerrors "github.com/saelmaa/pso-itsmentormatch/pkg/errors"
	"github.com/saelmaa/pso-itsmentormatch/pkg/jwt"
)

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]time.Duration
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.entries[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.entries[jti]
	return ok, nil
}

func setupTestAuthService() (AuthService, *memStore, *mockBlacklist, *jwt.Manager) {
	store := newMemStore()
	bl := newMockBlacklist()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "unit-test-secret-0123456789",
		AccessTokenTTL: time.Hour,
		RememberMeTTL:  24 * time.Hour,
	})
	svc := NewAuthService(newMockRepository(store), jwtMgr, bl, nopLogger)
	return svc, store, bl, jwtMgr
}

func seedLoginUser(t *testing.T, store *memStore, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := seedUser(store, userA, "Ayu", email)
	u.PasswordHash = string(hash)
	u.StudentID = "5025211001"
	return u
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, store, _, jwtMgr := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:      " Budi ",
		Email:     "Budi@Student.ITS.ac.id",
		Password:  "password123",
		StudentID: "5025211002",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}

	user := store.users[result.UserID]
	if user == nil {
		t.Fatal("期望用户已落库")
	}
	if user.Email != "budi@student.its.ac.id" {
		t.Errorf("邮箱应规范化为小写，实际=%s", user.Email)
	}
	if user.Name != "Budi" {
		t.Errorf("姓名应去除空白，实际=%q", user.Name)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")) != nil {
		t.Error("密码哈希不匹配")
	}

	claims, err := jwtMgr.ParseToken(result.Token)
	if err != nil || claims.UserID != user.UserID {
		t.Errorf("注册后应签发可解析的令牌，err=%v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, store, _, _ := setupTestAuthService()
	seedUser(store, userA, "Ayu", "ayu@its.ac.id")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Other", Email: "AYU@its.ac.id", Password: "password123",
	})
	fe, ok := pkgerrors.AsFieldError(err)
	if !ok || fe.Field != "email" {
		t.Fatalf("期望 email 字段错误，实际: %v", err)
	}
	if len(store.users) != 1 {
		t.Errorf("不应创建新用户，实际用户数=%d", len(store.users))
	}
}

func TestAuthService_Register_DuplicateStudentID(t *testing.T) {
	svc, store, _, _ := setupTestAuthService()
	u := seedUser(store, userA, "Ayu", "ayu@its.ac.id")
	u.StudentID = "5025211001"

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Other", Email: "other@its.ac.id", Password: "password123", StudentID: "5025211001",
	})
	fe, ok := pkgerrors.AsFieldError(err)
	if !ok || fe.Field != "student_id" {
		t.Fatalf("期望 student_id 字段错误，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login(t *testing.T) {
	svc, store, _, jwtMgr := setupTestAuthService()
	seedLoginUser(t, store, "ayu@its.ac.id", "secret-pass")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"正确凭证", "ayu@its.ac.id", "secret-pass", nil},
		{"邮箱大小写不敏感", "AYU@its.ac.id", "secret-pass", nil},
		{"密码错误", "ayu@its.ac.id", "wrong", ErrInvalidCredentials},
		{"用户不存在", "nobody@its.ac.id", "secret-pass", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("期望 %v，实际 %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login 应成功: %v", err)
			}
			claims, err := jwtMgr.ParseToken(result.Token)
			if err != nil || claims.UserID != userA {
				t.Errorf("令牌无效: %v", err)
			}
		})
	}
}

func TestAuthService_Login_RememberMeExtendsExpiry(t *testing.T) {
	svc, store, _, _ := setupTestAuthService()
	seedLoginUser(t, store, "ayu@its.ac.id", "secret-pass")

	short, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ayu@its.ac.id", Password: "secret-pass"})
	if err != nil {
		t.Fatal(err)
	}
	long, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ayu@its.ac.id", Password: "secret-pass", Remember: true})
	if err != nil {
		t.Fatal(err)
	}
	if long.ExpiresAt-short.ExpiresAt < int64((22 * time.Hour).Seconds()) {
		t.Errorf("记住我应使用更长有效期，short=%d long=%d", short.ExpiresAt, long.ExpiresAt)
	}
}

// ── Logout / Authenticate 测试 ──

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, store, bl, _ := setupTestAuthService()
	seedLoginUser(t, store, "ayu@its.ac.id", "secret-pass")
	ctx := context.Background()

	result, err := svc.Login(ctx, &dto.LoginRequest{Email: "ayu@its.ac.id", Password: "secret-pass"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Authenticate(ctx, result.Token); err != nil {
		t.Fatalf("登出前应认证成功: %v", err)
	}

	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
	if len(bl.entries) != 1 {
		t.Fatalf("期望黑名单 1 条，实际 %d", len(bl.entries))
	}
	for _, ttl := range bl.entries {
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("黑名单 TTL 应为令牌剩余有效期，实际 %v", ttl)
		}
	}

	if _, err := svc.Authenticate(ctx, result.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("登出后期望 ErrUnauthenticated，实际 %v", err)
	}
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("期望 ErrUnauthenticated，实际 %v", err)
	}
}

func TestAuthService_Authenticate_BlacklistDownDegrades(t *testing.T) {
	svc, store, bl, _ := setupTestAuthService()
	seedLoginUser(t, store, "ayu@its.ac.id", "secret-pass")
	ctx := context.Background()

	result, err := svc.Login(ctx, &dto.LoginRequest{Email: "ayu@its.ac.id", Password: "secret-pass"})
	if err != nil {
		t.Fatal(err)
	}

	bl.err = errors.New("redis: connection refused")
	claims, err := svc.Authenticate(ctx, result.Token)
	if err != nil {
		t.Fatalf("黑名单不可用时应降级放行: %v", err)
	}
	if claims.UserID != userA {
		t.Errorf("期望 UserID=%s，实际=%s", userA, claims.UserID)
	}
}
