//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	"github.com/saelmaa/pso-itsmentormatch/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=mentormatch password=mentormatch dbname=mentormatch_test sslmode=disable TimeZone=Asia/Jakarta"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func uniq(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}

// setupTestData 创建一个用户与一个导师并返回清理函数
func setupTestData(t *testing.T) (user *model.User, mentor *model.Mentor, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	user = &model.User{
		Name:         "Test Student",
		Email:        uniq("student") + "@its.ac.id",
		PasswordHash: "$2a$10$placeholder",
		StudentID:    uniq("S")[:20],
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	mentor = &model.Mentor{
		Name:               "Laravel Larry",
		Email:              uniq("mentor") + "@its.ac.id",
		Department:         "Informatics",
		Expertise:          "Web Development, Laravel",
		AvailabilityStatus: model.AvailabilityAvailable,
		Skills:             datatypes.JSONSlice[string]{"PHP", "Laravel"},
		Price:              "Free",
	}
	if err := testDB.WithContext(ctx).Create(mentor).Error; err != nil {
		t.Fatalf("创建导师失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
		testDB.Where("mentor_id = ?", mentor.MentorID).Delete(&model.Mentor{})
	}
	return
}

func newCompletedSession(t *testing.T, repo *repository.Repository, userID, mentorID, topic string) *model.Session {
	t.Helper()
	s := &model.Session{
		UserID:      userID,
		MentorID:    mentorID,
		Topic:       topic,
		SessionDate: datatypes.Date(time.Now().AddDate(0, 0, -1)),
		SessionTime: datatypes.NewTime(10, 0, 0, 0),
		Duration:    60,
		Type:        model.SessionTypeVideoCall,
		Status:      model.SessionStatusCompleted,
	}
	if err := repo.Session.Create(context.Background(), s); err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}
	return s
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	user, mentor, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	var reviewID string
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		r := &model.Review{UserID: user.UserID, MentorID: mentor.MentorID, Rating: 5}
		if err := tx.Review.Create(ctx, r); err != nil {
			return err
		}
		reviewID = r.ReviewID
		return fmt.Errorf("强制回滚")
	})
	if err == nil {
		t.Fatal("期望事务返回错误")
	}

	if _, err := repo.Review.GetByID(ctx, reviewID); err == nil {
		t.Fatal("期望回滚后查不到 Review，但实际查到了")
	}
}

func TestTransaction_BeginCommit(t *testing.T) {
	user, mentor, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	r := &model.Review{UserID: user.UserID, MentorID: mentor.MentorID, Rating: 4}
	if err := txRepo.Review.Create(ctx, r); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建 Review 失败: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("Commit 失败: %v", err)
	}

	found, err := repo.Review.GetByID(ctx, r.ReviewID)
	if err != nil {
		t.Fatalf("提交后查询 Review 失败: %v", err)
	}
	if found.Rating != 4 {
		t.Errorf("期望 rating=4，实际=%d", found.Rating)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Rating aggregation
// ═══════════════════════════════════════════════════════════

func TestReview_StatsByMentor(t *testing.T) {
	user, mentor, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	stats, err := repo.Review.StatsByMentor(ctx, mentor.MentorID)
	if err != nil {
		t.Fatalf("StatsByMentor 失败: %v", err)
	}
	if stats.Count != 0 || stats.Average != 0 {
		t.Errorf("无评价时期望 0/0，实际 %v/%d", stats.Average, stats.Count)
	}

	for _, rating := range []int{5, 4} {
		if err := repo.Review.Create(ctx, &model.Review{UserID: user.UserID, MentorID: mentor.MentorID, Rating: rating}); err != nil {
			t.Fatalf("创建 Review 失败: %v", err)
		}
	}

	stats, err = repo.Review.StatsByMentor(ctx, mentor.MentorID)
	if err != nil {
		t.Fatalf("StatsByMentor 失败: %v", err)
	}
	if stats.Count != 2 || model.RoundRating(stats.Average) != 4.5 {
		t.Errorf("期望 4.5/2，实际 %v/%d", stats.Average, stats.Count)
	}

	if err := repo.Mentor.UpdateRatingStats(ctx, mentor.MentorID, model.RoundRating(stats.Average), int(stats.Count)); err != nil {
		t.Fatalf("UpdateRatingStats 失败: %v", err)
	}
	got, _ := repo.Mentor.GetByID(ctx, mentor.MentorID)
	if got.Rating != 4.5 || got.TotalReviews != 2 {
		t.Errorf("期望导师 4.5/2，实际 %v/%d", got.Rating, got.TotalReviews)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Search
// ═══════════════════════════════════════════════════════════

func TestMentor_ListSearchAndDepartment(t *testing.T) {
	_, mentor, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	other := &model.Mentor{
		Name: "Sam Systems", Email: uniq("other") + "@its.ac.id",
		Department: "Information Systems", Expertise: "Laravel APIs", Price: "Free",
		AvailabilityStatus: model.AvailabilityBusy,
	}
	if err := repo.Mentor.Create(ctx, other); err != nil {
		t.Fatalf("创建导师失败: %v", err)
	}
	defer testDB.Where("mentor_id = ?", other.MentorID).Delete(&model.Mentor{})

	contains := func(list []model.Mentor, id string) bool {
		for _, m := range list {
			if m.MentorID == id {
				return true
			}
		}
		return false
	}

	all, _, err := repo.Mentor.List(ctx, repository.MentorFilter{Search: "laravel"}, 0, 100)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if !contains(all, mentor.MentorID) || !contains(all, other.MentorID) {
		t.Error("关键字 laravel 应同时匹配两个导师")
	}

	narrowed, _, err := repo.Mentor.List(ctx, repository.MentorFilter{Search: "Laravel", Department: "Informatics"}, 0, 100)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if !contains(narrowed, mentor.MentorID) || contains(narrowed, other.MentorID) {
		t.Error("department=Informatics 应排除 Information Systems 导师")
	}

	wildcard, _, err := repo.Mentor.List(ctx, repository.MentorFilter{Search: "%"}, 0, 100)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if contains(wildcard, mentor.MentorID) {
		t.Error("% 应按字面匹配，不应作为通配符")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Session
// ═══════════════════════════════════════════════════════════

func TestSession_DeleteCascadesReviews(t *testing.T) {
	user, mentor, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	s := newCompletedSession(t, repo, user.UserID, mentor.MentorID, "Learn Laravel")
	r := &model.Review{SessionID: &s.SessionID, UserID: user.UserID, MentorID: mentor.MentorID, Rating: 3}
	if err := repo.Review.Create(ctx, r); err != nil {
		t.Fatalf("创建 Review 失败: %v", err)
	}

	exists, err := repo.Review.ExistsForSession(ctx, s.SessionID, user.UserID)
	if err != nil || !exists {
		t.Fatalf("期望已存在评价，实际 exists=%v err=%v", exists, err)
	}

	loaded, err := repo.Session.GetByID(ctx, s.SessionID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if loaded.Review == nil || loaded.Review.ReviewID != r.ReviewID {
		t.Error("期望预加载会话评价")
	}
	if loaded.TimeString() != "10:00" {
		t.Errorf("期望时间 10:00，实际 %s", loaded.TimeString())
	}

	if err := repo.Session.Delete(ctx, s.SessionID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, err := repo.Review.GetByID(ctx, r.ReviewID); err == nil {
		t.Error("删除会话后评价应级联删除")
	}
}

func TestSession_CompleteIncrementsMentor(t *testing.T) {
	user, mentor, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	s := newCompletedSession(t, repo, user.UserID, mentor.MentorID, "Go basics")
	if err := repo.Session.UpdateStatus(ctx, s.SessionID, model.SessionStatusCompleted, "great"); err != nil {
		t.Fatalf("UpdateStatus 失败: %v", err)
	}
	if err := repo.Mentor.IncrementTotalSessions(ctx, mentor.MentorID); err != nil {
		t.Fatalf("IncrementTotalSessions 失败: %v", err)
	}

	got, _ := repo.Mentor.GetByID(ctx, mentor.MentorID)
	if got.TotalSessions != 1 {
		t.Errorf("期望 total_sessions=1，实际=%d", got.TotalSessions)
	}

	mentors, err := repo.Mentor.ListWithCompletedSessions(ctx, user.UserID)
	if err != nil {
		t.Fatalf("ListWithCompletedSessions 失败: %v", err)
	}
	if len(mentors) != 1 || mentors[0].MentorID != mentor.MentorID {
		t.Errorf("期望返回该导师，实际 %d 个", len(mentors))
	}
}

func TestUser_UniqueChecks(t *testing.T) {
	user, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	taken, err := repo.User.EmailTaken(ctx, user.Email, "")
	if err != nil || !taken {
		t.Errorf("期望邮箱已占用，实际 taken=%v err=%v", taken, err)
	}
	taken, _ = repo.User.EmailTaken(ctx, user.Email, user.UserID)
	if taken {
		t.Error("排除自身后邮箱不应视为占用")
	}
	taken, _ = repo.User.StudentIDTaken(ctx, user.StudentID, "")
	if !taken {
		t.Error("期望学号已占用")
	}

	found, err := repo.User.GetByEmail(ctx, strings.ToUpper(user.Email))
	if err != nil || found.UserID != user.UserID {
		t.Errorf("邮箱查询应忽略大小写，err=%v", err)
	}
}
