package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
)

// DefaultPassword 演示账号统一密码
const DefaultPassword = "password"

// Options 填充规模
type Options struct {
	Mentors         int
	Users           int
	SessionsPerUser int
	Seed            int64
}

// Summary 填充结果统计
type Summary struct {
	Mentors  int
	Users    int
	Sessions int
	Reviews  int
	Goals    int
}

// Seeder 向数据库写入演示数据
type Seeder struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeeder 创建 Seeder
func NewSeeder(repo *repository.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Run 在单个事务内写入全部数据；导师的会话数与评分按实际写入的会话和评价计算
func (s *Seeder) Run(ctx context.Context, opts Options, now time.Time) (*Summary, error) {
	if opts.Mentors <= 0 || opts.Users <= 0 {
		return nil, fmt.Errorf("mentors 与 users 必须大于 0")
	}
	if opts.SessionsPerUser <= 0 {
		opts.SessionsPerUser = 4
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	f := NewFactory(opts.Seed, now)
	sum := &Summary{}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		mentors := make([]*model.Mentor, 0, opts.Mentors)
		for i := 0; i < opts.Mentors; i++ {
			m := f.Mentor()
			if err := tx.Mentor.Create(ctx, m); err != nil {
				return fmt.Errorf("创建导师失败: %w", err)
			}
			mentors = append(mentors, m)
		}
		sum.Mentors = len(mentors)

		touched := make(map[string]bool)
		for i := 0; i < opts.Users; i++ {
			u := f.User(string(hash))
			if err := tx.User.Create(ctx, u); err != nil {
				return fmt.Errorf("创建用户失败: %w", err)
			}
			sum.Users++

			for j := 0; j < opts.SessionsPerUser; j++ {
				mentor := pick(f.rnd, mentors)
				sess := f.Session(u, mentor, f.SessionStatus())
				if err := tx.Session.Create(ctx, sess); err != nil {
					return fmt.Errorf("创建会话失败: %w", err)
				}
				sum.Sessions++

				if !sess.IsCompleted() {
					continue
				}
				if err := tx.Mentor.IncrementTotalSessions(ctx, mentor.MentorID); err != nil {
					return err
				}
				// 约四分之三的已完成会话留下评价
				if f.rnd.Intn(4) > 0 {
					if err := tx.Review.Create(ctx, f.Review(sess)); err != nil {
						return fmt.Errorf("创建评价失败: %w", err)
					}
					sum.Reviews++
					touched[mentor.MentorID] = true
				}
			}

			g := f.Goal(u, pick(f.rnd, mentors))
			if err := tx.Goal.Create(ctx, g); err != nil {
				return fmt.Errorf("创建学习目标失败: %w", err)
			}
			sum.Goals++
		}

		for id := range touched {
			stats, err := tx.Review.StatsByMentor(ctx, id)
			if err != nil {
				return err
			}
			if err := tx.Mentor.UpdateRatingStats(ctx, id, model.RoundRating(stats.Average), int(stats.Count)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("填充演示数据失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("演示数据已写入",
		zap.Int("mentors", sum.Mentors),
		zap.Int("users", sum.Users),
		zap.Int("sessions", sum.Sessions),
		zap.Int("reviews", sum.Reviews),
		zap.Int("goals", sum.Goals),
	)
	return sum, nil
}
