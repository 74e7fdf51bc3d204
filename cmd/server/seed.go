package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
	"github.com/saelmaa/pso-itsmentormatch/internal/seed"
	"github.com/saelmaa/pso-itsmentormatch/pkg/database"
)

func newSeedCmd() *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "写入演示数据（导师、学员、会话、评价与学习目标）",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Seed == 0 {
				opts.Seed = time.Now().UnixNano()
			}
			return withDB(func(cfg *config.Config, db *gorm.DB, sqlDB *sql.DB, logger *zap.Logger) error {
				if err := database.RunMigrations(sqlDB, logger); err != nil {
					return err
				}

				seeder := seed.NewSeeder(repository.NewRepository(db), logger)
				now := time.Now().In(cfg.Server.Location())
				sum, err := seeder.Run(context.Background(), opts, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"已写入 %d 位导师、%d 名学员、%d 个会话、%d 条评价、%d 个学习目标（学员密码: %s）\n",
					sum.Mentors, sum.Users, sum.Sessions, sum.Reviews, sum.Goals, seed.DefaultPassword)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&opts.Mentors, "mentors", 20, "导师数量")
	cmd.Flags().IntVar(&opts.Users, "users", 10, "学员数量")
	cmd.Flags().IntVar(&opts.SessionsPerUser, "sessions", 4, "每名学员的会话数量")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "随机种子（0 表示按当前时间）")
	return cmd
}
