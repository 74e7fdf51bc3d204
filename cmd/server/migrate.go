package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/saelmaa/pso-itsmentormatch/config"
	"github.com/saelmaa/pso-itsmentormatch/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "数据库迁移",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "执行全部未应用的迁移",
			RunE: func(_ *cobra.Command, _ []string) error {
				return withDB(func(_ *config.Config, _ *gorm.DB, sqlDB *sql.DB, logger *zap.Logger) error {
					return database.RunMigrations(sqlDB, logger)
				})
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "回滚最近 N 个迁移（默认 1）",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return fmt.Errorf("回滚步数必须是正整数: %q", args[0])
					}
					steps = n
				}
				return withDB(func(_ *config.Config, _ *gorm.DB, sqlDB *sql.DB, logger *zap.Logger) error {
					return database.RollbackMigrations(sqlDB, steps, logger)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "查看当前迁移版本",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(func(_ *config.Config, _ *gorm.DB, sqlDB *sql.DB, _ *zap.Logger) error {
					version, dirty, err := database.MigrationVersion(sqlDB)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

// withDB 为一次性命令建立数据库连接，执行完毕后关闭
func withDB(fn func(cfg *config.Config, db *gorm.DB, sqlDB *sql.DB, logger *zap.Logger) error) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	return fn(cfg, db, sqlDB, logger)
}
