package dto

import "github.com/saelmaa/pso-itsmentormatch/internal/model"

// ── 学习目标 / 仪表盘 DTO ──

// CreateGoalRequest 新建目标表单
type CreateGoalRequest struct {
	Title          string `form:"title"           binding:"required,max=255"`
	MentorName     string `form:"mentor_name"     binding:"omitempty,max=255"`
	TargetSessions int    `form:"target_sessions" binding:"required,min=1,max=1000"`
	Deadline       string `form:"deadline"        binding:"omitempty,max=32"`
}

// DashboardData 学习进度页数据
type DashboardData struct {
	TotalSessions     int
	CompletedSessions int
	AverageRating     float64 // 当前用户给出的平均评分
	SessionHistory    []model.Session
	Goals             []model.Goal
}
