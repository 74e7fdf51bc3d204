package dto

import "github.com/saelmaa/pso-itsmentormatch/internal/model"

// ── 评价模块 DTO ──

// CreateReviewRequest 提交评价表单；session_id 为空表示整体评价
type CreateReviewRequest struct {
	MentorID  string `form:"mentor_id"  binding:"required,uuid"`
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
	Rating    int    `form:"rating"     binding:"required,min=1,max=5"`
	Feedback  string `form:"feedback"   binding:"omitempty,max=1000"`
}

// UpdateReviewRequest 修改评价表单
type UpdateReviewRequest struct {
	Rating   int    `form:"rating"   binding:"required,min=1,max=5"`
	Feedback string `form:"feedback" binding:"omitempty,max=1000"`
}

// ReviewForm 评价页数据：Session 非空时为针对会话的评价，否则在 Mentors 中选择
type ReviewForm struct {
	Session *model.Session
	Mentors []model.Mentor
}
