package dto

import (
	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/pkg/response"
)

// ── 会话模块 DTO ──

// SessionPageSize 会话列表每页数量
const SessionPageSize = 10

// SessionFormRequest 预约 / 修改会话的公共字段
type SessionFormRequest struct {
	Topic       string `form:"topic"        binding:"required,max=255"`
	Description string `form:"description"  binding:"omitempty,max=5000"`
	SessionDate string `form:"session_date" binding:"required,datetime=2006-01-02"`
	SessionTime string `form:"session_time" binding:"required"`
	Duration    int    `form:"duration"     binding:"required,min=30,max=180"`
	Type        string `form:"type"         binding:"required,oneof=video_call in_person phone"`
}

// CreateSessionRequest 预约会话表单
type CreateSessionRequest struct {
	MentorID string `form:"mentor_id" binding:"required,uuid"`
	SessionFormRequest
}

// UpdateSessionRequest 修改会话表单
type UpdateSessionRequest struct {
	SessionFormRequest
}

// CompleteSessionRequest 完成会话表单
type CompleteSessionRequest struct {
	Notes string `form:"notes" binding:"omitempty,max=1000"`
}

// SessionItem 会话列表行：附带按请求时刻计算的可操作状态
type SessionItem struct {
	model.Session
	Editable    bool
	Cancellable bool
	Reviewable  bool // 已完成且尚未评价
}

// SessionListResult 会话列表页数据
type SessionListResult struct {
	Items      []SessionItem
	Pagination response.Pagination
}
