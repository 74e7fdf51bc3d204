package dto

// ── 分页请求 ──

// PaginationRequest 通用分页参数（页面表单只传 page）
type PaginationRequest struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset(pageSize int) int {
	return (p.GetPage() - 1) * pageSize
}
