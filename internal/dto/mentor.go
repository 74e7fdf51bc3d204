package dto

import (
	"strings"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
	"github.com/saelmaa/pso-itsmentormatch/pkg/response"
)

// ── 导师模块 DTO ──

// 每页 / 面板数量
const (
	MentorPageSize   = 12
	FeaturedMentors  = 6
	TopMentorsLimit  = 5
	ProfileReviewCap = 10
)

// MentorListRequest 导师目录查询参数
type MentorListRequest struct {
	PaginationRequest
	Search     string `form:"search"     binding:"omitempty,max=100"`
	Department string `form:"department" binding:"omitempty,max=100"`
}

// MentorApplyRequest “成为导师”申请表单
type MentorApplyRequest struct {
	Name               string `form:"name"                binding:"required,max=255"`
	Email              string `form:"email"               binding:"required,email,max=255"`
	Department         string `form:"department"          binding:"required,max=100"`
	Expertise          string `form:"expertise"           binding:"required,max=1000"`
	Bio                string `form:"bio"                 binding:"omitempty,max=2000"`
	Skills             string `form:"skills"              binding:"omitempty,max=1000"` // 逗号分隔
	Location           string `form:"location"            binding:"omitempty,max=100"`
	AvailabilityStatus string `form:"availability_status" binding:"omitempty,oneof=available busy offline"`
	ExperienceYears    int    `form:"experience_years"    binding:"omitempty,min=0,max=60"`
	Price              string `form:"price"               binding:"omitempty,max=50"`
}

// SkillList 将逗号分隔的技能拆分为去空白、去空项的列表
func (r *MentorApplyRequest) SkillList() []string {
	if strings.TrimSpace(r.Skills) == "" {
		return nil
	}
	parts := strings.Split(r.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MentorListResult 导师目录页数据
type MentorListResult struct {
	Mentors     []model.Mentor
	Pagination  response.Pagination
	Departments []string
}

// MentorProfile 导师详情页数据
type MentorProfile struct {
	Mentor  *model.Mentor
	Reviews []model.Review
}

// HomeData 首页数据
type HomeData struct {
	Search          string
	TopMentors      []model.Mentor
	FeaturedMentors []model.Mentor
	TotalMentors    int64
	TotalSessions   int64
}
