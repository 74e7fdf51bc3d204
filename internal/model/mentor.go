package model

import "gorm.io/datatypes"

// 导师可约状态
const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
	AvailabilityOffline   = "offline"
)

// Mentor 导师档案表 — 对应 mentors（导师不是登录账号）
type Mentor struct {
	MentorID           string                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mentor_id"`
	Name               string                      `gorm:"type:varchar(255);not null"                     json:"name"`
	Email              string                      `gorm:"type:varchar(255);not null"                     json:"email"`
	Department         string                      `gorm:"type:varchar(100);not null"                     json:"department"`
	Expertise          string                      `gorm:"type:text;not null"                             json:"expertise"`
	Bio                string                      `gorm:"type:text"                                      json:"bio,omitempty"`
	ExperienceYears    int                         `gorm:"not null;default:0"                             json:"experience_years"`
	Rating             float64                     `gorm:"type:numeric(3,2);not null;default:0"           json:"rating"`
	TotalSessions      int                         `gorm:"not null;default:0"                             json:"total_sessions"`
	TotalReviews       int                         `gorm:"not null;default:0"                             json:"total_reviews"`
	AvailabilityStatus string                      `gorm:"type:varchar(20);not null;default:'available'"  json:"availability_status"`
	Skills             datatypes.JSONSlice[string] `gorm:"type:jsonb"                                     json:"skills"`
	Location           string                      `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	Price              string                      `gorm:"type:varchar(50);not null;default:'Free'"       json:"price"`
	Timestamps
}

// TableName 指定表名
func (Mentor) TableName() string { return "mentors" }

// IsAvailable 是否可预约
func (m *Mentor) IsAvailable() bool {
	return m.AvailabilityStatus == AvailabilityAvailable
}

// Initials 头像占位字母，最多两个
func (m *Mentor) Initials() string {
	out := make([]rune, 0, 2)
	inWord := false
	for _, r := range m.Name {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			out = append(out, r)
			inWord = true
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}
