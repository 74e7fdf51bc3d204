package model

import (
	"time"

	"gorm.io/datatypes"
)

// Goal 学习目标表 — 对应 goals
type Goal struct {
	GoalID         string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"goal_id"`
	UserID         string          `gorm:"type:uuid;not null"                             json:"user_id"`
	Title          string          `gorm:"type:varchar(255);not null"                     json:"title"`
	MentorName     string          `gorm:"type:varchar(255)"                              json:"mentor_name,omitempty"`
	TargetSessions int             `gorm:"not null;default:1"                             json:"target_sessions"`
	Deadline       *datatypes.Date `gorm:"type:date"                                      json:"deadline,omitempty"`
	Timestamps

	// SessionsCompleted 读取时实时计算，不落库
	SessionsCompleted int `gorm:"-" json:"sessions_completed"`
}

// TableName 指定表名
func (Goal) TableName() string { return "goals" }

// Matches 会话话题与目标标题在忽略大小写和首尾空白后相等
func (g *Goal) Matches(topic string) bool {
	return NormalizeTopic(topic) == NormalizeTopic(g.Title)
}

// CountCompleted 统计匹配本目标的已完成会话数并写入 SessionsCompleted
func (g *Goal) CountCompleted(sessions []Session) int {
	n := 0
	for i := range sessions {
		if sessions[i].IsCompleted() && g.Matches(sessions[i].Topic) {
			n++
		}
	}
	g.SessionsCompleted = n
	return n
}

// Percent 完成百分比，上限 100
func (g *Goal) Percent() float64 {
	if g.TargetSessions <= 0 {
		return 0
	}
	p := float64(g.SessionsCompleted) / float64(g.TargetSessions) * 100
	if p > 100 {
		return 100
	}
	return p
}

// IsOverdue 截止日期已过且未完成
func (g *Goal) IsOverdue(now time.Time) bool {
	if g.Deadline == nil || g.SessionsCompleted >= g.TargetSessions {
		return false
	}
	y, m, d := time.Time(*g.Deadline).Date()
	end := time.Date(y, m, d, 23, 59, 59, 0, now.Location())
	return now.After(end)
}
