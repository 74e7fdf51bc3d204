package model

import (
	"time"

	"gorm.io/datatypes"
)

// 会话状态
const (
	SessionStatusPending   = "pending"
	SessionStatusConfirmed = "confirmed"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// 会话形式
const (
	SessionTypeVideoCall = "video_call"
	SessionTypeInPerson  = "in_person"
	SessionTypePhone     = "phone"
)

// 时长范围（分钟）
const (
	MinSessionDuration = 30
	MaxSessionDuration = 180
)

// Session 辅导会话表 — 对应 sessions
type Session struct {
	SessionID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	UserID      string         `gorm:"type:uuid;not null"                             json:"user_id"`
	MentorID    string         `gorm:"type:uuid;not null"                             json:"mentor_id"`
	Topic       string         `gorm:"type:varchar(255);not null"                     json:"topic"`
	Description string         `gorm:"type:text"                                      json:"description,omitempty"`
	SessionDate datatypes.Date `gorm:"type:date;not null"                             json:"session_date"`
	SessionTime datatypes.Time `gorm:"type:time;not null"                             json:"session_time"`
	Duration    int            `gorm:"not null;default:60"                            json:"duration"`
	Type        string         `gorm:"type:varchar(20);not null;default:'video_call'" json:"type"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Notes       string         `gorm:"type:text"                                      json:"notes,omitempty"`
	Timestamps

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID"   json:"mentor,omitempty"`
	Review *Review `gorm:"foreignKey:SessionID;references:SessionID" json:"review,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// StartsAt 会话开始时刻，日期与时间按 loc 解释
func (s *Session) StartsAt(loc *time.Location) time.Time {
	y, m, d := time.Time(s.SessionDate).Date()
	clock := time.Duration(s.SessionTime)
	h := int(clock / time.Hour)
	mi := int(clock % time.Hour / time.Minute)
	sec := int(clock % time.Minute / time.Second)
	return time.Date(y, m, d, h, mi, sec, 0, loc)
}

// EndsAt 会话结束时刻
func (s *Session) EndsAt(loc *time.Location) time.Time {
	return s.StartsAt(loc).Add(time.Duration(s.Duration) * time.Minute)
}

// IsPast 开始时刻严格早于 now 才算已过去；时区取 now 的时区
func (s *Session) IsPast(now time.Time) bool {
	return s.StartsAt(now.Location()).Before(now)
}

// IsOpen 状态仍为待确认或已确认
func (s *Session) IsOpen() bool {
	return s.Status == SessionStatusPending || s.Status == SessionStatusConfirmed
}

// CanBeEdited 可编辑：状态开放且尚未开始
func (s *Session) CanBeEdited(now time.Time) bool {
	return s.IsOpen() && !s.IsPast(now)
}

// CanBeCancelled 可取消，窗口与编辑一致
func (s *Session) CanBeCancelled(now time.Time) bool {
	return s.CanBeEdited(now)
}

// IsCompleted 是否已完成
func (s *Session) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// IsOwnedBy 归属校验
func (s *Session) IsOwnedBy(userID string) bool {
	return s.UserID == userID
}

// TypeLabel 会话形式的展示名
func (s *Session) TypeLabel() string {
	switch s.Type {
	case SessionTypeVideoCall:
		return "Video Call"
	case SessionTypeInPerson:
		return "In Person"
	case SessionTypePhone:
		return "Phone"
	}
	return s.Type
}

// DateString YYYY-MM-DD，表单回填使用；未设置日期时为空
func (s *Session) DateString() string {
	if time.Time(s.SessionDate).IsZero() {
		return ""
	}
	return time.Time(s.SessionDate).Format("2006-01-02")
}

// TimeString HH:MM，表单回填使用；未设置日期时为空
func (s *Session) TimeString() string {
	if time.Time(s.SessionDate).IsZero() {
		return ""
	}
	clock := time.Duration(s.SessionTime)
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(clock).Format("15:04")
}
