package model

// 评分范围
const (
	MinRating = 1
	MaxRating = 5
)

// Review 评价表 — 对应 reviews；session_id 为空表示不针对具体会话的整体评价
type Review struct {
	ReviewID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"review_id"`
	SessionID *string `gorm:"type:uuid"                                      json:"session_id,omitempty"`
	UserID    string  `gorm:"type:uuid;not null"                             json:"user_id"`
	MentorID  string  `gorm:"type:uuid;not null"                             json:"mentor_id"`
	Rating    int     `gorm:"not null"                                       json:"rating"`
	Feedback  string  `gorm:"type:text"                                      json:"feedback,omitempty"`
	Timestamps

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID" json:"mentor,omitempty"`
}

// TableName 指定表名
func (Review) TableName() string { return "reviews" }

// Stars 模板渲染星级用：true 表示实心
func (r *Review) Stars() []bool {
	out := make([]bool, MaxRating)
	for i := range out {
		out[i] = i < r.Rating
	}
	return out
}
