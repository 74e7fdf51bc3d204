package model

// User 学员账号表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(255);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Department   string `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	StudentID    string `gorm:"type:varchar(20)"                               json:"student_id,omitempty"`
	Phone        string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Timestamps
}

// TableName 指定表名
func (User) TableName() string { return "users" }
