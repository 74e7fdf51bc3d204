package dto

// ── 认证模块 DTO ──

// LoginRequest 登录表单
type LoginRequest struct {
	Email    string `form:"email"    binding:"required,email,max=255"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
}

// RegisterRequest 注册表单
type RegisterRequest struct {
	Name                 string `form:"name"                  binding:"required,max=255"`
	Email                string `form:"email"                 binding:"required,email,max=255"`
	Password             string `form:"password"              binding:"required,min=8,max=72"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required,eqfield=Password"`
	Department           string `form:"department"            binding:"omitempty,max=100"`
	StudentID            string `form:"student_id"            binding:"omitempty,max=20"`
	Phone                string `form:"phone"                 binding:"omitempty,max=20"`
}

// SettingsRequest 账号设置表单；new_password 留空表示不修改密码
type SettingsRequest struct {
	Name                    string `form:"name"                      binding:"required,max=255"`
	Email                   string `form:"email"                     binding:"required,email,max=255"`
	StudentID               string `form:"student_id"                binding:"omitempty,max=20"`
	Department              string `form:"department"                binding:"omitempty,max=100"`
	Phone                   string `form:"phone"                     binding:"omitempty,max=20"`
	NewPassword             string `form:"new_password"              binding:"omitempty,min=6,max=72"`
	NewPasswordConfirmation string `form:"new_password_confirmation" binding:"eqfield=NewPassword"`
}

// LoginResult 登录成功后写入 Cookie 的令牌
type LoginResult struct {
	Token     string
	ExpiresAt int64 // Unix 秒
	UserID    string
	Name      string
}
