package errors

import "errors"

// 跨模块共享的三类失败之二：授权失败与资源不存在。
// 业务规则拒绝由各 service 模块自行定义哨兵错误。
var (
	// ErrForbidden 操作他人资源
	ErrForbidden = errors.New("无权操作该资源")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
)

// FieldError 绑定到具体表单字段的业务校验失败（如邮箱已被占用）
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError 创建字段级错误
func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// AsFieldError 判断 err 是否为字段级错误
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
