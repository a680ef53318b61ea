package response

// AppError 统一错误包装
type AppError struct {
	Code    int    // HTTP 状态码
	Kind    string // 机器可读的错误类别
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// WithField 标记出错字段
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}
