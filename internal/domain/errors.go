package domain

import "errors"

// 业务错误清单，transport 层据此映射 HTTP 状态码
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidRole        = errors.New("invalid role")
)
