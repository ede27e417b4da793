// Package httperr 定义服务内部统一的失败分类。
// 所有业务失败在请求边界被还原为 (kind, message)，不会让进程崩溃。
package httperr

import (
	"errors"
	"net/http"
)

// Kind 表示失败类别。
type Kind int

const (
	// KindValidation 请求字段缺失/越界/枚举非法，message 为各字段错误拼接。
	KindValidation Kind = iota + 1
	// KindNotFound 记录不存在，或标识符格式非法（两者刻意不可区分）。
	KindNotFound
	// KindAuthentication 凭证缺失/非法/过期。
	KindAuthentication
	// KindAuthorization 身份有效但权限不足（非 owner 且非 admin）。
	KindAuthorization
	// KindConflict 重复收藏，或唯一约束在竞态中兜底拦截。
	KindConflict
	// KindTransient 底层存储不可用等瞬断错误，不在本层重试。
	KindTransient
)

// Error 是带类别的业务错误。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New 构造指定类别的错误。
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error     { return New(KindValidation, message) }
func NotFound(message string) *Error       { return New(KindNotFound, message) }
func Authentication(message string) *Error { return New(KindAuthentication, message) }
func Authorization(message string) *Error  { return New(KindAuthorization, message) }
func Conflict(message string) *Error       { return New(KindConflict, message) }
func Transient(message string) *Error      { return New(KindTransient, message) }

// KindOf 提取错误的类别；无法识别时按瞬断错误处理。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

// StatusCode 将类别映射为 HTTP 状态码。
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
