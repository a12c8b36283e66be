package util

import (
	"fmt"
	"strings"
)

// ErrorKind 错误分类，决定对外的 HTTP 状态码
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// AppError 业务错误，服务层统一返回该类型
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []string
	Err     error
}

func (e *AppError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, ", ")
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, details ...string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewUnexpectedError(err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: "internal server error", Err: err}
}

// MissingQuestionsError 测验提交缺题/多题时的校验错误，错误信息中列出具体题目ID
func MissingQuestionsError(missing, unknown []uint) *AppError {
	var details []string
	for _, id := range missing {
		details = append(details, fmt.Sprintf("missing answer for question %d", id))
	}
	for _, id := range unknown {
		details = append(details, fmt.Sprintf("unknown question %d", id))
	}
	return NewValidationError("incomplete quiz submission", details...)
}
