package util

import (
	"errors"
	"net/http"

	"learnhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string, details ...string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Errors:  details,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c)
}

// RespondError 将 AppError 映射为 HTTP 状态码；非业务错误一律按 500 处理，
// 详情只写日志不回给客户端
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		LogInternalError(c, err)
		return
	}

	switch appErr.Kind {
	case KindValidation:
		Error(c, http.StatusBadRequest, appErr.Message, appErr.Details...)
	case KindAuthentication:
		Error(c, http.StatusUnauthorized, appErr.Message)
	case KindAuthorization:
		Error(c, http.StatusForbidden, appErr.Message)
	case KindNotFound:
		Error(c, http.StatusNotFound, appErr.Message)
	case KindConflict:
		Error(c, http.StatusConflict, appErr.Message)
	default:
		LogInternalError(c, appErr)
	}
}
