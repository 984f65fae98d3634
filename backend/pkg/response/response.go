package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 与前端约定的响应形态：成功直接返回数据对象，
// 失败统一返回 {"error": "<message>"}。

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
}

// AckBody 简单确认响应体
type AckBody struct {
	OK bool `json:"ok"`
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Ack 200 无数据成功响应 {"ok": true}
func Ack(c *gin.Context) {
	c.JSON(http.StatusOK, AckBody{OK: true})
}

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "服务器内部错误")
}
