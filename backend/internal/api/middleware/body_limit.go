package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 导入接口的课表文档是最大的合法请求体，maxBytes 按它的上限留余量
// Content-Length 超限的直接拒绝，分块传输的靠 MaxBytesReader 在读取时截断
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, "请求体过大")
				return
			}
		}
	}
}
