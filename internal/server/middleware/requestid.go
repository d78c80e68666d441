package middleware

import (
	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	"quill/internal/pkg/id"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID 为每个请求分配 ID
// 客户端传入合法 UUID 时沿用，写入响应头、gin context 和 request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := id.OrNew(c.GetHeader(RequestIDHeader))

		c.Set(RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}
