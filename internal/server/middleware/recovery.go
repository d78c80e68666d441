package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quill/internal/model"
)

// Recovery 异常恢复中间件
// 单个请求 panic 不影响其他请求，返回统一的错误响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Str("request_id", c.GetString(RequestIDKey)).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
					Error: "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}
