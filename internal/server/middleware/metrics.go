package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"quill/internal/metrics"
)

// Metrics 按方法、路由和状态码统计请求数
// 未匹配路由统一记为 "unmatched"，避免标签基数失控
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
