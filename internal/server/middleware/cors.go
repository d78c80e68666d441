package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quill/internal/config"
)

// CORS 跨域中间件
// 只允许配置中的前端来源，方法限定 GET/POST
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        cfg.MaxAge,
	})
}
