package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct{}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health 存活检查，不依赖上游和配置
// @Summary      存活检查
// @Tags         系统
// @Produce      plain
// @Success      200  {string}  string  "Healthy"
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Healthy")
}

// Ready 就绪检查
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
