package stats

import (
	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler 处理市场统计与搜索建议请求
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler 创建一个新的 StatsHandler 实例
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService}
}

// MarketStats 返回市场统计数据
func (h *StatsHandler) MarketStats(c *gin.Context) {
	errors.HandleSuccess(c, h.statsService.MarketStats(), "")
}

// Suggest 返回搜索自动补全建议
func (h *StatsHandler) Suggest(c *gin.Context) {
	suggestions, err := h.statsService.Suggest(c.Query("q"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, suggestions, "")
}
