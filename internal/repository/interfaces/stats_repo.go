package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// StatsRepository 接口定义了统计与搜索建议的数据库操作
type StatsRepository interface {
	MarketStats() (*model.MarketStats, error)
	SuggestMakes(query string, limit int) ([]string, error)
	SuggestModels(query string, limit int) ([]string, error)
	SuggestLocations(query string, limit int) ([]string, error)
}
