package service

import (
	"strings"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// 搜索建议的配额
const (
	suggestPerField = 5
	suggestTotalCap = 10
	suggestMinQuery = 2
)

// StatsService 提供市场统计与搜索建议
type StatsService struct {
	statsRepo interfaces.StatsRepository
}

// NewStatsService 创建一个新的 StatsService 实例
func NewStatsService(statsRepo interfaces.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// MarketStats 返回市场统计数据
// 查询失败时降级为零值而不是整页报错
func (s *StatsService) MarketStats() *model.MarketStats {
	stats, err := s.statsRepo.MarketStats()
	if err != nil {
		util.Logger.Error("市场统计查询失败，降级为空数据", zap.Error(err))
		return &model.MarketStats{
			Makes:         []string{},
			FuelTypes:     []string{},
			Transmissions: []string{},
		}
	}
	return stats
}

// Suggest 返回搜索建议，按品牌、型号、地区的顺序各取最多5条，总数不超过10条
// 查询串少于2个字符时直接返回空列表
func (s *StatsService) Suggest(query string) ([]model.Suggestion, error) {
	query = strings.TrimSpace(query)
	suggestions := []model.Suggestion{}
	if len(query) < suggestMinQuery {
		return suggestions, nil
	}

	fields := []struct {
		kind string
		fn   func(string, int) ([]string, error)
	}{
		{"make", s.statsRepo.SuggestMakes},
		{"model", s.statsRepo.SuggestModels},
		{"location", s.statsRepo.SuggestLocations},
	}

	for _, field := range fields {
		values, err := field.fn(query, suggestPerField)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询搜索建议失败", err)
		}
		for _, value := range values {
			suggestions = append(suggestions, model.Suggestion{Type: field.kind, Value: value})
			if len(suggestions) >= suggestTotalCap {
				return suggestions, nil
			}
		}
	}
	return suggestions, nil
}
