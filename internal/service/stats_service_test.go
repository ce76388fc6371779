package service

import (
	"errors"
	"testing"

	"github.com/leonemunyao/alx-project-nexus/internal/model"

	"github.com/stretchr/testify/assert"
)

// TestMarketStatsDegrades 测试统计查询失败时降级为空数据
func TestMarketStatsDegrades(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewStatsService(repo)

	repo.On("MarketStats").Return(nil, errors.New("db down"))

	stats := service.MarketStats()
	assert.Equal(t, 0, stats.TotalCars)
	assert.Empty(t, stats.Makes)
	assert.NotNil(t, stats.Makes)
}

// TestSuggestShortQuery 测试过短的查询直接返回空列表
func TestSuggestShortQuery(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewStatsService(repo)

	suggestions, err := service.Suggest("t")
	assert.NoError(t, err)
	assert.Empty(t, suggestions)
	repo.AssertNotCalled(t, "SuggestMakes", "t", 5)
}

// TestSuggestOrderAndQuota 测试品牌、型号、地区的顺序与每类配额
func TestSuggestOrderAndQuota(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewStatsService(repo)

	repo.On("SuggestMakes", "to", 5).Return([]string{"Toyota"}, nil)
	repo.On("SuggestModels", "to", 5).Return([]string{"Tacoma", "Tundra"}, nil)
	repo.On("SuggestLocations", "to", 5).Return([]string{"Tokyo"}, nil)

	suggestions, err := service.Suggest("to")
	assert.NoError(t, err)
	assert.Equal(t, []model.Suggestion{
		{Type: "make", Value: "Toyota"},
		{Type: "model", Value: "Tacoma"},
		{Type: "model", Value: "Tundra"},
		{Type: "location", Value: "Tokyo"},
	}, suggestions)
}

// TestSuggestTotalCap 测试总数不超过10条
func TestSuggestTotalCap(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewStatsService(repo)

	makes := []string{"A1", "A2", "A3", "A4", "A5"}
	models := []string{"B1", "B2", "B3", "B4", "B5"}
	locations := []string{"C1", "C2", "C3"}
	repo.On("SuggestMakes", "aa", 5).Return(makes, nil)
	repo.On("SuggestModels", "aa", 5).Return(models, nil)
	repo.On("SuggestLocations", "aa", 5).Return(locations, nil)

	suggestions, err := service.Suggest("aa")
	assert.NoError(t, err)
	assert.Len(t, suggestions, 10)
	// 地区建议被配额挤掉
	assert.Equal(t, "model", suggestions[9].Type)
}

// TestSuggestTrimsQuery 测试查询串先去除首尾空白
func TestSuggestTrimsQuery(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewStatsService(repo)

	suggestions, err := service.Suggest(" a ")
	assert.NoError(t, err)
	assert.Empty(t, suggestions)
	repo.AssertNotCalled(t, "SuggestMakes", "a", 5)
}
