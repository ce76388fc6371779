package mysql

import (
	"database/sql"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// statsRepository 实现了 StatsRepository 接口
type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository 创建一个新的 statsRepository 实例
func NewStatsRepository(db *sql.DB) *statsRepository {
	return &statsRepository{db}
}

// MarketStats 返回市场统计数据，统计口径只包含已发布的车辆
func (r *statsRepository) MarketStats() (*model.MarketStats, error) {
	stats := &model.MarketStats{
		Makes:         []string{},
		FuelTypes:     []string{},
		Transmissions: []string{},
	}

	err := r.db.QueryRow(`SELECT COUNT(*), COALESCE(AVG(price), 0),
		       (SELECT COUNT(*) FROM dealers)
		FROM cars WHERE published = true`).
		Scan(&stats.TotalCars, &stats.AveragePrice, &stats.TotalDealers)
	if err != nil {
		util.Logger.Error("查询市场统计失败", zap.Error(err))
		return nil, err
	}

	if err := r.distinctValues(`SELECT DISTINCT make FROM cars
		WHERE published = true ORDER BY make`, &stats.Makes); err != nil {
		return nil, err
	}
	if err := r.distinctValues(`SELECT DISTINCT fuel_type FROM cars
		WHERE published = true AND fuel_type IS NOT NULL ORDER BY fuel_type`, &stats.FuelTypes); err != nil {
		return nil, err
	}
	if err := r.distinctValues(`SELECT DISTINCT transmission FROM cars
		WHERE published = true AND transmission IS NOT NULL ORDER BY transmission`, &stats.Transmissions); err != nil {
		return nil, err
	}

	return stats, nil
}

// distinctValues 执行单列查询并收集结果
func (r *statsRepository) distinctValues(query string, dest *[]string) error {
	rows, err := r.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return err
		}
		*dest = append(*dest, value)
	}
	return rows.Err()
}

// suggest 返回前缀或子串匹配的去重建议值
func (r *statsRepository) suggest(column, query string, limit int) ([]string, error) {
	values := []string{}
	rows, err := r.db.Query(
		`SELECT DISTINCT `+column+` FROM cars
         WHERE published = true AND `+column+` LIKE ?
         ORDER BY `+column+` LIMIT ?`,
		"%"+query+"%", limit)
	if err != nil {
		util.Logger.Error("查询搜索建议失败", zap.Error(err), zap.String("column", column))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// SuggestMakes 返回匹配的品牌建议
func (r *statsRepository) SuggestMakes(query string, limit int) ([]string, error) {
	return r.suggest("make", query, limit)
}

// SuggestModels 返回匹配的型号建议
func (r *statsRepository) SuggestModels(query string, limit int) ([]string, error) {
	return r.suggest("model", query, limit)
}

// SuggestLocations 返回匹配的地区建议
func (r *statsRepository) SuggestLocations(query string, limit int) ([]string, error) {
	return r.suggest("location", query, limit)
}
