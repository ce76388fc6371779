package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// DealershipRepository 接口定义了店铺相关的数据库操作
type DealershipRepository interface {
	Create(dealership *model.Dealership) error
	FindByDealerID(dealerID int) (*model.Dealership, error)
	Update(dealership *model.Dealership) error
	ListPublished() ([]model.Dealership, error)
	// LoadStats 填充 total_cars、locations_served 与 average_rating，
	// 统计口径只包含该经销商已发布的车辆
	LoadStats(dealership *model.Dealership) error
}
