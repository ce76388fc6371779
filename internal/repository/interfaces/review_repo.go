package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// ReviewRepository 接口定义了评价相关的数据库操作
type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id int) (*model.Review, error)
	ListByCar(carID int) ([]model.Review, error)
	Update(review *model.Review) error
	Delete(id int) error
	// AggregateByCar 返回评分均值（未四舍五入）与评价数量，无评价时均为零值
	AggregateByCar(carID int) (float64, int, error)
}
