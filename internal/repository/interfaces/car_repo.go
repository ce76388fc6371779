package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// CarRepository 接口定义了车辆相关的数据库操作
type CarRepository interface {
	Create(car *model.Car, imageURLs []string) error
	FindByID(id int) (*model.Car, error)
	Update(car *model.Car) error
	Delete(id int) error

	// List 只返回已发布的车辆
	List(filters model.CarFilters, page, pageSize int) ([]model.Car, int, error)
	ListByDealer(dealerID int) ([]model.Car, error)

	GetImages(carID int) ([]model.CarImage, error)
	MaxImageOrder(carID int) (int, error)
	AddImages(carID, startOrder int, imageURLs []string) error

	// 批量发布的归属校验与更新，UPDATE 始终带 dealer_id 条件
	CountOwned(dealerID int, carIDs []int) (int, error)
	SetPublished(dealerID int, carIDs []int, published bool) (int, error)
}
