package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// FavoriteRepository 接口定义了收藏相关的数据库操作
type FavoriteRepository interface {
	Create(favorite *model.Favorite) error
	FindByID(id int) (*model.Favorite, error)
	FindByUserAndCar(userID, carID int) (*model.Favorite, error)
	ListByUser(userID int) ([]model.Favorite, error)
	Delete(id int) error
	DeleteByUserAndCar(userID, carID int) (bool, error)
}
