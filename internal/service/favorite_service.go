package service

import (
	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// FavoriteService 提供收藏的创建、删除与切换
type FavoriteService struct {
	favRepo interfaces.FavoriteRepository
	carRepo interfaces.CarRepository
}

// NewFavoriteService 创建一个新的 FavoriteService 实例
func NewFavoriteService(favRepo interfaces.FavoriteRepository, carRepo interfaces.CarRepository) *FavoriteService {
	return &FavoriteService{favRepo: favRepo, carRepo: carRepo}
}

// findPublishedCar 收藏操作只对已发布的车辆有效
func (s *FavoriteService) findPublishedCar(carID int) error {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询车辆失败", err)
	}
	if car == nil || !car.Published {
		return errors.New(errors.ErrNotFound, "车辆不存在")
	}
	return nil
}

// AddFavorite 收藏车辆，重复收藏是冲突而不是空操作
func (s *FavoriteService) AddFavorite(userID, carID int) (*model.Favorite, error) {
	if err := s.findPublishedCar(carID); err != nil {
		return nil, err
	}

	favorite := &model.Favorite{UserID: userID, CarID: carID}
	if err := s.favRepo.Create(favorite); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return nil, errors.New(errors.ErrAlreadyFavorited, "你已经收藏过这辆车")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "创建收藏失败", err)
	}
	return favorite, nil
}

// ToggleFavorite 切换收藏状态，返回切换后是否处于收藏态
// 与 AddFavorite 不同，这里重复操作永远不报冲突
// 取消收藏不要求车辆仍处于发布态，车辆下架后收藏还能撤掉
func (s *FavoriteService) ToggleFavorite(userID, carID int) (bool, error) {
	deleted, err := s.favRepo.DeleteByUserAndCar(userID, carID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "删除收藏失败", err)
	}
	if deleted {
		return false, nil
	}

	if err := s.findPublishedCar(carID); err != nil {
		return false, err
	}

	favorite := &model.Favorite{UserID: userID, CarID: carID}
	if err := s.favRepo.Create(favorite); err != nil {
		if mysql.IsDuplicateEntry(err) {
			// 并发切换竞争时以已收藏为准
			return true, nil
		}
		return false, errors.Wrap(errors.ErrDatabase, "创建收藏失败", err)
	}

	util.Logger.Info("收藏状态切换",
		zap.Int("user_id", userID),
		zap.Int("car_id", carID),
		zap.Bool("favorited", true))
	return true, nil
}

// ListFavorites 返回用户的所有收藏
func (s *FavoriteService) ListFavorites(userID int) ([]model.Favorite, error) {
	favorites, err := s.favRepo.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询收藏列表失败", err)
	}
	if favorites == nil {
		favorites = []model.Favorite{}
	}
	return favorites, nil
}

// RemoveFavorite 通过收藏ID删除收藏，只有收藏者本人可以操作
func (s *FavoriteService) RemoveFavorite(favoriteID, userID int) error {
	favorite, err := s.favRepo.FindByID(favoriteID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询收藏失败", err)
	}
	if favorite == nil {
		return errors.New(errors.ErrNotFound, "收藏不存在")
	}
	if favorite.UserID != userID {
		return errors.New(errors.ErrForbidden, "只能删除自己的收藏")
	}

	if err := s.favRepo.Delete(favoriteID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除收藏失败", err)
	}
	return nil
}
