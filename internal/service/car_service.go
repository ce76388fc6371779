package service

import (
	"fmt"
	"math"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// CarService 提供车辆的查询、发布与管理
type CarService struct {
	carRepo    interfaces.CarRepository
	reviewRepo interfaces.ReviewRepository
	favRepo    interfaces.FavoriteRepository
}

// NewCarService 创建一个新的 CarService 实例
func NewCarService(carRepo interfaces.CarRepository, reviewRepo interfaces.ReviewRepository,
	favRepo interfaces.FavoriteRepository) *CarService {
	return &CarService{carRepo: carRepo, reviewRepo: reviewRepo, favRepo: favRepo}
}

// roundRating 评分均值保留一位小数
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// oneOf 判断值是否在枚举列表中
func oneOf(choices []string, value string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}

// validateCar 校验年份、价格与枚举字段的业务约束
func validateCar(car *model.Car) error {
	if car.Year < util.MinCarYear || car.Year > util.MaxCarYear() {
		return errors.New(errors.ErrInvalidYear,
			fmt.Sprintf("年份必须在 %d 到 %d 之间", util.MinCarYear, util.MaxCarYear()))
	}
	if car.Price <= 0 {
		return errors.New(errors.ErrInvalidPrice, "价格必须大于零")
	}
	if car.Transmission != "" && !oneOf(model.TransmissionChoices, car.Transmission) {
		return errors.New(errors.ErrValidation, "transmission: 无效的变速箱类型")
	}
	if car.FuelType != "" && !oneOf(model.FuelChoices, car.FuelType) {
		return errors.New(errors.ErrValidation, "fuel_type: 无效的燃料类型")
	}
	return nil
}

// CreateCar 创建车辆并附带初始图片，新车默认未发布
func (s *CarService) CreateCar(car *model.Car, imageURLs []string) error {
	if err := validateCar(car); err != nil {
		return err
	}

	if err := s.carRepo.Create(car, imageURLs); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrDuplicateKey, "图片展示序号已被占用")
		}
		return errors.Wrap(errors.ErrDatabase, "创建车辆失败", err)
	}
	return nil
}

// ListCars 分页返回已发布的车辆
// viewerID 大于零时填充收藏状态
func (s *CarService) ListCars(filters model.CarFilters, page, pageSize, viewerID int) ([]model.Car, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	cars, total, err := s.carRepo.List(filters, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询车辆列表失败", err)
	}
	if cars == nil {
		cars = []model.Car{}
	}

	for i := range cars {
		cars[i].AverageRating = roundRating(cars[i].AverageRating)
		if viewerID > 0 {
			fav, err := s.favRepo.FindByUserAndCar(viewerID, cars[i].ID)
			if err != nil {
				return nil, 0, errors.Wrap(errors.ErrDatabase, "查询收藏状态失败", err)
			}
			cars[i].IsFavorited = fav != nil
		}
	}
	return cars, total, nil
}

// GetCar 返回车辆详情，附带图片与评价
// 未发布的车辆只有车主经销商可见，viewerDealerID 为访问者的经销商档案ID（没有则为0）
func (s *CarService) GetCar(id, viewerID, viewerDealerID int) (*model.Car, error) {
	car, err := s.carRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询车辆失败", err)
	}
	if car == nil {
		return nil, errors.New(errors.ErrNotFound, "车辆不存在")
	}
	if !car.Published && car.DealerID != viewerDealerID {
		// 未发布的车辆对外表现为不存在
		return nil, errors.New(errors.ErrNotFound, "车辆不存在")
	}

	car.AverageRating = roundRating(car.AverageRating)

	images, err := s.carRepo.GetImages(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询车辆图片失败", err)
	}
	car.Images = images

	reviews, err := s.reviewRepo.ListByCar(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询车辆评价失败", err)
	}
	car.Reviews = reviews

	if viewerID > 0 {
		fav, err := s.favRepo.FindByUserAndCar(viewerID, id)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询收藏状态失败", err)
		}
		car.IsFavorited = fav != nil
	}
	return car, nil
}

// ListDealerCars 返回经销商的全部车辆，包含未发布的
func (s *CarService) ListDealerCars(dealerID int) ([]model.Car, error) {
	cars, err := s.carRepo.ListByDealer(dealerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询经销商车辆失败", err)
	}
	if cars == nil {
		cars = []model.Car{}
	}
	for i := range cars {
		cars[i].AverageRating = roundRating(cars[i].AverageRating)
	}
	return cars, nil
}

// findOwnedCar 查找车辆并校验归属
func (s *CarService) findOwnedCar(carID, dealerID int) (*model.Car, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询车辆失败", err)
	}
	if car == nil {
		return nil, errors.New(errors.ErrNotFound, "车辆不存在")
	}
	if car.DealerID != dealerID {
		return nil, errors.New(errors.ErrForbidden, "无权操作他人的车辆")
	}
	return car, nil
}

// UpdateCar 更新车辆信息，只有车主经销商可以修改
// updates 中的零值字段保持原值，新图片追加到已有序列之后
func (s *CarService) UpdateCar(carID, dealerID int, updates *model.Car, imageURLs []string) (*model.Car, error) {
	car, err := s.findOwnedCar(carID, dealerID)
	if err != nil {
		return nil, err
	}

	if updates.Title != "" {
		car.Title = updates.Title
	}
	if updates.Make != "" {
		car.Make = updates.Make
	}
	if updates.Model != "" {
		car.Model = updates.Model
	}
	if updates.Location != "" {
		car.Location = updates.Location
	}
	if updates.Year != 0 {
		car.Year = updates.Year
	}
	if updates.Price != 0 {
		car.Price = updates.Price
	}
	if updates.Mileage != nil {
		car.Mileage = updates.Mileage
	}
	if updates.Transmission != "" {
		car.Transmission = updates.Transmission
	}
	if updates.FuelType != "" {
		car.FuelType = updates.FuelType
	}
	if updates.Condition != "" {
		car.Condition = updates.Condition
	}
	if updates.Description != "" {
		car.Description = updates.Description
	}
	if updates.CategoryID != nil {
		car.CategoryID = updates.CategoryID
	}

	if err := validateCar(car); err != nil {
		return nil, err
	}

	if err := s.carRepo.Update(car); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新车辆失败", err)
	}

	if len(imageURLs) > 0 {
		maxOrder, err := s.carRepo.MaxImageOrder(carID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询图片序号失败", err)
		}
		if err := s.carRepo.AddImages(carID, maxOrder+1, imageURLs); err != nil {
			if mysql.IsDuplicateEntry(err) {
				return nil, errors.New(errors.ErrDuplicateKey, "图片展示序号已被占用")
			}
			return nil, errors.Wrap(errors.ErrDatabase, "追加车辆图片失败", err)
		}
	}

	images, err := s.carRepo.GetImages(carID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询车辆图片失败", err)
	}
	car.Images = images
	return car, nil
}

// SetPublished 切换单辆车的发布状态，只有车主经销商可以操作
func (s *CarService) SetPublished(carID, dealerID int, published bool) (*model.Car, error) {
	car, err := s.findOwnedCar(carID, dealerID)
	if err != nil {
		return nil, err
	}

	car.Published = published
	if err := s.carRepo.Update(car); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新车辆失败", err)
	}

	util.Logger.Info("车辆发布状态更新",
		zap.Int("car_id", carID),
		zap.Bool("published", published))
	return car, nil
}

// BulkPublish 批量更新发布状态
// 任一车辆不属于该经销商时整体拒绝，不做部分更新
func (s *CarService) BulkPublish(dealerID int, carIDs []int, published bool) (int, error) {
	if len(carIDs) == 0 {
		return 0, errors.New(errors.ErrBadRequest, "车辆ID列表不能为空")
	}

	// 去重，避免重复ID使归属计数对不上
	seen := make(map[int]bool, len(carIDs))
	unique := make([]int, 0, len(carIDs))
	for _, id := range carIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	carIDs = unique

	owned, err := s.carRepo.CountOwned(dealerID, carIDs)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "校验车辆归属失败", err)
	}
	if owned != len(carIDs) {
		return 0, errors.New(errors.ErrPartialOwnership, "列表中包含不存在或不属于你的车辆")
	}

	affected, err := s.carRepo.SetPublished(dealerID, carIDs, published)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "批量更新发布状态失败", err)
	}
	return affected, nil
}

// DeleteCar 删除车辆及其关联数据，只有车主经销商可以操作
func (s *CarService) DeleteCar(carID, dealerID int) error {
	if _, err := s.findOwnedCar(carID, dealerID); err != nil {
		return err
	}

	if err := s.carRepo.Delete(carID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除车辆失败", err)
	}

	util.Logger.Info("车辆删除成功", zap.Int("car_id", carID))
	return nil
}
