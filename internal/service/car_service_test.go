package service

import (
	"testing"
	"time"

	apperrors "github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCarService() (*CarService, *MockCarRepository, *MockReviewRepository, *MockFavoriteRepository) {
	carRepo := new(MockCarRepository)
	reviewRepo := new(MockReviewRepository)
	favRepo := new(MockFavoriteRepository)
	return NewCarService(carRepo, reviewRepo, favRepo), carRepo, reviewRepo, favRepo
}

// TestCreateCar 测试创建车辆
func TestCreateCar(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	car := &model.Car{
		DealerID: 1,
		Title:    "Toyota Corolla 2022",
		Make:     "Toyota",
		Model:    "Corolla",
		Location: "Nairobi",
		Year:     2022,
		Price:    15000,
	}
	carRepo.On("Create", car, []string{"cars/a.jpg"}).Return(nil)

	err := service.CreateCar(car, []string{"cars/a.jpg"})
	assert.NoError(t, err)
	carRepo.AssertExpectations(t)
}

// TestCreateCarYearBounds 测试年份区间校验
func TestCreateCarYearBounds(t *testing.T) {
	service, carRepo, _, _ := newCarService()
	carRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	car := &model.Car{Year: 2019, Price: 10000}
	err := service.CreateCar(car, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidYear))

	car.Year = time.Now().Year() + 2
	err = service.CreateCar(car, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidYear))

	// 次年车型允许提前上架
	car.Year = time.Now().Year() + 1
	err = service.CreateCar(car, nil)
	assert.False(t, apperrors.Is(err, apperrors.ErrInvalidYear))
}

// TestCreateCarInvalidPrice 测试价格必须为正
func TestCreateCarInvalidPrice(t *testing.T) {
	service, _, _, _ := newCarService()

	car := &model.Car{Year: 2022, Price: 0}
	err := service.CreateCar(car, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidPrice))
}

// TestCreateCarInvalidEnums 测试变速箱与燃料类型只接受枚举值
func TestCreateCarInvalidEnums(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	car := &model.Car{Year: 2022, Price: 10000, Transmission: "WARP-DRIVE"}
	err := service.CreateCar(car, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	car = &model.Car{Year: 2022, Price: 10000, FuelType: "PLUTONIUM"}
	err = service.CreateCar(car, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	carRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// 空值与合法枚举都放行
	car = &model.Car{Year: 2022, Price: 10000, Transmission: "CVT", FuelType: "HYBRID"}
	carRepo.On("Create", car, []string(nil)).Return(nil)
	assert.NoError(t, service.CreateCar(car, nil))
}

// TestCreateCarDuplicateImageOrder 测试图片序号冲突返回唯一键冲突
func TestCreateCarDuplicateImageOrder(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	car := &model.Car{Year: 2022, Price: 10000}
	carRepo.On("Create", car, []string{"cars/a.jpg"}).
		Return(&mysql.MySQLError{Number: 1062})

	err := service.CreateCar(car, []string{"cars/a.jpg"})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateKey))
}

// TestGetCarHidesUnpublished 测试未发布车辆对外表现为不存在
func TestGetCarHidesUnpublished(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 3, Published: false}, nil)

	_, err := service.GetCar(10, 0, 0)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

// TestGetCarOwnerSeesUnpublished 测试车主可见自己的未发布车辆
func TestGetCarOwnerSeesUnpublished(t *testing.T) {
	service, carRepo, reviewRepo, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 3, Published: false}, nil)
	carRepo.On("GetImages", 10).Return([]model.CarImage{}, nil)
	reviewRepo.On("ListByCar", 10).Return([]model.Review{}, nil)

	car, err := service.GetCar(10, 0, 3)
	assert.NoError(t, err)
	assert.Equal(t, 10, car.ID)
}

// TestGetCarRoundsRating 测试评分均值保留一位小数
func TestGetCarRoundsRating(t *testing.T) {
	service, carRepo, reviewRepo, favRepo := newCarService()

	carRepo.On("FindByID", 5).Return(&model.Car{
		ID: 5, DealerID: 1, Published: true, AverageRating: 4.666666,
	}, nil)
	carRepo.On("GetImages", 5).Return([]model.CarImage{}, nil)
	reviewRepo.On("ListByCar", 5).Return([]model.Review{}, nil)
	favRepo.On("FindByUserAndCar", 7, 5).Return(&model.Favorite{ID: 1}, nil)

	car, err := service.GetCar(5, 7, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4.7, car.AverageRating)
	assert.True(t, car.IsFavorited)
}

// TestUpdateCarForbidden 测试不能修改他人的车辆
func TestUpdateCarForbidden(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 2, Year: 2022, Price: 100}, nil)

	_, err := service.UpdateCar(10, 1, &model.Car{}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

// TestUpdateCarAppendsImages 测试新图片追加到已有序列之后
func TestUpdateCarAppendsImages(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{
		ID: 10, DealerID: 1, Year: 2022, Price: 100, Published: true,
	}, nil)
	carRepo.On("Update", mock.AnythingOfType("*model.Car")).Return(nil)
	carRepo.On("MaxImageOrder", 10).Return(2, nil)
	carRepo.On("AddImages", 10, 3, []string{"cars/new.jpg"}).Return(nil)
	carRepo.On("GetImages", 10).Return([]model.CarImage{}, nil)

	_, err := service.UpdateCar(10, 1, &model.Car{Title: "Updated"}, []string{"cars/new.jpg"})
	assert.NoError(t, err)
	carRepo.AssertExpectations(t)
}

// TestUpdateCarImageOrderConflict 测试追加图片撞上已占用序号时返回唯一键冲突
func TestUpdateCarImageOrderConflict(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{
		ID: 10, DealerID: 1, Year: 2022, Price: 100,
	}, nil)
	carRepo.On("Update", mock.AnythingOfType("*model.Car")).Return(nil)
	carRepo.On("MaxImageOrder", 10).Return(2, nil)
	carRepo.On("AddImages", 10, 3, []string{"cars/new.jpg"}).
		Return(&mysql.MySQLError{Number: 1062})

	_, err := service.UpdateCar(10, 1, &model.Car{}, []string{"cars/new.jpg"})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateKey))
}

// TestUpdateCarKeepsOmittedFields 测试未提供的字段保持原值
func TestUpdateCarKeepsOmittedFields(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{
		ID: 10, DealerID: 1, Title: "Original", Make: "Toyota",
		Year: 2022, Price: 100,
	}, nil)
	carRepo.On("Update", mock.AnythingOfType("*model.Car")).Return(nil)
	carRepo.On("GetImages", 10).Return([]model.CarImage{}, nil)

	car, err := service.UpdateCar(10, 1, &model.Car{Price: 200}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Original", car.Title)
	assert.Equal(t, "Toyota", car.Make)
	assert.Equal(t, 200.0, car.Price)
}

// TestBulkPublishPartialOwnership 测试包含他人车辆时整体拒绝
func TestBulkPublishPartialOwnership(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("CountOwned", 1, []int{10, 11, 12}).Return(2, nil)

	_, err := service.BulkPublish(1, []int{10, 11, 12}, true)
	assert.True(t, apperrors.Is(err, apperrors.ErrPartialOwnership))
	carRepo.AssertNotCalled(t, "SetPublished", mock.Anything, mock.Anything, mock.Anything)
}

// TestBulkPublishSuccess 测试批量发布成功
func TestBulkPublishSuccess(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("CountOwned", 1, []int{10, 11}).Return(2, nil)
	carRepo.On("SetPublished", 1, []int{10, 11}, true).Return(2, nil)

	affected, err := service.BulkPublish(1, []int{10, 11}, true)
	assert.NoError(t, err)
	assert.Equal(t, 2, affected)
	carRepo.AssertExpectations(t)
}

// TestBulkPublishDeduplicatesIDs 测试重复ID不会误判为归属不全
func TestBulkPublishDeduplicatesIDs(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("CountOwned", 1, []int{10}).Return(1, nil)
	carRepo.On("SetPublished", 1, []int{10}, true).Return(1, nil)

	affected, err := service.BulkPublish(1, []int{10, 10}, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, affected)
	carRepo.AssertExpectations(t)
}

// TestBulkPublishEmptyList 测试空列表直接报错
func TestBulkPublishEmptyList(t *testing.T) {
	service, _, _, _ := newCarService()

	_, err := service.BulkPublish(1, nil, true)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

// TestDeleteCar 测试删除自有车辆
func TestDeleteCar(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 1}, nil)
	carRepo.On("Delete", 10).Return(nil)

	err := service.DeleteCar(10, 1)
	assert.NoError(t, err)
	carRepo.AssertExpectations(t)
}

// TestListCarsDefaultsPagination 测试分页参数的默认值
func TestListCarsDefaultsPagination(t *testing.T) {
	service, carRepo, _, _ := newCarService()

	carRepo.On("List", mock.AnythingOfType("model.CarFilters"), 1, 20).
		Return([]model.Car{}, 0, nil)

	cars, total, err := service.ListCars(model.CarFilters{}, 0, 500, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, cars)
	carRepo.AssertExpectations(t)
}
