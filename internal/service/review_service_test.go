package service

import (
	"testing"

	apperrors "github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewService() (*ReviewService, *MockReviewRepository, *MockCarRepository) {
	reviewRepo := new(MockReviewRepository)
	carRepo := new(MockCarRepository)
	userRepo := new(MockUserRepository)
	return NewReviewService(reviewRepo, carRepo, userRepo), reviewRepo, carRepo
}

// TestCreateReview 测试创建评价
func TestCreateReview(t *testing.T) {
	service, reviewRepo, carRepo := newReviewService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 2, Published: true}, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*model.Review")).Return(nil)

	review := &model.Review{CarID: 10, Rating: 5, Comment: "Great car"}
	err := service.CreateReview(review, &model.User{ID: 1})
	assert.NoError(t, err)
	assert.Equal(t, 1, review.UserID)
	reviewRepo.AssertExpectations(t)
}

// TestCreateReviewInvalidRating 测试评分越界
func TestCreateReviewInvalidRating(t *testing.T) {
	service, _, _ := newReviewService()

	err := service.CreateReview(&model.Review{CarID: 10, Rating: 0}, &model.User{ID: 1})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRating))

	err = service.CreateReview(&model.Review{CarID: 10, Rating: 6}, &model.User{ID: 1})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRating))
}

// TestCreateReviewUnpublishedCar 测试不能评价未发布的车辆
func TestCreateReviewUnpublishedCar(t *testing.T) {
	service, _, carRepo := newReviewService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, Published: false}, nil)

	err := service.CreateReview(&model.Review{CarID: 10, Rating: 4}, &model.User{ID: 1})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

// TestCreateReviewSelf 测试经销商不能评价自己的车辆
func TestCreateReviewSelf(t *testing.T) {
	service, _, carRepo := newReviewService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 7, Published: true}, nil)

	dealerProfileID := 7
	user := &model.User{ID: 1, Role: model.RoleDealer, DealerProfileID: &dealerProfileID}
	err := service.CreateReview(&model.Review{CarID: 10, Rating: 4}, user)
	assert.True(t, apperrors.Is(err, apperrors.ErrSelfReview))
}

// TestCreateReviewDuplicate 测试每人每车只能评价一次
func TestCreateReviewDuplicate(t *testing.T) {
	service, reviewRepo, carRepo := newReviewService()

	carRepo.On("FindByID", 10).Return(&model.Car{ID: 10, DealerID: 2, Published: true}, nil)
	reviewRepo.On("Create", mock.AnythingOfType("*model.Review")).
		Return(&mysql.MySQLError{Number: 1062})

	err := service.CreateReview(&model.Review{CarID: 10, Rating: 4}, &model.User{ID: 1})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateReview))
}

// TestUpdateReviewForbidden 测试只能修改自己的评价
func TestUpdateReviewForbidden(t *testing.T) {
	service, reviewRepo, _ := newReviewService()

	reviewRepo.On("FindByID", 3).Return(&model.Review{ID: 3, UserID: 2}, nil)

	_, err := service.UpdateReview(3, 1, 5, "updated")
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

// TestUpdateReview 测试作者更新评价
func TestUpdateReview(t *testing.T) {
	service, reviewRepo, _ := newReviewService()

	reviewRepo.On("FindByID", 3).Return(&model.Review{ID: 3, UserID: 1, Rating: 2}, nil)
	reviewRepo.On("Update", mock.AnythingOfType("*model.Review")).Return(nil)

	review, err := service.UpdateReview(3, 1, 5, "much better now")
	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "much better now", review.Comment)
}

// TestDeleteReview 测试作者删除评价
func TestDeleteReview(t *testing.T) {
	service, reviewRepo, _ := newReviewService()

	reviewRepo.On("FindByID", 3).Return(&model.Review{ID: 3, UserID: 1}, nil)
	reviewRepo.On("Delete", 3).Return(nil)

	err := service.DeleteReview(3, 1)
	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

// TestCarRating 测试评分均值保留一位小数，无评价时为零
func TestCarRating(t *testing.T) {
	service, reviewRepo, _ := newReviewService()

	reviewRepo.On("AggregateByCar", 10).Return(4.333333, 3, nil)
	avg, count, err := service.CarRating(10)
	assert.NoError(t, err)
	assert.Equal(t, 4.3, avg)
	assert.Equal(t, 3, count)

	reviewRepo.On("AggregateByCar", 11).Return(0.0, 0, nil)
	avg, count, err = service.CarRating(11)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, count)
}
