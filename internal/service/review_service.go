package service

import (
	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// ReviewService 提供车辆评价的创建与管理
type ReviewService struct {
	reviewRepo interfaces.ReviewRepository
	carRepo    interfaces.CarRepository
	userRepo   interfaces.UserRepository
}

// NewReviewService 创建一个新的 ReviewService 实例
func NewReviewService(reviewRepo interfaces.ReviewRepository, carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, carRepo: carRepo, userRepo: userRepo}
}

// validateRating 评分必须在1到5之间
func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New(errors.ErrInvalidRating, "评分必须在1到5之间")
	}
	return nil
}

// CreateReview 为已发布的车辆创建评价
// 经销商不能评价自己的车辆，每人每车只能评价一次
func (s *ReviewService) CreateReview(review *model.Review, user *model.User) error {
	if err := validateRating(review.Rating); err != nil {
		return err
	}

	car, err := s.carRepo.FindByID(review.CarID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询车辆失败", err)
	}
	if car == nil || !car.Published {
		return errors.New(errors.ErrNotFound, "车辆不存在")
	}

	if user.DealerProfileID != nil && *user.DealerProfileID == car.DealerID {
		return errors.New(errors.ErrSelfReview, "不能评价自己的车辆")
	}

	review.UserID = user.ID
	if err := s.reviewRepo.Create(review); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrDuplicateReview, "你已经评价过这辆车")
		}
		return errors.Wrap(errors.ErrDatabase, "创建评价失败", err)
	}

	util.Logger.Info("评价创建成功",
		zap.Int("review_id", review.ID),
		zap.Int("car_id", review.CarID))
	return nil
}

// ListReviews 返回已发布车辆的所有评价
func (s *ReviewService) ListReviews(carID int) ([]model.Review, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询车辆失败", err)
	}
	if car == nil || !car.Published {
		return nil, errors.New(errors.ErrNotFound, "车辆不存在")
	}

	reviews, err := s.reviewRepo.ListByCar(carID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评价列表失败", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

// findOwnReview 查找评价并校验作者身份
func (s *ReviewService) findOwnReview(reviewID, userID int) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评价失败", err)
	}
	if review == nil {
		return nil, errors.New(errors.ErrNotFound, "评价不存在")
	}
	if review.UserID != userID {
		return nil, errors.New(errors.ErrForbidden, "只能修改自己的评价")
	}
	return review, nil
}

// UpdateReview 更新评价，只有作者本人可以修改
func (s *ReviewService) UpdateReview(reviewID, userID, rating int, comment string) (*model.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	review, err := s.findOwnReview(reviewID, userID)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新评价失败", err)
	}
	return review, nil
}

// DeleteReview 删除评价，只有作者本人可以删除
func (s *ReviewService) DeleteReview(reviewID, userID int) error {
	if _, err := s.findOwnReview(reviewID, userID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除评价失败", err)
	}
	return nil
}

// CarRating 返回车辆的评分均值（保留一位小数）与评价数量
func (s *ReviewService) CarRating(carID int) (float64, int, error) {
	avg, count, err := s.reviewRepo.AggregateByCar(carID)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrDatabase, "查询评分聚合失败", err)
	}
	return roundRating(avg), count, nil
}
