package review

import (
	"net/http"
	"strconv"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/middleware"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler 处理车辆评价相关的HTTP请求
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler 创建一个新的 ReviewHandler 实例
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService}
}

type reviewForm struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview 为指定车辆创建评价
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	var form reviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	review := &model.Review{
		CarID:   carID,
		Rating:  form.Rating,
		Comment: form.Comment,
	}
	if err := h.reviewService.CreateReview(review, middleware.CurrentUser(c)); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "评价创建成功",
		Data:    review,
	})
}

// ListReviews 返回指定车辆的所有评价
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	reviews, err := h.reviewService.ListReviews(carID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	avg, count, err := h.reviewService.CarRating(carID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{
		"results":        reviews,
		"average_rating": avg,
		"review_count":   count,
	}, "")
}

// UpdateReview 更新自己的评价
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的评价ID"))
		return
	}

	var form reviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	review, err := h.reviewService.UpdateReview(reviewID, c.GetInt("user_id"), form.Rating, form.Comment)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, review, "评价更新成功")
}

// DeleteReview 删除自己的评价
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的评价ID"))
		return
	}

	if err := h.reviewService.DeleteReview(reviewID, c.GetInt("user_id")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "评价删除成功")
}
