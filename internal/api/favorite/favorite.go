package favorite

import (
	"net/http"
	"strconv"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/service"

	"github.com/gin-gonic/gin"
)

// FavoriteHandler 处理收藏相关的HTTP请求
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler 创建一个新的 FavoriteHandler 实例
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService}
}

// AddFavorite 收藏指定车辆，重复收藏返回冲突
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var form struct {
		CarID int `json:"car_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.GetInt("user_id"), form.CarID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "收藏成功",
		Data:    favorite,
	})
}

// ToggleFavorite 切换收藏状态
// 新收藏返回201，取消收藏返回200
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	favorited, err := h.favoriteService.ToggleFavorite(c.GetInt("user_id"), carID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	status := http.StatusOK
	message := "已取消收藏"
	if favorited {
		status = http.StatusCreated
		message = "收藏成功"
	}
	c.JSON(status, errors.SuccessResponse{
		Code:    status,
		Message: message,
		Data:    gin.H{"favorited": favorited},
	})
}

// ListFavorites 返回当前用户的所有收藏
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.favoriteService.ListFavorites(c.GetInt("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, favorites, "")
}

// RemoveFavorite 删除自己的收藏
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	favoriteID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的收藏ID"))
		return
	}

	if err := h.favoriteService.RemoveFavorite(favoriteID, c.GetInt("user_id")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "收藏已删除")
}
