package car

import (
	"strconv"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/middleware"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"

	"github.com/gin-gonic/gin"
)

// CarHandler 处理车辆的公开读请求
type CarHandler struct {
	carService *service.CarService
}

// NewCarHandler 创建一个新的 CarHandler 实例
func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService}
}

// parseFilters 从查询参数解析过滤条件
func parseFilters(c *gin.Context) model.CarFilters {
	filters := model.CarFilters{
		Make:         c.Query("make"),
		Model:        c.Query("model"),
		Transmission: c.Query("transmission"),
		FuelType:     c.Query("fuel_type"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
	}
	filters.Year, _ = strconv.Atoi(c.Query("year"))
	filters.CategoryID, _ = strconv.Atoi(c.Query("category"))
	filters.MinYear, _ = strconv.Atoi(c.Query("min_year"))
	filters.MaxYear, _ = strconv.Atoi(c.Query("max_year"))
	filters.MinPrice, _ = strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	filters.MaxPrice, _ = strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)
	return filters
}

// viewer 返回访问者的用户ID与经销商档案ID，匿名时均为0
func viewer(c *gin.Context) (int, int) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return 0, 0
	}
	dealerID := 0
	if user.DealerProfileID != nil {
		dealerID = *user.DealerProfileID
	}
	return user.ID, dealerID
}

// ListCars 分页返回已发布的车辆
func (h *CarHandler) ListCars(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	viewerID, _ := viewer(c)

	cars, total, err := h.carService.ListCars(parseFilters(c), page, pageSize, viewerID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"results":   cars,
		"count":     total,
		"page":      page,
		"page_size": len(cars),
	}, "")
}

// GetCar 返回车辆详情
func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	viewerID, viewerDealerID := viewer(c)
	car, err := h.carService.GetCar(id, viewerID, viewerDealerID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, car, "")
}
