package car

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/middleware"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"
	"github.com/leonemunyao/alx-project-nexus/internal/storage"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DealerCarHandler 处理经销商对自有车辆的管理请求
type DealerCarHandler struct {
	carService *service.CarService
	storage    storage.ImageStorage
}

// NewDealerCarHandler 创建一个新的 DealerCarHandler 实例
func NewDealerCarHandler(carService *service.CarService, storage storage.ImageStorage) *DealerCarHandler {
	return &DealerCarHandler{carService, storage}
}

// uploadImages 上传图片文件并返回访问URL列表
func (h *DealerCarHandler) uploadImages(files []*multipart.FileHeader) ([]string, error) {
	var urls []string
	for _, file := range files {
		path := "cars/" + util.GenerateImageFilename(file.Filename)
		url, err := h.storage.UploadFile(file, path)
		if err != nil {
			util.Logger.Error("图片上传失败", zap.Error(err), zap.String("filename", file.Filename))
			return nil, errors.Wrap(errors.ErrInternal, "图片上传失败", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// bindCarForm 从多部分表单解析车辆字段
func bindCarForm(c *gin.Context) (*model.Car, error) {
	car := &model.Car{
		Title:        c.PostForm("title"),
		Make:         c.PostForm("make"),
		Model:        c.PostForm("model"),
		Location:     c.PostForm("location"),
		Transmission: c.PostForm("transmission"),
		FuelType:     c.PostForm("fuel_type"),
		Condition:    c.PostForm("condition"),
		Description:  c.PostForm("description"),
	}
	car.Year, _ = strconv.Atoi(c.PostForm("year"))
	car.Price, _ = strconv.ParseFloat(c.PostForm("price"), 64)

	if v := c.PostForm("mileage"); v != "" {
		mileage, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(errors.ErrValidation, "无效的里程数")
		}
		car.Mileage = &mileage
	}
	if v := c.PostForm("category_id"); v != "" {
		categoryID, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(errors.ErrValidation, "无效的分类ID")
		}
		car.CategoryID = &categoryID
	}
	return car, nil
}

// CreateCar 创建车辆，接受多部分表单与若干图片文件
func (h *DealerCarHandler) CreateCar(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法解析表单数据", err))
		return
	}

	car, err := bindCarForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if car.Title == "" || car.Make == "" || car.Model == "" || car.Location == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "缺少必要字段"))
		return
	}
	car.DealerID = middleware.DealerID(c)

	imageURLs, err := h.uploadImages(c.Request.MultipartForm.File["images"])
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if err := h.carService.CreateCar(car, imageURLs); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("车辆创建",
		zap.Int("car_id", car.ID),
		zap.Int("dealer_id", car.DealerID))
	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "车辆创建成功",
		Data:    car,
	})
}

// ListOwnCars 返回当前经销商的全部车辆，包含未发布的
func (h *DealerCarHandler) ListOwnCars(c *gin.Context) {
	cars, err := h.carService.ListDealerCars(middleware.DealerID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, cars, "")
}

// UpdateCar 更新自有车辆，未提供的字段保持原值，新图片追加到已有序列之后
func (h *DealerCarHandler) UpdateCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法解析表单数据", err))
		return
	}

	updates, err := bindCarForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	imageURLs, err := h.uploadImages(c.Request.MultipartForm.File["images"])
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	car, err := h.carService.UpdateCar(id, middleware.DealerID(c), updates, imageURLs)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, car, "车辆更新成功")
}

// SetPublished 切换单辆车的发布状态
func (h *DealerCarHandler) SetPublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	var form struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	car, err := h.carService.SetPublished(id, middleware.DealerID(c), *form.Published)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, car, "发布状态更新成功")
}

// BulkPublish 批量更新发布状态，任一车辆不属于当前经销商时整体拒绝
func (h *DealerCarHandler) BulkPublish(c *gin.Context) {
	var form struct {
		CarIDs    []int `json:"car_ids" binding:"required"`
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	affected, err := h.carService.BulkPublish(middleware.DealerID(c), form.CarIDs, *form.Published)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"updated": affected}, "批量更新成功")
}

// DeleteCar 删除自有车辆及其关联数据
func (h *DealerCarHandler) DeleteCar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的车辆ID"))
		return
	}

	if err := h.carService.DeleteCar(id, middleware.DealerID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "车辆删除成功")
}
