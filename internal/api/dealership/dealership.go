package dealership

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/leonemunyao/alx-project-nexus/config"
	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/middleware"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"
	"github.com/leonemunyao/alx-project-nexus/internal/storage"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/gin-gonic/gin"
)

// DealershipHandler 处理店铺相关的HTTP请求
type DealershipHandler struct {
	dealershipService *service.DealershipService
	storage           storage.ImageStorage
}

// NewDealershipHandler 创建一个新的 DealershipHandler 实例
func NewDealershipHandler(dealershipService *service.DealershipService, storage storage.ImageStorage) *DealershipHandler {
	return &DealershipHandler{dealershipService, storage}
}

type dealershipForm struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Specialties []interface{} `json:"specialties"`
	AvatarURL   string        `json:"avatar_url"`
	Website     string        `json:"website"`
}

// toModel 将表单转为模型，专营方向经过清洗
func (f *dealershipForm) toModel() (*model.Dealership, error) {
	var specialties []string
	if f.Specialties != nil {
		normalized, err := service.NormalizeSpecialties(f.Specialties)
		if err != nil {
			return nil, err
		}
		specialties = normalized
	}
	return &model.Dealership{
		Name:        f.Name,
		Description: f.Description,
		Specialties: specialties,
		AvatarURL:   f.AvatarURL,
		Website:     f.Website,
	}, nil
}

// CreateDealership 创建当前经销商的店铺，每个经销商只能有一家
func (h *DealershipHandler) CreateDealership(c *gin.Context) {
	var form dealershipForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}
	if form.Name == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "店铺名称不能为空"))
		return
	}

	dealership, err := form.toModel()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if err := h.dealershipService.CreateDealership(middleware.DealerID(c), dealership); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "店铺创建成功",
		Data:    dealership,
	})
}

// ListDealerships 返回所有已发布的店铺
func (h *DealershipHandler) ListDealerships(c *gin.Context) {
	dealerships, err := h.dealershipService.ListDealerships()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealerships, "")
}

// GetDealership 返回指定经销商的店铺
func (h *DealershipHandler) GetDealership(c *gin.Context) {
	dealerID, err := strconv.Atoi(c.Param("dealerId"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的经销商ID"))
		return
	}

	viewerDealerID := 0
	if user := middleware.CurrentUser(c); user != nil && user.DealerProfileID != nil {
		viewerDealerID = *user.DealerProfileID
	}

	dealership, err := h.dealershipService.GetDealership(dealerID, viewerDealerID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealership, "")
}

// GetOwnDealership 返回当前经销商的店铺
func (h *DealershipHandler) GetOwnDealership(c *gin.Context) {
	dealerID := middleware.DealerID(c)
	dealership, err := h.dealershipService.GetDealership(dealerID, dealerID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealership, "")
}

// UpdateDealership 更新当前经销商的店铺
func (h *DealershipHandler) UpdateDealership(c *gin.Context) {
	var form dealershipForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	updates, err := form.toModel()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	dealership, err := h.dealershipService.UpdateDealership(middleware.DealerID(c), updates)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealership, "店铺更新成功")
}

// UploadAvatar 上传店铺头像并更新店铺的头像地址
func (h *DealershipHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "缺少头像文件"))
		return
	}

	url, err := h.storage.UploadFile(file, "dealerships/"+util.GenerateImageFilename(file.Filename))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "头像上传失败", err))
		return
	}

	dealership, err := h.dealershipService.UpdateDealership(middleware.DealerID(c), &model.Dealership{AvatarURL: url})
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if !strings.HasPrefix(dealership.AvatarURL, "http") {
		dealership.AvatarURL = fmt.Sprintf("%s/uploads/%s", config.AppConfig.BackendURL, dealership.AvatarURL)
	}
	errors.HandleSuccess(c, dealership, "头像上传成功")
}

// TogglePublish 切换店铺的发布状态
func (h *DealershipHandler) TogglePublish(c *gin.Context) {
	dealership, err := h.dealershipService.TogglePublish(middleware.DealerID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealership, "发布状态已切换")
}
