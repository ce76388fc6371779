package user

import (
	"net/http"
	"strconv"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/middleware"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler 处理角色档案相关的HTTP请求
type ProfileHandler struct {
	userService *service.UserService
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例
func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService}
}

// GetAccount 返回当前用户的账号信息
func (h *ProfileHandler) GetAccount(c *gin.Context) {
	user, err := h.userService.GetUser(c.GetInt("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "")
}

// UpdateAccount 更新账号的姓名，用户名、邮箱与角色在此不可变
func (h *ProfileHandler) UpdateAccount(c *gin.Context) {
	var form struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user, err := h.userService.UpdateAccount(c.GetInt("user_id"), form.FirstName, form.LastName)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, user, "账号更新成功")
}

type dealerForm struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// CreateDealerProfile 创建经销商档案，用户角色随之切换为经销商
func (h *ProfileHandler) CreateDealerProfile(c *gin.Context) {
	var form dealerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user := middleware.CurrentUser(c)
	dealer := &model.Dealer{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		Address:   form.Address,
	}
	if err := h.userService.CreateDealerProfile(user.ID, dealer); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("经销商档案创建", zap.Int("user_id", user.ID))
	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "经销商档案创建成功",
		Data:    dealer,
	})
}

// GetDealer 返回指定经销商的公开档案
func (h *ProfileHandler) GetDealer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的经销商ID"))
		return
	}

	dealer, err := h.userService.GetDealer(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealer, "")
}

// ListDealers 返回经销商列表，支持按姓名或地址搜索
func (h *ProfileHandler) ListDealers(c *gin.Context) {
	dealers, err := h.userService.ListDealers(c.Query("search"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealers, "")
}

// GetOwnDealerProfile 返回当前用户自己的经销商档案
func (h *ProfileHandler) GetOwnDealerProfile(c *gin.Context) {
	dealer, err := h.userService.GetDealerByUser(c.GetInt("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealer, "")
}

// UpdateDealerProfile 更新当前用户的经销商档案
func (h *ProfileHandler) UpdateDealerProfile(c *gin.Context) {
	var form dealerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user := middleware.CurrentUser(c)
	dealer := &model.Dealer{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		Address:   form.Address,
	}
	if err := h.userService.UpdateDealerProfile(user.ID, dealer); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, dealer, "经销商档案更新成功")
}

type buyerForm struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// CreateBuyerProfile 创建买家档案，用户角色随之切换为买家
func (h *ProfileHandler) CreateBuyerProfile(c *gin.Context) {
	var form buyerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user := middleware.CurrentUser(c)
	buyer := &model.Buyer{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
	}
	if err := h.userService.CreateBuyerProfile(user.ID, buyer); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "买家档案创建成功",
		Data:    buyer,
	})
}

// GetBuyerProfile 返回当前用户的买家档案
func (h *ProfileHandler) GetBuyerProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	buyer, err := h.userService.GetBuyerByUser(user.ID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, buyer, "")
}

// UpdateBuyerProfile 更新当前用户的买家档案
func (h *ProfileHandler) UpdateBuyerProfile(c *gin.Context) {
	var form buyerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user := middleware.CurrentUser(c)
	buyer := &model.Buyer{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
	}
	if err := h.userService.UpdateBuyerProfile(user.ID, buyer); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, buyer, "买家档案更新成功")
}
