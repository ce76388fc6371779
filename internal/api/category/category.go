package category

import (
	"net/http"
	"strconv"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 处理分类相关的HTTP请求
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler 创建一个新的 CategoryHandler 实例
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService}
}

// CreateCategory 创建分类
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var form struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	category := &model.Category{Name: form.Name}
	if err := h.categoryService.CreateCategory(category); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code:    http.StatusCreated,
		Message: "分类创建成功",
		Data:    category,
	})
}

// ListCategories 返回所有分类
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, categories, "")
}

// GetCategory 返回指定分类
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的分类ID"))
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, category, "")
}

// DeleteCategory 删除分类，引用它的车辆保留但失去分类
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的分类ID"))
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "分类删除成功")
}
