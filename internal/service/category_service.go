package service

import (
	"regexp"
	"strings"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
)

// CategoryService 提供车辆分类的管理
type CategoryService struct {
	categoryRepo interfaces.CategoryRepository
}

// NewCategoryService 创建一个新的 CategoryService 实例
func NewCategoryService(categoryRepo interfaces.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 将分类名转为 URL 友好的标识
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateCategory 创建分类，slug 由名称派生
func (s *CategoryService) CreateCategory(category *model.Category) error {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrDuplicateKey, "分类已存在")
		}
		return errors.Wrap(errors.ErrDatabase, "创建分类失败", err)
	}
	return nil
}

// GetCategory 通过ID获取分类
func (s *CategoryService) GetCategory(id int) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询分类失败", err)
	}
	if category == nil {
		return nil, errors.New(errors.ErrNotFound, "分类不存在")
	}
	return category, nil
}

// ListCategories 返回所有分类
func (s *CategoryService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询分类列表失败", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// DeleteCategory 删除分类，引用它的车辆保留但失去分类
func (s *CategoryService) DeleteCategory(id int) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询分类失败", err)
	}
	if category == nil {
		return errors.New(errors.ErrNotFound, "分类不存在")
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除分类失败", err)
	}
	return nil
}
