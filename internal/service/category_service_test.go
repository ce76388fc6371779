package service

import (
	"testing"

	apperrors "github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSlugify 测试分类标识派生
func TestSlugify(t *testing.T) {
	assert.Equal(t, "suv-crossover", Slugify("SUV & Crossover"))
	assert.Equal(t, "electric", Slugify("  Electric  "))
	assert.Equal(t, "pick-up-4x4", Slugify("Pick-up 4x4"))
}

// TestCreateCategory 测试创建分类时自动生成标识
func TestCreateCategory(t *testing.T) {
	repo := new(MockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("Create", mock.AnythingOfType("*model.Category")).Return(nil)

	category := &model.Category{Name: "SUV & Crossover"}
	err := service.CreateCategory(category)
	assert.NoError(t, err)
	assert.Equal(t, "suv-crossover", category.Slug)
}

// TestCreateCategoryDuplicate 测试同名分类冲突
func TestCreateCategoryDuplicate(t *testing.T) {
	repo := new(MockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("Create", mock.AnythingOfType("*model.Category")).
		Return(&mysql.MySQLError{Number: 1062})

	err := service.CreateCategory(&model.Category{Name: "SUV"})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateKey))
}

// TestDeleteCategoryNotFound 测试删除不存在的分类
func TestDeleteCategoryNotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("FindByID", 99).Return(nil, nil)

	err := service.DeleteCategory(99)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
