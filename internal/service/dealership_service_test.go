package service

import (
	"testing"

	apperrors "github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestNormalizeSpecialties 测试专营方向清洗
func TestNormalizeSpecialties(t *testing.T) {
	specialties, err := NormalizeSpecialties([]interface{}{" SUV ", "", nil, "Electric"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"SUV", "Electric"}, specialties)

	_, err = NormalizeSpecialties([]interface{}{"SUV", 42})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidSpecialty))
}

// TestCreateDealership 测试创建店铺
func TestCreateDealership(t *testing.T) {
	repo := new(MockDealershipRepository)
	service := NewDealershipService(repo)

	repo.On("Create", mock.AnythingOfType("*model.Dealership")).Return(nil)
	repo.On("LoadStats", mock.AnythingOfType("*model.Dealership")).Return(nil)

	dealership := &model.Dealership{Name: "Nexus Motors"}
	err := service.CreateDealership(1, dealership)
	assert.NoError(t, err)
	assert.Equal(t, 1, dealership.DealerID)
	assert.NotNil(t, dealership.Specialties)
}

// TestCreateDealershipDuplicate 测试每个经销商只能有一家店铺
func TestCreateDealershipDuplicate(t *testing.T) {
	repo := new(MockDealershipRepository)
	service := NewDealershipService(repo)

	repo.On("Create", mock.AnythingOfType("*model.Dealership")).
		Return(&mysql.MySQLError{Number: 1062})

	err := service.CreateDealership(1, &model.Dealership{Name: "Second Shop"})
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyExists))
}

// TestGetDealershipHidesUnpublished 测试未发布的店铺只有店主可见
func TestGetDealershipHidesUnpublished(t *testing.T) {
	repo := new(MockDealershipRepository)
	service := NewDealershipService(repo)

	repo.On("FindByDealerID", 1).Return(&model.Dealership{ID: 5, DealerID: 1, Published: false}, nil)

	_, err := service.GetDealership(1, 0)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	repo.On("LoadStats", mock.AnythingOfType("*model.Dealership")).Return(nil)
	dealership, err := service.GetDealership(1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 5, dealership.ID)
}

// TestTogglePublish 测试切换店铺发布状态
func TestTogglePublish(t *testing.T) {
	repo := new(MockDealershipRepository)
	service := NewDealershipService(repo)

	repo.On("FindByDealerID", 1).Return(&model.Dealership{ID: 5, DealerID: 1, Published: false}, nil)
	repo.On("Update", mock.AnythingOfType("*model.Dealership")).Return(nil)
	repo.On("LoadStats", mock.AnythingOfType("*model.Dealership")).Return(nil)

	dealership, err := service.TogglePublish(1)
	assert.NoError(t, err)
	assert.True(t, dealership.Published)
}

// TestUpdateDealershipKeepsOmittedFields 测试未提供的字段保持原值
func TestUpdateDealershipKeepsOmittedFields(t *testing.T) {
	repo := new(MockDealershipRepository)
	service := NewDealershipService(repo)

	repo.On("FindByDealerID", 1).Return(&model.Dealership{
		ID: 5, DealerID: 1, Name: "Nexus Motors", Description: "Original",
	}, nil)
	repo.On("Update", mock.AnythingOfType("*model.Dealership")).Return(nil)
	repo.On("LoadStats", mock.AnythingOfType("*model.Dealership")).Return(nil)

	dealership, err := service.UpdateDealership(1, &model.Dealership{Website: "https://nexus.example"})
	assert.NoError(t, err)
	assert.Equal(t, "Nexus Motors", dealership.Name)
	assert.Equal(t, "Original", dealership.Description)
	assert.Equal(t, "https://nexus.example", dealership.Website)
}
