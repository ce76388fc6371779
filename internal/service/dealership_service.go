package service

import (
	"strings"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// DealershipService 提供店铺的创建与管理
type DealershipService struct {
	dealershipRepo interfaces.DealershipRepository
}

// NewDealershipService 创建一个新的 DealershipService 实例
func NewDealershipService(dealershipRepo interfaces.DealershipRepository) *DealershipService {
	return &DealershipService{dealershipRepo: dealershipRepo}
}

// NormalizeSpecialties 清洗专营方向列表
// 字符串去除首尾空白，空串与 null 静默丢弃，其余类型报错
func NormalizeSpecialties(raw []interface{}) ([]string, error) {
	specialties := []string{}
	for _, item := range raw {
		if item == nil {
			continue
		}
		s, ok := item.(string)
		if !ok {
			return nil, errors.New(errors.ErrInvalidSpecialty, "专营方向必须是字符串")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		specialties = append(specialties, s)
	}
	return specialties, nil
}

// CreateDealership 创建店铺，每个经销商只能有一家
func (s *DealershipService) CreateDealership(dealerID int, dealership *model.Dealership) error {
	dealership.DealerID = dealerID
	if dealership.Specialties == nil {
		dealership.Specialties = []string{}
	}

	if err := s.dealershipRepo.Create(dealership); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrAlreadyExists, "店铺已存在")
		}
		return errors.Wrap(errors.ErrDatabase, "创建店铺失败", err)
	}

	if err := s.dealershipRepo.LoadStats(dealership); err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询店铺统计失败", err)
	}
	return nil
}

// GetDealership 返回经销商的店铺，附带派生统计
// 未发布的店铺只有店主可见
func (s *DealershipService) GetDealership(dealerID, viewerDealerID int) (*model.Dealership, error) {
	dealership, err := s.dealershipRepo.FindByDealerID(dealerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询店铺失败", err)
	}
	if dealership == nil {
		return nil, errors.New(errors.ErrNotFound, "店铺不存在")
	}
	if !dealership.Published && dealership.DealerID != viewerDealerID {
		return nil, errors.New(errors.ErrNotFound, "店铺不存在")
	}

	if err := s.dealershipRepo.LoadStats(dealership); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询店铺统计失败", err)
	}
	dealership.AverageRating = roundRating(dealership.AverageRating)
	return dealership, nil
}

// ListDealerships 返回所有已发布的店铺，附带派生统计
func (s *DealershipService) ListDealerships() ([]model.Dealership, error) {
	dealerships, err := s.dealershipRepo.ListPublished()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询店铺列表失败", err)
	}
	if dealerships == nil {
		dealerships = []model.Dealership{}
	}

	for i := range dealerships {
		if err := s.dealershipRepo.LoadStats(&dealerships[i]); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询店铺统计失败", err)
		}
		dealerships[i].AverageRating = roundRating(dealerships[i].AverageRating)
	}
	return dealerships, nil
}

// findOwnDealership 查找店铺并校验店主身份
func (s *DealershipService) findOwnDealership(dealerID int) (*model.Dealership, error) {
	dealership, err := s.dealershipRepo.FindByDealerID(dealerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询店铺失败", err)
	}
	if dealership == nil {
		return nil, errors.New(errors.ErrNotFound, "店铺不存在")
	}
	return dealership, nil
}

// UpdateDealership 更新店铺信息，只有店主可以修改
func (s *DealershipService) UpdateDealership(dealerID int, updates *model.Dealership) (*model.Dealership, error) {
	dealership, err := s.findOwnDealership(dealerID)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		dealership.Name = updates.Name
	}
	if updates.Description != "" {
		dealership.Description = updates.Description
	}
	if updates.Specialties != nil {
		dealership.Specialties = updates.Specialties
	}
	if updates.AvatarURL != "" {
		dealership.AvatarURL = updates.AvatarURL
	}
	if updates.Website != "" {
		dealership.Website = updates.Website
	}

	if err := s.dealershipRepo.Update(dealership); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新店铺失败", err)
	}

	if err := s.dealershipRepo.LoadStats(dealership); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询店铺统计失败", err)
	}
	dealership.AverageRating = roundRating(dealership.AverageRating)
	return dealership, nil
}

// TogglePublish 切换店铺的发布状态，返回切换后的状态
func (s *DealershipService) TogglePublish(dealerID int) (*model.Dealership, error) {
	dealership, err := s.findOwnDealership(dealerID)
	if err != nil {
		return nil, err
	}

	dealership.Published = !dealership.Published
	if err := s.dealershipRepo.Update(dealership); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新店铺失败", err)
	}

	util.Logger.Info("店铺发布状态切换",
		zap.Int("dealership_id", dealership.ID),
		zap.Bool("published", dealership.Published))

	if err := s.dealershipRepo.LoadStats(dealership); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询店铺统计失败", err)
	}
	dealership.AverageRating = roundRating(dealership.AverageRating)
	return dealership, nil
}
