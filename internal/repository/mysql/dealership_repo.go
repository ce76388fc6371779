package mysql

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// dealershipRepository 实现了 DealershipRepository 接口
type dealershipRepository struct {
	db *sql.DB
}

// NewDealershipRepository 创建一个新的 dealershipRepository 实例
func NewDealershipRepository(db *sql.DB) *dealershipRepository {
	return &dealershipRepository{db}
}

// Create 创建店铺，dealer_id 唯一约束保证每个经销商只有一家
func (r *dealershipRepository) Create(dealership *model.Dealership) error {
	util.Logger.Info("开始创建店铺",
		zap.Int("dealer_id", dealership.DealerID),
		zap.String("name", dealership.Name))

	specialties, err := json.Marshal(dealership.Specialties)
	if err != nil {
		return fmt.Errorf("failed to marshal specialties: %w", err)
	}

	query := `INSERT INTO dealerships (dealer_id, name, description, specialties, avatar_url,
                  website, is_verified, published)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, dealership.DealerID, dealership.Name, dealership.Description,
		specialties, nullString(relativeImageURL(dealership.AvatarURL)), nullString(dealership.Website),
		dealership.IsVerified, dealership.Published)
	if err != nil {
		util.Logger.Error("创建店铺失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	dealership.ID = int(id)

	util.Logger.Info("店铺创建成功", zap.Int("dealership_id", dealership.ID))
	return nil
}

// scanDealership 扫描一行店铺记录并解析 specialties JSON
func scanDealership(scan func(...interface{}) error) (*model.Dealership, error) {
	var d model.Dealership
	var specialties []byte
	var avatarURL, website sql.NullString
	err := scan(&d.ID, &d.DealerID, &d.Name, &d.Description, &specialties,
		&avatarURL, &website, &d.IsVerified, &d.Published, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.AvatarURL = absoluteImageURL(avatarURL.String)
	d.Website = website.String
	d.Specialties = []string{}
	if len(specialties) > 0 {
		if err := json.Unmarshal(specialties, &d.Specialties); err != nil {
			return nil, fmt.Errorf("failed to unmarshal specialties: %w", err)
		}
	}
	return &d, nil
}

const dealershipColumns = `id, dealer_id, name, description, specialties, avatar_url,
	website, is_verified, published, created_at`

// FindByDealerID 通过经销商ID查找店铺
func (r *dealershipRepository) FindByDealerID(dealerID int) (*model.Dealership, error) {
	row := r.db.QueryRow(`SELECT `+dealershipColumns+` FROM dealerships WHERE dealer_id = ?`, dealerID)
	d, err := scanDealership(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// Update 更新店铺信息
func (r *dealershipRepository) Update(dealership *model.Dealership) error {
	specialties, err := json.Marshal(dealership.Specialties)
	if err != nil {
		return fmt.Errorf("failed to marshal specialties: %w", err)
	}

	query := `UPDATE dealerships
              SET name = ?, description = ?, specialties = ?, avatar_url = ?, website = ?,
                  is_verified = ?, published = ?
              WHERE id = ?`
	_, err = r.db.Exec(query, dealership.Name, dealership.Description, specialties,
		nullString(relativeImageURL(dealership.AvatarURL)), nullString(dealership.Website),
		dealership.IsVerified, dealership.Published, dealership.ID)
	if err != nil {
		util.Logger.Error("更新店铺失败", zap.Error(err), zap.Int("dealership_id", dealership.ID))
	}
	return err
}

// ListPublished 返回所有已发布的店铺
func (r *dealershipRepository) ListPublished() ([]model.Dealership, error) {
	rows, err := r.db.Query(`SELECT ` + dealershipColumns + ` FROM dealerships
		WHERE published = true ORDER BY created_at DESC`)
	if err != nil {
		util.Logger.Error("查询店铺列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var dealerships []model.Dealership
	for rows.Next() {
		d, err := scanDealership(rows.Scan)
		if err != nil {
			return nil, err
		}
		dealerships = append(dealerships, *d)
	}
	return dealerships, rows.Err()
}

// LoadStats 填充店铺的派生统计，统计口径只包含已发布的车辆
func (r *dealershipRepository) LoadStats(dealership *model.Dealership) error {
	err := r.db.QueryRow(`SELECT COUNT(*),
		       COALESCE((SELECT AVG(rv.rating) FROM reviews rv
		                 JOIN cars c2 ON c2.id = rv.car_id
		                 WHERE c2.dealer_id = ? AND c2.published = true), 0)
		FROM cars c WHERE c.dealer_id = ? AND c.published = true`,
		dealership.DealerID, dealership.DealerID).
		Scan(&dealership.TotalCars, &dealership.AverageRating)
	if err != nil {
		return err
	}

	rows, err := r.db.Query(`SELECT DISTINCT location FROM cars
		WHERE dealer_id = ? AND published = true ORDER BY location`, dealership.DealerID)
	if err != nil {
		return err
	}
	defer rows.Close()

	dealership.LocationsServed = []string{}
	for rows.Next() {
		var location string
		if err := rows.Scan(&location); err != nil {
			return err
		}
		dealership.LocationsServed = append(dealership.LocationsServed, location)
	}
	return rows.Err()
}
