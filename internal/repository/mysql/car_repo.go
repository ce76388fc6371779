package mysql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// carRepository 实现了 CarRepository 接口
type carRepository struct {
	db *sql.DB
}

// NewCarRepository 创建一个新的 carRepository 实例
func NewCarRepository(db *sql.DB) *carRepository {
	return &carRepository{db}
}

const carColumns = `c.id, c.dealer_id, c.category_id, c.title, c.make, c.model, c.location,
	c.year, c.price, c.mileage, c.transmission, c.fuel_type, c.cond, c.description,
	c.published, c.created_at`

// Create 在一个事务中创建车辆及其图片
func (r *carRepository) Create(car *model.Car, imageURLs []string) error {
	util.Logger.Info("开始创建车辆",
		zap.Int("dealer_id", car.DealerID),
		zap.String("title", car.Title))

	tx, err := r.db.Begin()
	if err != nil {
		util.Logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO cars (dealer_id, category_id, title, make, model, location, year,
                  price, mileage, transmission, fuel_type, cond, description, published)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.Exec(query, car.DealerID, car.CategoryID, car.Title, car.Make,
		car.Model, car.Location, car.Year, car.Price, car.Mileage,
		nullString(car.Transmission), nullString(car.FuelType),
		nullString(car.Condition), nullString(car.Description), car.Published)
	if err != nil {
		util.Logger.Error("创建车辆失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	car.ID = int(id)

	for i, url := range imageURLs {
		_, err := tx.Exec(`INSERT INTO car_images (car_id, image_url, display_order) VALUES (?, ?, ?)`,
			car.ID, url, i)
		if err != nil {
			util.Logger.Error("创建车辆图片失败", zap.Error(err), zap.Int("car_id", car.ID))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("车辆创建成功", zap.Int("car_id", car.ID))
	return nil
}

// FindByID 通过ID查找车辆，附带评分聚合与主图
func (r *carRepository) FindByID(id int) (*model.Car, error) {
	query := `SELECT ` + carColumns + `,
                  COALESCE((SELECT AVG(rating) FROM reviews rv WHERE rv.car_id = c.id), 0),
                  (SELECT COUNT(*) FROM reviews rv WHERE rv.car_id = c.id),
                  COALESCE((SELECT image_url FROM car_images ci WHERE ci.car_id = c.id
                            ORDER BY ci.display_order LIMIT 1), '')
              FROM cars c WHERE c.id = ?`

	row := r.db.QueryRow(query, id)
	var car model.Car
	var categoryID, mileage sql.NullInt64
	var transmission, fuelType, cond, description sql.NullString
	err := row.Scan(
		&car.ID, &car.DealerID, &categoryID, &car.Title, &car.Make, &car.Model, &car.Location,
		&car.Year, &car.Price, &mileage, &transmission, &fuelType, &cond, &description,
		&car.Published, &car.CreatedAt,
		&car.AverageRating, &car.ReviewCount, &car.PrimaryImage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if categoryID.Valid {
		cid := int(categoryID.Int64)
		car.CategoryID = &cid
	}
	if mileage.Valid {
		m := int(mileage.Int64)
		car.Mileage = &m
	}
	car.Transmission = transmission.String
	car.FuelType = fuelType.String
	car.Condition = cond.String
	car.Description = description.String
	car.PrimaryImage = absoluteImageURL(car.PrimaryImage)
	return &car, nil
}

// Update 更新车辆信息
func (r *carRepository) Update(car *model.Car) error {
	query := `UPDATE cars
              SET category_id = ?, title = ?, make = ?, model = ?, location = ?, year = ?,
                  price = ?, mileage = ?, transmission = ?, fuel_type = ?, cond = ?,
                  description = ?, published = ?
              WHERE id = ?`
	_, err := r.db.Exec(query, car.CategoryID, car.Title, car.Make, car.Model,
		car.Location, car.Year, car.Price, car.Mileage,
		nullString(car.Transmission), nullString(car.FuelType),
		nullString(car.Condition), nullString(car.Description),
		car.Published, car.ID)
	if err != nil {
		util.Logger.Error("更新车辆失败", zap.Error(err), zap.Int("car_id", car.ID))
	}
	return err
}

// Delete 在一个事务中删除车辆及其图片、评价与收藏
func (r *carRepository) Delete(id int) error {
	util.Logger.Info("开始删除车辆", zap.Int("car_id", id))

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM car_images WHERE car_id = ?`,
		`DELETE FROM reviews WHERE car_id = ?`,
		`DELETE FROM favorites WHERE car_id = ?`,
		`DELETE FROM cars WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			util.Logger.Error("删除车辆失败", zap.Error(err), zap.Int("car_id", id))
			return err
		}
	}

	return tx.Commit()
}

// buildCarFilters 根据过滤条件构建 WHERE 子句
func buildCarFilters(filters model.CarFilters) ([]string, []interface{}) {
	conditions := []string{"c.published = true"}
	var args []interface{}

	if filters.Make != "" {
		conditions = append(conditions, "c.make = ?")
		args = append(args, filters.Make)
	}
	if filters.Model != "" {
		conditions = append(conditions, "c.model = ?")
		args = append(args, filters.Model)
	}
	if filters.Year > 0 {
		conditions = append(conditions, "c.year = ?")
		args = append(args, filters.Year)
	}
	if filters.Transmission != "" {
		conditions = append(conditions, "c.transmission = ?")
		args = append(args, filters.Transmission)
	}
	if filters.FuelType != "" {
		conditions = append(conditions, "c.fuel_type = ?")
		args = append(args, filters.FuelType)
	}
	if filters.CategoryID > 0 {
		conditions = append(conditions, "c.category_id = ?")
		args = append(args, filters.CategoryID)
	}
	if filters.MinPrice > 0 {
		conditions = append(conditions, "c.price >= ?")
		args = append(args, filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		conditions = append(conditions, "c.price <= ?")
		args = append(args, filters.MaxPrice)
	}
	if filters.MinYear > 0 {
		conditions = append(conditions, "c.year >= ?")
		args = append(args, filters.MinYear)
	}
	if filters.MaxYear > 0 {
		conditions = append(conditions, "c.year <= ?")
		args = append(args, filters.MaxYear)
	}
	if filters.Search != "" {
		conditions = append(conditions,
			"(c.title LIKE ? OR c.make LIKE ? OR c.model LIKE ? OR c.location LIKE ? OR c.description LIKE ?)")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	return conditions, args
}

// carOrderClause 将排序参数映射为 ORDER BY 子句，未知值回退到默认排序
func carOrderClause(ordering string) string {
	switch ordering {
	case "price":
		return "c.price ASC"
	case "-price":
		return "c.price DESC"
	case "year":
		return "c.year ASC"
	case "-year":
		return "c.year DESC"
	case "mileage":
		return "c.mileage ASC"
	case "-mileage":
		return "c.mileage DESC"
	case "created_at":
		return "c.created_at ASC"
	default:
		return "c.created_at DESC"
	}
}

// List 分页返回已发布的车辆，附带主图与评分聚合
func (r *carRepository) List(filters model.CarFilters, page, pageSize int) ([]model.Car, int, error) {
	conditions, args := buildCarFilters(filters)
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM cars c` + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		util.Logger.Error("统计车辆数量失败", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT ` + carColumns + `,
                  COALESCE((SELECT AVG(rating) FROM reviews rv WHERE rv.car_id = c.id), 0),
                  (SELECT COUNT(*) FROM reviews rv WHERE rv.car_id = c.id),
                  COALESCE((SELECT image_url FROM car_images ci WHERE ci.car_id = c.id
                            ORDER BY ci.display_order LIMIT 1), '')
              FROM cars c` + where + `
              ORDER BY ` + carOrderClause(filters.Ordering) + `
              LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		util.Logger.Error("查询车辆列表失败", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	cars, err := scanCarRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// ListByDealer 返回经销商的全部车辆，包含未发布的
func (r *carRepository) ListByDealer(dealerID int) ([]model.Car, error) {
	query := `SELECT ` + carColumns + `,
                  COALESCE((SELECT AVG(rating) FROM reviews rv WHERE rv.car_id = c.id), 0),
                  (SELECT COUNT(*) FROM reviews rv WHERE rv.car_id = c.id),
                  COALESCE((SELECT image_url FROM car_images ci WHERE ci.car_id = c.id
                            ORDER BY ci.display_order LIMIT 1), '')
              FROM cars c
              WHERE c.dealer_id = ?
              ORDER BY c.created_at DESC`

	rows, err := r.db.Query(query, dealerID)
	if err != nil {
		util.Logger.Error("查询经销商车辆失败", zap.Error(err), zap.Int("dealer_id", dealerID))
		return nil, err
	}
	defer rows.Close()

	return scanCarRows(rows)
}

// scanCarRows 扫描包含聚合列的车辆结果集
func scanCarRows(rows *sql.Rows) ([]model.Car, error) {
	var cars []model.Car
	for rows.Next() {
		var car model.Car
		var categoryID, mileage sql.NullInt64
		var transmission, fuelType, cond, description sql.NullString
		err := rows.Scan(
			&car.ID, &car.DealerID, &categoryID, &car.Title, &car.Make, &car.Model, &car.Location,
			&car.Year, &car.Price, &mileage, &transmission, &fuelType, &cond, &description,
			&car.Published, &car.CreatedAt,
			&car.AverageRating, &car.ReviewCount, &car.PrimaryImage,
		)
		if err != nil {
			return nil, err
		}
		if categoryID.Valid {
			cid := int(categoryID.Int64)
			car.CategoryID = &cid
		}
		if mileage.Valid {
			m := int(mileage.Int64)
			car.Mileage = &m
		}
		car.Transmission = transmission.String
		car.FuelType = fuelType.String
		car.Condition = cond.String
		car.Description = description.String
		car.PrimaryImage = absoluteImageURL(car.PrimaryImage)
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// GetImages 返回车辆的所有图片，按展示顺序排列
func (r *carRepository) GetImages(carID int) ([]model.CarImage, error) {
	rows, err := r.db.Query(
		`SELECT id, car_id, image_url, display_order FROM car_images
         WHERE car_id = ? ORDER BY display_order`, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.CarImage
	for rows.Next() {
		var img model.CarImage
		if err := rows.Scan(&img.ID, &img.CarID, &img.ImageURL, &img.Order); err != nil {
			return nil, err
		}
		img.ImageURL = absoluteImageURL(img.ImageURL)
		images = append(images, img)
	}
	return images, rows.Err()
}

// MaxImageOrder 返回车辆当前最大的展示序号，无图片时返回 -1
func (r *carRepository) MaxImageOrder(carID int) (int, error) {
	var max int
	err := r.db.QueryRow(
		`SELECT COALESCE(MAX(display_order), -1) FROM car_images WHERE car_id = ?`, carID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

// AddImages 从指定序号开始追加图片
func (r *carRepository) AddImages(carID, startOrder int, imageURLs []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, url := range imageURLs {
		_, err := tx.Exec(`INSERT INTO car_images (car_id, image_url, display_order) VALUES (?, ?, ?)`,
			carID, url, startOrder+i)
		if err != nil {
			util.Logger.Error("追加车辆图片失败", zap.Error(err), zap.Int("car_id", carID))
			return err
		}
	}

	return tx.Commit()
}

// CountOwned 统计给定ID集合中属于该经销商的车辆数量
func (r *carRepository) CountOwned(dealerID int, carIDs []int) (int, error) {
	if len(carIDs) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(*) FROM cars WHERE dealer_id = ? AND id IN (` + placeholders(len(carIDs)) + `)`
	args := make([]interface{}, 0, len(carIDs)+1)
	args = append(args, dealerID)
	for _, id := range carIDs {
		args = append(args, id)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetPublished 批量更新发布状态，UPDATE 自带归属条件
func (r *carRepository) SetPublished(dealerID int, carIDs []int, published bool) (int, error) {
	if len(carIDs) == 0 {
		return 0, nil
	}
	query := `UPDATE cars SET published = ? WHERE dealer_id = ? AND id IN (` + placeholders(len(carIDs)) + `)`
	args := make([]interface{}, 0, len(carIDs)+2)
	args = append(args, published, dealerID)
	for _, id := range carIDs {
		args = append(args, id)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		util.Logger.Error("批量更新发布状态失败", zap.Error(err), zap.Int("dealer_id", dealerID))
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	util.Logger.Info("批量更新发布状态成功",
		zap.Int("dealer_id", dealerID),
		zap.Int64("affected", affected),
		zap.Bool("published", published))
	return int(affected), nil
}

// placeholders 生成 n 个逗号分隔的占位符
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// nullString 空字符串写入为 NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
