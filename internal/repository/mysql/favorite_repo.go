package mysql

import (
	"database/sql"
	"fmt"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// favoriteRepository 实现了 FavoriteRepository 接口
type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository 创建一个新的 favoriteRepository 实例
func NewFavoriteRepository(db *sql.DB) *favoriteRepository {
	return &favoriteRepository{db}
}

// Create 创建收藏记录，唯一约束保证不重复
func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	query := `INSERT INTO favorites (user_id, car_id) VALUES (?, ?)`
	result, err := r.db.Exec(query, favorite.UserID, favorite.CarID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	favorite.ID = int(id)

	util.Logger.Info("收藏创建成功",
		zap.Int("favorite_id", favorite.ID),
		zap.Int("user_id", favorite.UserID),
		zap.Int("car_id", favorite.CarID))
	return nil
}

// FindByID 通过ID查找收藏记录
func (r *favoriteRepository) FindByID(id int) (*model.Favorite, error) {
	var fav model.Favorite
	query := `SELECT id, user_id, car_id, created_at FROM favorites WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(&fav.ID, &fav.UserID, &fav.CarID, &fav.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

// FindByUserAndCar 查找用户对某车辆的收藏记录
func (r *favoriteRepository) FindByUserAndCar(userID, carID int) (*model.Favorite, error) {
	var fav model.Favorite
	query := `SELECT id, user_id, car_id, created_at FROM favorites WHERE user_id = ? AND car_id = ?`
	err := r.db.QueryRow(query, userID, carID).Scan(&fav.ID, &fav.UserID, &fav.CarID, &fav.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

// ListByUser 返回用户的所有收藏，附带车辆摘要，按收藏时间倒序
func (r *favoriteRepository) ListByUser(userID int) ([]model.Favorite, error) {
	query := `SELECT f.id, f.user_id, f.car_id, f.created_at,
                     c.dealer_id, c.title, c.make, c.model, c.location, c.year, c.price,
                     c.published, c.created_at,
                     COALESCE((SELECT image_url FROM car_images ci WHERE ci.car_id = c.id
                               ORDER BY ci.display_order LIMIT 1), '')
              FROM favorites f
              JOIN cars c ON c.id = f.car_id
              WHERE f.user_id = ?
              ORDER BY f.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		util.Logger.Error("查询收藏列表失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	var favorites []model.Favorite
	for rows.Next() {
		var fav model.Favorite
		var car model.Car
		err := rows.Scan(&fav.ID, &fav.UserID, &fav.CarID, &fav.CreatedAt,
			&car.DealerID, &car.Title, &car.Make, &car.Model, &car.Location,
			&car.Year, &car.Price, &car.Published, &car.CreatedAt, &car.PrimaryImage)
		if err != nil {
			return nil, err
		}
		car.ID = fav.CarID
		car.PrimaryImage = absoluteImageURL(car.PrimaryImage)
		fav.Car = &car
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}

// Delete 删除收藏记录
func (r *favoriteRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE id = ?`, id)
	return err
}

// DeleteByUserAndCar 删除用户对某车辆的收藏，返回是否确有删除
func (r *favoriteRepository) DeleteByUserAndCar(userID, carID int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM favorites WHERE user_id = ? AND car_id = ?`, userID, carID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
