package mysql

import (
	"database/sql"
	"fmt"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// reviewRepository 实现了 ReviewRepository 接口
type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository 创建一个新的 reviewRepository 实例
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{db}
}

// Create 创建评价，唯一约束保证每人每车只有一条
func (r *reviewRepository) Create(review *model.Review) error {
	util.Logger.Info("开始创建评价",
		zap.Int("car_id", review.CarID),
		zap.Int("user_id", review.UserID))

	query := `INSERT INTO reviews (car_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`
	result, err := r.db.Exec(query, review.CarID, review.UserID, review.Rating, review.Comment)
	if err != nil {
		util.Logger.Error("创建评价失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	review.ID = int(id)
	return nil
}

// FindByID 通过ID查找评价
func (r *reviewRepository) FindByID(id int) (*model.Review, error) {
	var review model.Review
	query := `SELECT id, car_id, user_id, rating, comment, created_at FROM reviews WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(
		&review.ID, &review.CarID, &review.UserID, &review.Rating,
		&review.Comment, &review.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByCar 返回车辆的所有评价，附带作者信息，按创建时间倒序
func (r *reviewRepository) ListByCar(carID int) ([]model.Review, error) {
	query := `SELECT r.id, r.car_id, r.user_id, r.rating, r.comment, r.created_at,
                     u.username, u.first_name, u.last_name
              FROM reviews r
              JOIN users u ON u.id = r.user_id
              WHERE r.car_id = ?
              ORDER BY r.created_at DESC`

	rows, err := r.db.Query(query, carID)
	if err != nil {
		util.Logger.Error("查询评价列表失败", zap.Error(err), zap.Int("car_id", carID))
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		var user model.User
		err := rows.Scan(&rv.ID, &rv.CarID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&user.Username, &user.FirstName, &user.LastName)
		if err != nil {
			return nil, err
		}
		user.ID = rv.UserID
		rv.User = &user
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// Update 更新评价内容
func (r *reviewRepository) Update(review *model.Review) error {
	_, err := r.db.Exec(`UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`,
		review.Rating, review.Comment, review.ID)
	return err
}

// Delete 删除评价
func (r *reviewRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	return err
}

// AggregateByCar 返回评分均值与评价数量，无评价时均为零值
func (r *reviewRepository) AggregateByCar(carID int) (float64, int, error) {
	var avg float64
	var count int
	err := r.db.QueryRow(`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE car_id = ?`,
		carID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
