package mysql

import (
	"database/sql"
	"fmt"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// categoryRepository 实现了 CategoryRepository 接口
type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository 创建一个新的 categoryRepository 实例
func NewCategoryRepository(db *sql.DB) *categoryRepository {
	return &categoryRepository{db}
}

// Create 创建分类
func (r *categoryRepository) Create(category *model.Category) error {
	query := `INSERT INTO categories (name, slug) VALUES (?, ?)`
	result, err := r.db.Exec(query, category.Name, category.Slug)
	if err != nil {
		util.Logger.Error("创建分类失败", zap.Error(err), zap.String("name", category.Name))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	category.ID = int(id)
	return nil
}

// FindByID 通过ID查找分类
func (r *categoryRepository) FindByID(id int) (*model.Category, error) {
	var category model.Category
	query := `SELECT c.id, c.name, c.slug, c.created_at,
                     (SELECT COUNT(*) FROM cars WHERE category_id = c.id AND published = true)
              FROM categories c WHERE c.id = ?`
	err := r.db.QueryRow(query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.CarCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List 返回所有分类，附带已发布车辆数量
func (r *categoryRepository) List() ([]model.Category, error) {
	query := `SELECT c.id, c.name, c.slug, c.created_at,
                     (SELECT COUNT(*) FROM cars WHERE category_id = c.id AND published = true)
              FROM categories c ORDER BY c.name`

	rows, err := r.db.Query(query)
	if err != nil {
		util.Logger.Error("查询分类列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.CarCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Delete 删除分类，引用它的车辆外键置空
func (r *categoryRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE cars SET category_id = NULL WHERE category_id = ?`, id); err != nil {
		util.Logger.Error("清除车辆分类引用失败", zap.Error(err), zap.Int("category_id", id))
		return err
	}
	if _, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id); err != nil {
		util.Logger.Error("删除分类失败", zap.Error(err), zap.Int("category_id", id))
		return err
	}

	return tx.Commit()
}
