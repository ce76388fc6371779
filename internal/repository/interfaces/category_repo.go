package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// CategoryRepository 接口定义了分类相关的数据库操作
type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id int) (*model.Category, error)
	List() ([]model.Category, error)
	// Delete 只删除分类本身，引用它的车辆外键置空
	Delete(id int) error
}
