package interfaces

import "github.com/leonemunyao/alx-project-nexus/internal/model"

// UserRepository 接口定义了用户、角色档案与会话令牌的数据库操作
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	// FindByIdentifier 通过用户名或邮箱精确匹配查找用户
	FindByIdentifier(identifier string) (*model.User, error)
	Update(user *model.User) error
	UpdateRole(userID int, role string) error

	// 会话令牌，每个用户只保留一个可复用的令牌
	FindTokenByUserID(userID int) (string, error)
	CreateToken(token string, userID int) error
	DeleteToken(token string) error
	FindUserIDByToken(token string) (int, error)

	// 经销商档案
	CreateDealer(dealer *model.Dealer) error
	FindDealerByID(id int) (*model.Dealer, error)
	FindDealerByUserID(userID int) (*model.Dealer, error)
	UpdateDealer(dealer *model.Dealer) error
	ListDealers(search string) ([]model.Dealer, error)

	// 买家档案
	CreateBuyer(buyer *model.Buyer) error
	FindBuyerByUserID(userID int) (*model.Buyer, error)
	UpdateBuyer(buyer *model.Buyer) error
}
