package model

import "time"

// 用户角色
const (
	RoleBuyer  = "BUYER"
	RoleDealer = "DEALER"
)

// User 结构体表示用户模型
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// 角色档案的显式引用，由仓库层通过关联查询填充，
	// 不存在时为 nil
	DealerProfileID *int `json:"dealer_profile_id,omitempty"`
	BuyerProfileID  *int `json:"buyer_profile_id,omitempty"`
}

// Dealer 经销商档案，与用户一对一
type Dealer struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`

	// 派生字段：已发布车辆数量
	CarCount int   `json:"car_count"`
	User     *User `json:"user,omitempty"`
}

// Buyer 买家档案，与用户一对一
type Buyer struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthToken 不透明的持久会话令牌，每个用户只有一个
type AuthToken struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
