package mysql

import (
	"database/sql"
	"fmt"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	util.Logger.Info("尝试创建新用户", zap.String("username", user.Username))

	query := `INSERT INTO users (username, email, password_hash, first_name, last_name, role)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Role)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新用户ID失败", zap.Error(err))
		return err
	}
	user.ID = int(id)
	user.IsActive = true

	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// scanUser 扫描用户行并解析角色档案引用
func (r *userRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var dealerID, buyerID sql.NullInt64
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role, &user.IsActive, &user.CreatedAt,
		&dealerID, &buyerID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if dealerID.Valid {
		id := int(dealerID.Int64)
		user.DealerProfileID = &id
	}
	if buyerID.Valid {
		id := int(buyerID.Int64)
		user.BuyerProfileID = &id
	}
	return &user, nil
}

// FindByID 通过ID查找用户，同时解析角色档案引用
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
                     u.role, u.is_active, u.created_at, d.id, b.id
              FROM users u
              LEFT JOIN dealers d ON d.user_id = u.id
              LEFT JOIN buyers b ON b.user_id = u.id
              WHERE u.id = ?`
	return r.scanUser(r.db.QueryRow(query, id))
}

// FindByIdentifier 通过用户名或邮箱精确匹配查找用户
func (r *userRepository) FindByIdentifier(identifier string) (*model.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
                     u.role, u.is_active, u.created_at, d.id, b.id
              FROM users u
              LEFT JOIN dealers d ON d.user_id = u.id
              LEFT JOIN buyers b ON b.user_id = u.id
              WHERE u.username = ? OR u.email = ?`
	return r.scanUser(r.db.QueryRow(query, identifier, identifier))
}

// Update 更新用户信息
func (r *userRepository) Update(user *model.User) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET first_name = ?, last_name = ?, is_active = ?
		WHERE id = ?`,
		user.FirstName, user.LastName, user.IsActive, user.ID)
	return err
}

// UpdateRole 更新用户角色
func (r *userRepository) UpdateRole(userID int, role string) error {
	util.Logger.Info("更新用户角色", zap.Int("user_id", userID), zap.String("role", role))
	_, err := r.db.Exec(`UPDATE users SET role = ? WHERE id = ?`, role, userID)
	return err
}

// FindTokenByUserID 查找用户的会话令牌，不存在时返回空字符串
func (r *userRepository) FindTokenByUserID(userID int) (string, error) {
	var token string
	err := r.db.QueryRow(`SELECT token FROM auth_tokens WHERE user_id = ?`, userID).Scan(&token)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

// CreateToken 为用户创建会话令牌
func (r *userRepository) CreateToken(token string, userID int) error {
	_, err := r.db.Exec(`INSERT INTO auth_tokens (token, user_id) VALUES (?, ?)`, token, userID)
	return err
}

// DeleteToken 删除会话令牌
func (r *userRepository) DeleteToken(token string) error {
	_, err := r.db.Exec(`DELETE FROM auth_tokens WHERE token = ?`, token)
	return err
}

// FindUserIDByToken 通过会话令牌查找用户ID，不存在时返回0
func (r *userRepository) FindUserIDByToken(token string) (int, error) {
	var userID int
	err := r.db.QueryRow(`SELECT user_id FROM auth_tokens WHERE token = ?`, token).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return userID, nil
}

// CreateDealer 创建经销商档案
func (r *userRepository) CreateDealer(dealer *model.Dealer) error {
	util.Logger.Info("开始创建经销商档案", zap.Int("user_id", dealer.UserID))

	query := `INSERT INTO dealers (user_id, first_name, last_name, phone, address)
              VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, dealer.UserID, dealer.FirstName, dealer.LastName,
		dealer.Phone, dealer.Address)
	if err != nil {
		util.Logger.Error("创建经销商档案失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	dealer.ID = int(id)

	util.Logger.Info("经销商档案创建成功", zap.Int("dealer_id", dealer.ID))
	return nil
}

// FindDealerByID 通过ID查找经销商档案
func (r *userRepository) FindDealerByID(id int) (*model.Dealer, error) {
	var dealer model.Dealer
	query := `SELECT id, user_id, first_name, last_name, phone, address, created_at
              FROM dealers WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(
		&dealer.ID, &dealer.UserID, &dealer.FirstName, &dealer.LastName,
		&dealer.Phone, &dealer.Address, &dealer.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &dealer, nil
}

// FindDealerByUserID 通过用户ID查找经销商档案
func (r *userRepository) FindDealerByUserID(userID int) (*model.Dealer, error) {
	var dealer model.Dealer
	query := `SELECT id, user_id, first_name, last_name, phone, address, created_at
              FROM dealers WHERE user_id = ?`
	err := r.db.QueryRow(query, userID).Scan(
		&dealer.ID, &dealer.UserID, &dealer.FirstName, &dealer.LastName,
		&dealer.Phone, &dealer.Address, &dealer.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &dealer, nil
}

// UpdateDealer 更新经销商档案
func (r *userRepository) UpdateDealer(dealer *model.Dealer) error {
	query := `UPDATE dealers
              SET first_name = ?, last_name = ?, phone = ?, address = ?
              WHERE id = ?`
	_, err := r.db.Exec(query, dealer.FirstName, dealer.LastName,
		dealer.Phone, dealer.Address, dealer.ID)
	return err
}

// ListDealers 返回经销商列表，附带已发布车辆数量
func (r *userRepository) ListDealers(search string) ([]model.Dealer, error) {
	query := `SELECT d.id, d.user_id, d.first_name, d.last_name, d.phone, d.address, d.created_at,
                     (SELECT COUNT(*) FROM cars c WHERE c.dealer_id = d.id AND c.published = true) AS car_count
              FROM dealers d`
	var args []interface{}
	if search != "" {
		query += ` WHERE CONCAT(d.first_name, ' ', d.last_name) LIKE ? OR d.address LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY d.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		util.Logger.Error("查询经销商列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var dealers []model.Dealer
	for rows.Next() {
		var d model.Dealer
		err := rows.Scan(&d.ID, &d.UserID, &d.FirstName, &d.LastName,
			&d.Phone, &d.Address, &d.CreatedAt, &d.CarCount)
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, d)
	}
	return dealers, rows.Err()
}

// CreateBuyer 创建买家档案
func (r *userRepository) CreateBuyer(buyer *model.Buyer) error {
	util.Logger.Info("开始创建买家档案", zap.Int("user_id", buyer.UserID))

	query := `INSERT INTO buyers (user_id, first_name, last_name, phone)
              VALUES (?, ?, ?, ?)`
	result, err := r.db.Exec(query, buyer.UserID, buyer.FirstName, buyer.LastName, buyer.Phone)
	if err != nil {
		util.Logger.Error("创建买家档案失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	buyer.ID = int(id)

	util.Logger.Info("买家档案创建成功", zap.Int("buyer_id", buyer.ID))
	return nil
}

// FindBuyerByUserID 通过用户ID查找买家档案
func (r *userRepository) FindBuyerByUserID(userID int) (*model.Buyer, error) {
	var buyer model.Buyer
	query := `SELECT id, user_id, first_name, last_name, phone, created_at
              FROM buyers WHERE user_id = ?`
	err := r.db.QueryRow(query, userID).Scan(
		&buyer.ID, &buyer.UserID, &buyer.FirstName, &buyer.LastName,
		&buyer.Phone, &buyer.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &buyer, nil
}

// UpdateBuyer 更新买家档案
func (r *userRepository) UpdateBuyer(buyer *model.Buyer) error {
	query := `UPDATE buyers SET first_name = ?, last_name = ?, phone = ? WHERE id = ?`
	_, err := r.db.Exec(query, buyer.FirstName, buyer.LastName, buyer.Phone, buyer.ID)
	return err
}
