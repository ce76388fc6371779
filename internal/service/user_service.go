package service

import (
	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/interfaces"
	"github.com/leonemunyao/alx-project-nexus/internal/repository/mysql"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 登录失败时用于比较的哈希，保证不存在的用户也消耗一次 bcrypt
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// UserService 提供用户注册、登录与角色档案管理
type UserService struct {
	userRepo interfaces.UserRepository
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 注册新用户，默认角色为买家
func (s *UserService) Register(user *model.User, password string) error {
	util.Logger.Info("开始注册用户", zap.String("username", user.Username))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "密码加密失败", err)
	}
	user.PasswordHash = string(hash)
	if user.Role == "" {
		user.Role = model.RoleBuyer
	}

	if err := s.userRepo.Create(user); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrDuplicateIdentity, "用户名或邮箱已被注册")
		}
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	util.Logger.Info("用户注册成功", zap.Int("user_id", user.ID))
	return nil
}

// Login 验证凭证并返回可复用的会话令牌
// 标识符可以是用户名或邮箱，登录是幂等的：已有令牌直接返回
func (s *UserService) Login(identifier, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByIdentifier(identifier)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		// 用户不存在时同样比较一次哈希，避免时间侧信道
		bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return nil, "", errors.New(errors.ErrInvalidCredentials, "用户名或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.New(errors.ErrInvalidCredentials, "用户名或密码错误")
	}
	if !user.IsActive {
		return nil, "", errors.New(errors.ErrInvalidCredentials, "账号已被停用")
	}

	token, err := s.getOrCreateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return user, token, nil
}

// getOrCreateToken 返回用户已有的令牌，没有则生成并落库
// 并发登录时唯一约束保证只有一个令牌胜出，失败方重读胜出的令牌
func (s *UserService) getOrCreateToken(userID int) (string, error) {
	token, err := s.userRepo.FindTokenByUserID(userID)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, "查询令牌失败", err)
	}
	if token != "" {
		return token, nil
	}

	token, err = util.GenerateAuthToken()
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}
	if err := s.userRepo.CreateToken(token, userID); err != nil {
		if mysql.IsDuplicateEntry(err) {
			existing, err := s.userRepo.FindTokenByUserID(userID)
			if err != nil {
				return "", errors.Wrap(errors.ErrDatabase, "查询令牌失败", err)
			}
			if existing != "" {
				return existing, nil
			}
		}
		return "", errors.Wrap(errors.ErrDatabase, "保存令牌失败", err)
	}
	return token, nil
}

// Logout 撤销会话令牌，令牌删除后立即失效
func (s *UserService) Logout(token string) error {
	if err := s.userRepo.DeleteToken(token); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除令牌失败", err)
	}
	return nil
}

// Authenticate 通过令牌解析当前用户，供认证中间件使用
func (s *UserService) Authenticate(token string) (*model.User, error) {
	userID, err := s.userRepo.FindUserIDByToken(token)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询令牌失败", err)
	}
	if userID == 0 {
		return nil, errors.New(errors.ErrInvalidToken, "令牌无效或已撤销")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.New(errors.ErrInvalidToken, "令牌无效或已撤销")
	}
	return user, nil
}

// GetUser 通过ID获取用户
func (s *UserService) GetUser(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "用户不存在")
	}
	return user, nil
}

// UpdateAccount 更新账号的姓名，用户名、邮箱与角色在此不可变
func (s *UserService) UpdateAccount(userID int, firstName, lastName string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "用户不存在")
	}

	user.FirstName = firstName
	user.LastName = lastName
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}
	return user, nil
}

// CreateDealerProfile 创建经销商档案，同时将用户角色切换为经销商
// 角色以最后创建的档案为准
func (s *UserService) CreateDealerProfile(userID int, dealer *model.Dealer) error {
	dealer.UserID = userID
	if err := s.userRepo.CreateDealer(dealer); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrAlreadyExists, "经销商档案已存在")
		}
		return errors.Wrap(errors.ErrDatabase, "创建经销商档案失败", err)
	}

	if err := s.userRepo.UpdateRole(userID, model.RoleDealer); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户角色失败", err)
	}
	return nil
}

// GetDealer 通过ID获取经销商档案
func (s *UserService) GetDealer(id int) (*model.Dealer, error) {
	dealer, err := s.userRepo.FindDealerByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询经销商失败", err)
	}
	if dealer == nil {
		return nil, errors.New(errors.ErrNotFound, "经销商不存在")
	}
	return dealer, nil
}

// GetDealerByUser 返回当前用户自己的经销商档案
// 档案缺失是前置条件未满足，不是资源不存在
func (s *UserService) GetDealerByUser(userID int) (*model.Dealer, error) {
	dealer, err := s.userRepo.FindDealerByUserID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询经销商失败", err)
	}
	if dealer == nil {
		return nil, errors.New(errors.ErrPreconditionFailed, "请先创建经销商档案")
	}
	return dealer, nil
}

// UpdateDealerProfile 更新经销商档案，只有本人可以修改
func (s *UserService) UpdateDealerProfile(userID int, dealer *model.Dealer) error {
	existing, err := s.userRepo.FindDealerByUserID(userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询经销商失败", err)
	}
	if existing == nil {
		return errors.New(errors.ErrPreconditionFailed, "请先创建经销商档案")
	}

	existing.FirstName = dealer.FirstName
	existing.LastName = dealer.LastName
	existing.Phone = dealer.Phone
	existing.Address = dealer.Address
	if err := s.userRepo.UpdateDealer(existing); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新经销商档案失败", err)
	}
	*dealer = *existing
	return nil
}

// ListDealers 返回经销商列表，可按姓名或地址搜索
func (s *UserService) ListDealers(search string) ([]model.Dealer, error) {
	dealers, err := s.userRepo.ListDealers(search)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询经销商列表失败", err)
	}
	if dealers == nil {
		dealers = []model.Dealer{}
	}
	return dealers, nil
}

// CreateBuyerProfile 创建买家档案，同时将用户角色切换为买家
func (s *UserService) CreateBuyerProfile(userID int, buyer *model.Buyer) error {
	buyer.UserID = userID
	if err := s.userRepo.CreateBuyer(buyer); err != nil {
		if mysql.IsDuplicateEntry(err) {
			return errors.New(errors.ErrAlreadyExists, "买家档案已存在")
		}
		return errors.Wrap(errors.ErrDatabase, "创建买家档案失败", err)
	}

	if err := s.userRepo.UpdateRole(userID, model.RoleBuyer); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户角色失败", err)
	}
	return nil
}

// GetBuyerByUser 通过用户ID获取买家档案
func (s *UserService) GetBuyerByUser(userID int) (*model.Buyer, error) {
	buyer, err := s.userRepo.FindBuyerByUserID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询买家失败", err)
	}
	if buyer == nil {
		return nil, errors.New(errors.ErrPreconditionFailed, "请先创建买家档案")
	}
	return buyer, nil
}

// UpdateBuyerProfile 更新买家档案，只有本人可以修改
func (s *UserService) UpdateBuyerProfile(userID int, buyer *model.Buyer) error {
	existing, err := s.userRepo.FindBuyerByUserID(userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询买家失败", err)
	}
	if existing == nil {
		return errors.New(errors.ErrPreconditionFailed, "请先创建买家档案")
	}

	existing.FirstName = buyer.FirstName
	existing.LastName = buyer.LastName
	existing.Phone = buyer.Phone
	if err := s.userRepo.UpdateBuyer(existing); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新买家档案失败", err)
	}
	*buyer = *existing
	return nil
}
