package service

import (
	"os"
	"testing"

	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	os.Exit(m.Run())
}

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(userID int, role string) error {
	args := m.Called(userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) FindTokenByUserID(userID int) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) CreateToken(token string, userID int) error {
	args := m.Called(token, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserIDByToken(token string) (int, error) {
	args := m.Called(token)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CreateDealer(dealer *model.Dealer) error {
	args := m.Called(dealer)
	return args.Error(0)
}

func (m *MockUserRepository) FindDealerByID(id int) (*model.Dealer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dealer), args.Error(1)
}

func (m *MockUserRepository) FindDealerByUserID(userID int) (*model.Dealer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dealer), args.Error(1)
}

func (m *MockUserRepository) UpdateDealer(dealer *model.Dealer) error {
	args := m.Called(dealer)
	return args.Error(0)
}

func (m *MockUserRepository) ListDealers(search string) ([]model.Dealer, error) {
	args := m.Called(search)
	return args.Get(0).([]model.Dealer), args.Error(1)
}

func (m *MockUserRepository) CreateBuyer(buyer *model.Buyer) error {
	args := m.Called(buyer)
	return args.Error(0)
}

func (m *MockUserRepository) FindBuyerByUserID(userID int) (*model.Buyer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Buyer), args.Error(1)
}

func (m *MockUserRepository) UpdateBuyer(buyer *model.Buyer) error {
	args := m.Called(buyer)
	return args.Error(0)
}

// MockCarRepository 是 CarRepository 接口的模拟实现
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(car *model.Car, imageURLs []string) error {
	args := m.Called(car, imageURLs)
	return args.Error(0)
}

func (m *MockCarRepository) FindByID(id int) (*model.Car, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Car), args.Error(1)
}

func (m *MockCarRepository) Update(car *model.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCarRepository) List(filters model.CarFilters, page, pageSize int) ([]model.Car, int, error) {
	args := m.Called(filters, page, pageSize)
	return args.Get(0).([]model.Car), args.Int(1), args.Error(2)
}

func (m *MockCarRepository) ListByDealer(dealerID int) ([]model.Car, error) {
	args := m.Called(dealerID)
	return args.Get(0).([]model.Car), args.Error(1)
}

func (m *MockCarRepository) GetImages(carID int) ([]model.CarImage, error) {
	args := m.Called(carID)
	return args.Get(0).([]model.CarImage), args.Error(1)
}

func (m *MockCarRepository) MaxImageOrder(carID int) (int, error) {
	args := m.Called(carID)
	return args.Int(0), args.Error(1)
}

func (m *MockCarRepository) AddImages(carID, startOrder int, imageURLs []string) error {
	args := m.Called(carID, startOrder, imageURLs)
	return args.Error(0)
}

func (m *MockCarRepository) CountOwned(dealerID int, carIDs []int) (int, error) {
	args := m.Called(dealerID, carIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockCarRepository) SetPublished(dealerID int, carIDs []int, published bool) (int, error) {
	args := m.Called(dealerID, carIDs, published)
	return args.Int(0), args.Error(1)
}

// MockReviewRepository 是 ReviewRepository 接口的模拟实现
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *model.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(id int) (*model.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByCar(carID int) ([]model.Review, error) {
	args := m.Called(carID)
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(review *model.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) AggregateByCar(carID int) (float64, int, error) {
	args := m.Called(carID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockFavoriteRepository 是 FavoriteRepository 接口的模拟实现
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(favorite *model.Favorite) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) FindByID(id int) (*model.Favorite, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) FindByUserAndCar(userID, carID int) (*model.Favorite, error) {
	args := m.Called(userID, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(userID int) ([]model.Favorite, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteByUserAndCar(userID, carID int) (bool, error) {
	args := m.Called(userID, carID)
	return args.Bool(0), args.Error(1)
}

// MockDealershipRepository 是 DealershipRepository 接口的模拟实现
type MockDealershipRepository struct {
	mock.Mock
}

func (m *MockDealershipRepository) Create(dealership *model.Dealership) error {
	args := m.Called(dealership)
	return args.Error(0)
}

func (m *MockDealershipRepository) FindByDealerID(dealerID int) (*model.Dealership, error) {
	args := m.Called(dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dealership), args.Error(1)
}

func (m *MockDealershipRepository) Update(dealership *model.Dealership) error {
	args := m.Called(dealership)
	return args.Error(0)
}

func (m *MockDealershipRepository) ListPublished() ([]model.Dealership, error) {
	args := m.Called()
	return args.Get(0).([]model.Dealership), args.Error(1)
}

func (m *MockDealershipRepository) LoadStats(dealership *model.Dealership) error {
	args := m.Called(dealership)
	return args.Error(0)
}

// MockStatsRepository 是 StatsRepository 接口的模拟实现
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) MarketStats() (*model.MarketStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MarketStats), args.Error(1)
}

func (m *MockStatsRepository) SuggestMakes(query string, limit int) ([]string, error) {
	args := m.Called(query, limit)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) SuggestModels(query string, limit int) ([]string, error) {
	args := m.Called(query, limit)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) SuggestLocations(query string, limit int) ([]string, error) {
	args := m.Called(query, limit)
	return args.Get(0).([]string), args.Error(1)
}

// MockCategoryRepository 是 CategoryRepository 接口的模拟实现
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(id int) (*model.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List() ([]model.Category, error) {
	args := m.Called()
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
