package model

import "time"

// 变速箱类型
var TransmissionChoices = []string{"MANUAL", "AUTOMATIC", "CVT"}

// 燃料类型
var FuelChoices = []string{"PETROL", "DIESEL", "ELECTRIC", "HYBRID"}

// Category 车辆分类
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// 派生字段：已发布车辆数量
	CarCount int `json:"car_count"`
}

// Car 车辆模型
type Car struct {
	ID           int       `json:"id"`
	DealerID     int       `json:"dealer_id"`
	CategoryID   *int      `json:"category_id,omitempty"`
	Title        string    `json:"title"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Location     string    `json:"location"`
	Year         int       `json:"year"`
	Price        float64   `json:"price"`
	Mileage      *int      `json:"mileage,omitempty"`
	Transmission string    `json:"transmission,omitempty"`
	FuelType     string    `json:"fuel_type,omitempty"`
	Condition    string    `json:"condition,omitempty"`
	Description  string    `json:"description,omitempty"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`

	// 读取时计算的派生字段，不落库
	PrimaryImage  string     `json:"primary_image,omitempty"`
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int        `json:"review_count"`
	IsFavorited   bool       `json:"is_favorited"`
	Images        []CarImage `json:"images,omitempty"`
	Reviews       []Review   `json:"reviews,omitempty"`
	Dealer        *Dealer    `json:"dealer,omitempty"`
	Category      *Category  `json:"category,omitempty"`
}

// CarImage 车辆图片，(car_id, display_order) 唯一，0号位为主图
type CarImage struct {
	ID       int    `json:"id"`
	CarID    int    `json:"car_id"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
}

// CarFilters 车辆列表的过滤条件
type CarFilters struct {
	Make         string
	Model        string
	Year         int
	Transmission string
	FuelType     string
	CategoryID   int
	MinPrice     float64
	MaxPrice     float64
	MinYear      int
	MaxYear      int
	Search       string
	Ordering     string
}

// MarketStats 市场统计数据
type MarketStats struct {
	TotalCars     int      `json:"total_cars"`
	TotalDealers  int      `json:"total_dealers"`
	AveragePrice  float64  `json:"average_price"`
	Makes         []string `json:"makes"`
	FuelTypes     []string `json:"fuel_types"`
	Transmissions []string `json:"transmissions"`
}

// Suggestion 搜索自动补全建议
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
