package model

import "time"

// Dealership 经销商店铺，与经销商一对一
type Dealership struct {
	ID          int       `json:"id"`
	DealerID    int       `json:"dealer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Specialties []string  `json:"specialties"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Website     string    `json:"website,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`

	// 读取时计算的派生字段，不落库
	TotalCars       int      `json:"total_cars"`
	LocationsServed []string `json:"locations_served"`
	AverageRating   float64  `json:"average_rating"`
}
