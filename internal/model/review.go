package model

import "time"

// Review 车辆评价，(car_id, user_id) 唯一
type Review struct {
	ID        int       `json:"id"`
	CarID     int       `json:"car_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty"`
}

// Favorite 收藏记录，(user_id, car_id) 唯一
type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CarID     int       `json:"car_id"`
	CreatedAt time.Time `json:"created_at"`

	Car *Car `json:"car,omitempty"`
}
