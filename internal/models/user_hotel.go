package models

import "time"

// UserHotel links a manager to a hotel they are allowed to manage
type UserHotel struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	HotelID   uint      `gorm:"primaryKey;index" json:"hotel_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for UserHotel model
func (UserHotel) TableName() string {
	return "user_hotels"
}
