package models

import "time"

// Booking reserves one room of a room type for the half-open stay [CheckinDate, CheckoutDate).
// The checkout day itself is not occupied.
type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	HotelID      uint      `gorm:"not null;index" json:"hotel_id"`
	RoomTypeID   uint      `gorm:"not null;index:idx_bookings_room_type_dates" json:"room_type_id"`
	CheckinDate  time.Time `gorm:"not null;index:idx_bookings_room_type_dates" json:"checkin_date"`
	CheckoutDate time.Time `gorm:"not null;index:idx_bookings_room_type_dates" json:"checkout_date"`
	CreatedAt    time.Time `json:"created_at"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hotel    *Hotel    `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

// TableName specifies the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}
