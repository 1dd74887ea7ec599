package models

import "time"

// Bed types accepted for a room type
var BedTypes = []string{"Single", "Double", "Queen", "King", "Twin", "Bunk Beds", "Sofa Bed"}

// RoomType is a category of rooms within a hotel. TotalRooms is the number of physical
// rooms of this type; IsAvailable is the operator-controlled activation flag.
type RoomType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HotelID     uint      `gorm:"not null;uniqueIndex:idx_room_types_hotel_name" json:"hotel_id" validate:"required"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_room_types_hotel_name" json:"name" validate:"required,max=100"`
	Description string    `gorm:"size:500" json:"description,omitempty" validate:"max=500"`
	Capacity    int       `gorm:"not null" json:"capacity" validate:"min=1"`
	BedType     string    `gorm:"size:20;not null" json:"bed_type" validate:"required,oneof='Single' 'Double' 'Queen' 'King' 'Twin' 'Bunk Beds' 'Sofa Bed'"`
	Size        string    `gorm:"size:50" json:"size,omitempty" validate:"max=50"`
	BasePrice   float64   `gorm:"default:0" json:"base_price" validate:"min=0"`
	Currency    string    `gorm:"size:10;default:'THB'" json:"currency" validate:"max=10"`
	TotalRooms  int       `gorm:"not null;default:0" json:"total_rooms" validate:"min=0"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty" validate:"-"`
}

// TableName specifies the table name for RoomType model
func (RoomType) TableName() string {
	return "room_types"
}
