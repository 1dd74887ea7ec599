package models

import "time"

// Hotel is a container of room types and bookings. It carries no availability state;
// availability is always derived from its room types.
type Hotel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:50;uniqueIndex;not null" json:"name" validate:"required,max=50"`
	Address    string    `gorm:"type:text;not null" json:"address" validate:"required"`
	District   string    `gorm:"size:100" json:"district,omitempty"`
	Province   string    `gorm:"size:100" json:"province,omitempty"`
	PostalCode string    `gorm:"size:5" json:"postalcode,omitempty" validate:"omitempty,max=5,numeric"`
	Tel        string    `gorm:"size:20" json:"tel,omitempty"`
	Region     string    `gorm:"size:50" json:"region,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Hotel model
func (Hotel) TableName() string {
	return "hotels"
}
