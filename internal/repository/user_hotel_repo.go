package repository

import (
	"context"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"
)

type UserHotelRepository struct {
	db *DB
}

func NewUserHotelRepo(db *DB) *UserHotelRepository {
	return &UserHotelRepository{db: db}
}

// AssignUserToHotel grants a manager authority over a hotel
func (r *UserHotelRepository) AssignUserToHotel(ctx context.Context, userID, hotelID uint) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	link := &models.UserHotel{UserID: userID, HotelID: hotelID}
	// FirstOrCreate keeps repeated assignments idempotent
	if err := db.Where("user_id = ? AND hotel_id = ?", userID, hotelID).FirstOrCreate(link).Error; err != nil {
		return apperror.Store("assign hotel", err)
	}
	return nil
}

// RemoveUserFromHotel revokes a manager's authority over a hotel
func (r *UserHotelRepository) RemoveUserFromHotel(ctx context.Context, userID, hotelID uint) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Where("user_id = ? AND hotel_id = ?", userID, hotelID).Delete(&models.UserHotel{}).Error; err != nil {
		return apperror.Store("remove hotel", err)
	}
	return nil
}

// GetUserHotels retrieves all hotel IDs a user manages
func (r *UserHotelRepository) GetUserHotels(ctx context.Context, userID uint) ([]uint, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var hotelIDs []uint
	err := db.Model(&models.UserHotel{}).
		Where("user_id = ?", userID).
		Order("hotel_id ASC").
		Pluck("hotel_id", &hotelIDs).Error
	if err != nil {
		return nil, apperror.Store("find managed hotels", err)
	}
	return hotelIDs, nil
}
