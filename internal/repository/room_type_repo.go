package repository

import (
	"context"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"gorm.io/gorm"
)

type RoomTypeRepository struct {
	db *DB
}

func NewRoomTypeRepo(db *DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

// GetAllRoomTypes retrieves every room type
func (r *RoomTypeRepository) GetAllRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var roomTypes []models.RoomType
	if err := db.Order("hotel_id ASC, id ASC").Find(&roomTypes).Error; err != nil {
		return nil, apperror.Store("find room types", err)
	}
	return roomTypes, nil
}

// GetRoomTypeByID retrieves a room type by ID
func (r *RoomTypeRepository) GetRoomTypeByID(ctx context.Context, id uint) (*models.RoomType, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var roomType models.RoomType
	if err := db.First(&roomType, id).Error; err != nil {
		return nil, lookupErr("find room type", err, "Room type not found")
	}
	return &roomType, nil
}

// GetRoomTypesByHotelID retrieves all room types belonging to a hotel
func (r *RoomTypeRepository) GetRoomTypesByHotelID(ctx context.Context, hotelID uint) ([]models.RoomType, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var roomTypes []models.RoomType
	if err := db.Where("hotel_id = ?", hotelID).Order("id ASC").Find(&roomTypes).Error; err != nil {
		return nil, apperror.Store("find room types by hotel", err)
	}
	return roomTypes, nil
}

// CreateRoomType creates a new room type
func (r *RoomTypeRepository) CreateRoomType(ctx context.Context, roomType *models.RoomType) error {
	err := r.db.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("Hotel").Create(roomType).Error; err != nil {
			return err
		}
		// a false activation flag is a zero value, so the column default would win
		if !roomType.IsAvailable {
			return tx.Model(roomType).Update("is_available", false).Error
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return apperror.Conflict("Room type name must be unique within the same hotel")
		}
		return apperror.Store("create room type", err)
	}
	return nil
}

// UpdateRoomType saves all fields of an existing room type
func (r *RoomTypeRepository) UpdateRoomType(ctx context.Context, roomType *models.RoomType) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Omit("Hotel").Save(roomType).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Conflict("Room type name must be unique within the same hotel")
		}
		return apperror.Store("update room type", err)
	}
	return nil
}

// DeleteRoomType removes a room type and every booking made against it
func (r *RoomTypeRepository) DeleteRoomType(ctx context.Context, id uint) error {
	err := r.db.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("room_type_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RoomType{}, id).Error
	})
	if err != nil {
		return apperror.Store("delete room type", err)
	}
	return nil
}
