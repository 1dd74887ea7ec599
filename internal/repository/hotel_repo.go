package repository

import (
	"context"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"gorm.io/gorm"
)

// HotelQuerySchema lists the fields hotels may be filtered and sorted by
var HotelQuerySchema = QuerySchema{
	Filters: map[string]string{
		"name":       "name",
		"district":   "district",
		"province":   "province",
		"postalcode": "postal_code",
		"region":     "region",
	},
	Sorts: map[string]string{
		"name":      "name",
		"province":  "province",
		"createdAt": "created_at",
	},
	DefaultSort: "created_at DESC",
}

type HotelRepository struct {
	db *DB
}

func NewHotelRepo(db *DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// ListHotels returns one page of hotels matching q and the total match count
func (r *HotelRepository) ListHotels(ctx context.Context, q ListQuery) ([]models.Hotel, int64, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var total int64
	filtered := q.apply(db.Model(&models.Hotel{}), HotelQuerySchema)
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, apperror.Store("count hotels", err)
	}

	var hotels []models.Hotel
	if err := q.paginate(q.apply(db, HotelQuerySchema)).Find(&hotels).Error; err != nil {
		return nil, 0, apperror.Store("list hotels", err)
	}
	return hotels, total, nil
}

// GetAllHotels retrieves every hotel in id order
func (r *HotelRepository) GetAllHotels(ctx context.Context) ([]models.Hotel, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var hotels []models.Hotel
	if err := db.Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, apperror.Store("find hotels", err)
	}
	return hotels, nil
}

// GetHotelByID retrieves a hotel by ID
func (r *HotelRepository) GetHotelByID(ctx context.Context, id uint) (*models.Hotel, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var hotel models.Hotel
	if err := db.First(&hotel, id).Error; err != nil {
		return nil, lookupErr("find hotel", err, "Hotel not found")
	}
	return &hotel, nil
}

// GetHotelsByIDs retrieves the given hotels in id order
func (r *HotelRepository) GetHotelsByIDs(ctx context.Context, ids []uint) ([]models.Hotel, error) {
	if len(ids) == 0 {
		return []models.Hotel{}, nil
	}
	db, cancel := r.db.session(ctx)
	defer cancel()

	var hotels []models.Hotel
	if err := db.Where("id IN ?", ids).Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, apperror.Store("find hotels by ids", err)
	}
	return hotels, nil
}

// CreateHotel creates a new hotel
func (r *HotelRepository) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Create(hotel).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Conflict("Hotel name %q already exists", hotel.Name)
		}
		return apperror.Store("create hotel", err)
	}
	return nil
}

// UpdateHotel saves all fields of an existing hotel
func (r *HotelRepository) UpdateHotel(ctx context.Context, hotel *models.Hotel) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Save(hotel).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Conflict("Hotel name %q already exists", hotel.Name)
		}
		return apperror.Store("update hotel", err)
	}
	return nil
}

// DeleteHotel removes a hotel together with its room types, bookings and manager links
func (r *HotelRepository) DeleteHotel(ctx context.Context, id uint) error {
	err := r.db.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", id).Delete(&models.RoomType{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", id).Delete(&models.UserHotel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Hotel{}, id).Error
	})
	if err != nil {
		return apperror.Store("delete hotel", err)
	}
	return nil
}
