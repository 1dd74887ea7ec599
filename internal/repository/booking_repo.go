package repository

import (
	"context"
	"errors"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrQuotaReached is returned by CreateBookingWithinQuota when the user already holds
// the maximum number of bookings
var ErrQuotaReached = errors.New("booking quota reached")

// BookingFilter narrows a booking listing. Zero fields do not filter.
type BookingFilter struct {
	UserID  uint
	HotelID uint
}

type BookingRepository struct {
	db *DB
}

func NewBookingRepo(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GetBookings lists bookings with their hotel and room type, newest first
func (r *BookingRepository) GetBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	query := db.Preload("Hotel").Preload("RoomType")
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.HotelID != 0 {
		query = query.Where("hotel_id = ?", filter.HotelID)
	}

	var bookings []models.Booking
	if err := query.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, apperror.Store("find bookings", err)
	}
	return bookings, nil
}

// GetBookingByID retrieves a booking with its hotel
func (r *BookingRepository) GetBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var booking models.Booking
	if err := db.Preload("Hotel").First(&booking, id).Error; err != nil {
		return nil, lookupErr("find booking", err, "Booking not found")
	}
	return &booking, nil
}

// FindOverlappingBookings returns the bookings of a room type whose stay overlaps the
// half-open range [start, end)
func (r *BookingRepository) FindOverlappingBookings(ctx context.Context, roomTypeID uint, start, end time.Time) ([]models.Booking, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var bookings []models.Booking
	if err := overlapping(db, roomTypeID, start, end).Find(&bookings).Error; err != nil {
		return nil, apperror.Store("find overlapping bookings", err)
	}
	return bookings, nil
}

func overlapping(db *gorm.DB, roomTypeID uint, start, end time.Time) *gorm.DB {
	return db.Where("room_type_id = ? AND checkin_date < ? AND checkout_date > ?", roomTypeID, end, start).
		Order("checkin_date ASC")
}

// CapacityCheck decides, inside the write transaction, whether a stay still fits the room type
// given the bookings that overlap it
type CapacityCheck func(roomType models.RoomType, overlapping []models.Booking) error

// checkCapacity loads the room type, locked on MySQL, and the bookings overlapping the stay,
// leaving out excludeID
func (r *BookingRepository) checkCapacity(tx *gorm.DB, booking *models.Booking, excludeID uint, fits CapacityCheck) error {
	query := tx
	if r.db.isMySQL() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var roomType models.RoomType
	if err := query.First(&roomType, booking.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("No room type with the id of %d", booking.RoomTypeID)
		}
		return err
	}

	stays := overlapping(tx, booking.RoomTypeID, booking.CheckinDate, booking.CheckoutDate)
	if excludeID != 0 {
		stays = stays.Where("id <> ?", excludeID)
	}
	var bookings []models.Booking
	if err := stays.Find(&bookings).Error; err != nil {
		return err
	}
	return fits(roomType, bookings)
}

// CountBookingsByUser counts every booking held by a user across all hotels
func (r *BookingRepository) CountBookingsByUser(ctx context.Context, userID uint) (int64, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Booking{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, apperror.Store("count bookings", err)
	}
	return count, nil
}

// CreateBookingWithinQuota counts the user's bookings, re-checks the room type's capacity
// and inserts the new booking in a single transaction. On MySQL the user and room type rows
// are locked, always in that order, so concurrent admissions for the same user or the same
// room type serialise. A quota of zero disables the count; a nil fits skips the capacity check.
func (r *BookingRepository) CreateBookingWithinQuota(ctx context.Context, booking *models.Booking, quota int, fits CapacityCheck) error {
	err := r.db.transaction(ctx, func(tx *gorm.DB) error {
		userQuery := tx.Select("id")
		if r.db.isMySQL() {
			userQuery = userQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := userQuery.First(&models.User{}, booking.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("No user with the id of %d", booking.UserID)
			}
			return err
		}

		if quota > 0 {
			var count int64
			if err := tx.Model(&models.Booking{}).Where("user_id = ?", booking.UserID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(quota) {
				return ErrQuotaReached
			}
		}

		if fits != nil {
			if err := r.checkCapacity(tx, booking, 0, fits); err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Create(booking).Error
	})
	return writeErr("create booking", err)
}

// UpdateBookingDates moves an existing booking to a new stay, re-checking capacity against
// every other booking of its room type in the same transaction
func (r *BookingRepository) UpdateBookingDates(ctx context.Context, booking *models.Booking, checkin, checkout time.Time, fits CapacityCheck) error {
	moved := *booking
	moved.CheckinDate, moved.CheckoutDate = checkin, checkout

	err := r.db.transaction(ctx, func(tx *gorm.DB) error {
		if fits != nil {
			if err := r.checkCapacity(tx, &moved, booking.ID, fits); err != nil {
				return err
			}
		}
		return tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]any{
			"checkin_date":  checkin,
			"checkout_date": checkout,
		}).Error
	})
	return writeErr("update booking", err)
}

// writeErr passes through quota and application errors raised inside a write transaction
// and marks everything else as a failed write
func writeErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrQuotaReached) {
		return err
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.StoreWrite(op, err)
}

// DeleteBooking removes a booking
func (r *BookingRepository) DeleteBooking(ctx context.Context, id uint) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Delete(&models.Booking{}, id).Error; err != nil {
		return apperror.Store("delete booking", err)
	}
	return nil
}
