package service

import (
	"context"
	"errors"
	"testing"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	hotels    *fakeHotels
	roomTypes *fakeRoomTypes
	bookings  *fakeBookings
	svc       *AvailabilityService
}

func newAvailabilityFixture() *availabilityFixture {
	f := &availabilityFixture{
		hotels: &fakeHotels{hotels: []models.Hotel{
			{ID: 1, Name: "Riverside", Address: "1 River Rd"},
			{ID: 2, Name: "Hillside", Address: "2 Hill Rd"},
			{ID: 3, Name: "Seaside", Address: "3 Beach Rd"},
		}},
		roomTypes: &fakeRoomTypes{roomTypes: []models.RoomType{
			{ID: 10, HotelID: 1, Name: "Deluxe", Capacity: 2, BedType: "queen", BasePrice: 2500, Currency: "THB", TotalRooms: 5, IsAvailable: true},
			{ID: 11, HotelID: 1, Name: "Suite", Capacity: 4, BedType: "king", BasePrice: 6000, Currency: "THB", TotalRooms: 1, IsAvailable: true},
			{ID: 12, HotelID: 1, Name: "Attic", Capacity: 1, BedType: "single", TotalRooms: 3, IsAvailable: false},
			{ID: 20, HotelID: 2, Name: "Standard", Capacity: 2, BedType: "twin", TotalRooms: 1, IsAvailable: true},
			{ID: 30, HotelID: 3, Name: "Bungalow", Capacity: 2, BedType: "double", TotalRooms: 2, IsAvailable: true},
		}},
		bookings: &fakeBookings{},
	}
	f.bookings.roomTypes = f.roomTypes
	f.svc = NewAvailabilityService(f.hotels, f.roomTypes, f.bookings, 2)
	return f
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("no bookings", func(t *testing.T) {
		f := newAvailabilityFixture()
		result, err := f.svc.CheckAvailability(ctx, 10, day(t, "2025-06-01"), day(t, "2025-06-03"))
		require.NoError(t, err)

		assert.Equal(t, 0, result.BookedRooms)
		assert.Equal(t, 5, result.AvailableRooms)
		assert.True(t, result.IsAvailable)
		assert.True(t, result.IsActivated)
		assert.Equal(t, models.StatusAvailable, result.Status)
		assert.Empty(t, result.DailyBookings)
		assert.Equal(t, "Deluxe", result.RoomTypeDetails.Name)
		assert.Equal(t, 2500.0, result.RoomTypeDetails.BasePrice)
	})

	t.Run("one booking", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 1, 10, day(t, "2025-06-01"), day(t, "2025-06-02"))

		result, err := f.svc.CheckAvailability(ctx, 10, day(t, "2025-06-01"), day(t, "2025-06-03"))
		require.NoError(t, err)
		assert.Equal(t, 1, result.BookedRooms)
		assert.Equal(t, 4, result.AvailableRooms)
		assert.Equal(t, map[string]int{"2025-06-01": 1}, result.DailyBookings)
	})

	t.Run("checkout day is bookable", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 1, 11, day(t, "2025-06-01"), day(t, "2025-06-02"))

		result, err := f.svc.CheckAvailability(ctx, 11, day(t, "2025-06-02"), day(t, "2025-06-04"))
		require.NoError(t, err)
		assert.Equal(t, 0, result.BookedRooms)
		assert.Equal(t, 1, result.AvailableRooms)
		assert.Equal(t, models.StatusAvailable, result.Status)
	})

	t.Run("fully booked", func(t *testing.T) {
		f := newAvailabilityFixture()
		for i := 0; i < 5; i++ {
			f.bookings.add(uint(i+1), 1, 10, day(t, "2025-06-01"), day(t, "2025-06-03"))
		}

		result, err := f.svc.CheckAvailability(ctx, 10, day(t, "2025-06-02"), day(t, "2025-06-03"))
		require.NoError(t, err)
		assert.Equal(t, 5, result.BookedRooms)
		assert.Equal(t, 0, result.AvailableRooms)
		assert.False(t, result.IsAvailable)
		assert.Equal(t, models.StatusFullyBooked, result.Status)
	})

	t.Run("overbooked never goes negative", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 1, 11, day(t, "2025-06-01"), day(t, "2025-06-03"))
		f.bookings.add(2, 1, 11, day(t, "2025-06-01"), day(t, "2025-06-03"))

		result, err := f.svc.CheckAvailability(ctx, 11, day(t, "2025-06-01"), day(t, "2025-06-02"))
		require.NoError(t, err)
		assert.Equal(t, 2, result.BookedRooms)
		assert.Equal(t, 0, result.AvailableRooms)
	})

	t.Run("deactivated room type", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 1, 12, day(t, "2025-06-01"), day(t, "2025-06-02"))

		result, err := f.svc.CheckAvailability(ctx, 12, day(t, "2025-06-01"), day(t, "2025-06-03"))
		require.NoError(t, err)
		assert.False(t, result.IsActivated)
		assert.False(t, result.IsAvailable)
		assert.Equal(t, models.StatusUnderMaintenance, result.Status)
		assert.Zero(t, result.BookedRooms)
		assert.Zero(t, f.bookings.lookups, "deactivated room types should not query bookings")
	})

	t.Run("repeated evaluation is identical", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 1, 10, day(t, "2025-06-01"), day(t, "2025-06-04"))
		f.bookings.add(2, 1, 10, day(t, "2025-06-02"), day(t, "2025-06-03"))
		f.bookings.add(3, 1, 10, day(t, "2025-06-02"), day(t, "2025-06-06"))

		first, err := f.svc.CheckAvailability(ctx, 10, day(t, "2025-06-01"), day(t, "2025-06-05"))
		require.NoError(t, err)
		second, err := f.svc.CheckAvailability(ctx, 10, day(t, "2025-06-01"), day(t, "2025-06-05"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 3, first.BookedRooms)
		assert.Equal(t, map[string]int{"2025-06-01": 1, "2025-06-02": 3, "2025-06-03": 2, "2025-06-04": 1}, first.DailyBookings)
	})

	t.Run("unknown room type", func(t *testing.T) {
		f := newAvailabilityFixture()
		_, err := f.svc.CheckAvailability(ctx, 99, day(t, "2025-06-01"), day(t, "2025-06-03"))
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("excluding a booking", func(t *testing.T) {
		f := newAvailabilityFixture()
		b := f.bookings.add(1, 1, 11, day(t, "2025-06-01"), day(t, "2025-06-03"))

		result, err := f.svc.CheckAvailabilityExcluding(ctx, 11, day(t, "2025-06-02"), day(t, "2025-06-04"), b.ID)
		require.NoError(t, err)
		assert.True(t, result.IsAvailable)
	})
}

func TestCheckHotelAvailability(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()
	f.bookings.add(1, 1, 11, day(t, "2025-06-01"), day(t, "2025-06-05"))

	availability, err := f.svc.CheckHotelAvailability(ctx, 1, day(t, "2025-06-02"), day(t, "2025-06-03"))
	require.NoError(t, err)

	assert.Equal(t, "Riverside", availability.HotelName)
	assert.Equal(t, "1 River Rd", availability.HotelAddress)
	assert.True(t, availability.HasAvailableRooms)
	require.Len(t, availability.RoomTypeResults, 3)
	// results keep room type order regardless of evaluation order
	assert.Equal(t, uint(10), availability.RoomTypeResults[0].RoomTypeID)
	assert.Equal(t, models.StatusFullyBooked, availability.RoomTypeResults[1].Status)
	assert.Equal(t, models.StatusUnderMaintenance, availability.RoomTypeResults[2].Status)

	require.Len(t, availability.AvailableRoomTypes, 1)
	assert.Equal(t, uint(10), availability.AvailableRoomTypes[0].RoomTypeID)

	_, err = f.svc.CheckHotelAvailability(ctx, 42, day(t, "2025-06-02"), day(t, "2025-06-03"))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestAvailableRoomTypes(t *testing.T) {
	ctx := context.Background()

	f := newAvailabilityFixture()
	results, err := f.svc.AvailableRoomTypes(ctx, 1, day(t, "2025-06-01"), day(t, "2025-06-02"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.IsActivated)
	}

	f.roomTypes.roomTypes = f.roomTypes.roomTypes[:0]
	_, err = f.svc.AvailableRoomTypes(ctx, 1, day(t, "2025-06-01"), day(t, "2025-06-02"))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "No room types found for this hotel", err.Error())
}

func TestSearchAvailableHotels(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps store order and drops full hotels", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 2, 20, day(t, "2025-06-01"), day(t, "2025-06-03"))

		hotels, err := f.svc.SearchAvailableHotels(ctx, day(t, "2025-06-01"), day(t, "2025-06-02"))
		require.NoError(t, err)
		require.Len(t, hotels, 2)
		assert.Equal(t, uint(1), hotels[0].HotelID)
		assert.Equal(t, uint(3), hotels[1].HotelID)
	})

	t.Run("no hotels", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.hotels.hotels = nil
		_, err := f.svc.SearchAvailableHotels(ctx, day(t, "2025-06-01"), day(t, "2025-06-02"))
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("nothing available returns empty list", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.add(1, 2, 20, day(t, "2025-06-01"), day(t, "2025-06-03"))
		f.hotels.hotels = f.hotels.hotels[1:2]

		hotels, err := f.svc.SearchAvailableHotels(ctx, day(t, "2025-06-01"), day(t, "2025-06-02"))
		require.NoError(t, err)
		assert.NotNil(t, hotels)
		assert.Empty(t, hotels)
	})

	t.Run("one failing room type fails the search", func(t *testing.T) {
		f := newAvailabilityFixture()
		storeErr := apperror.Store("find overlapping bookings", errors.New("connection reset"))
		f.bookings.findErr = storeErr
		f.bookings.failRoomType = 30

		_, err := f.svc.SearchAvailableHotels(ctx, day(t, "2025-06-01"), day(t, "2025-06-02"))
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("store timeout is retryable", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.bookings.findErr = apperror.Store("find overlapping bookings", context.DeadlineExceeded)

		_, err := f.svc.SearchAvailableHotels(ctx, day(t, "2025-06-01"), day(t, "2025-06-02"))
		require.Error(t, err)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindTimeout, appErr.Kind)
		assert.True(t, appErr.Retryable())
	})
}
