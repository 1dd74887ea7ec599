package service

import (
	"testing"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(t *testing.T, checkin, checkout string) models.Booking {
	return models.Booking{CheckinDate: day(t, checkin), CheckoutDate: day(t, checkout)}
}

func TestResolveOccupancy(t *testing.T) {
	cases := []struct {
		name     string
		bookings []models.Booking
		start    string
		end      string
		want     map[string]int
	}{
		{
			name:  "no bookings",
			start: "2025-06-01", end: "2025-06-03",
			want: map[string]int{},
		},
		{
			name:     "checkout day is free",
			bookings: []models.Booking{stay(t, "2025-06-01", "2025-06-02")},
			start:    "2025-06-02", end: "2025-06-04",
			want: map[string]int{},
		},
		{
			name:     "booking starting on range end is outside",
			bookings: []models.Booking{stay(t, "2025-06-04", "2025-06-05")},
			start:    "2025-06-02", end: "2025-06-04",
			want: map[string]int{},
		},
		{
			name:     "one night inside range",
			bookings: []models.Booking{stay(t, "2025-06-01", "2025-06-02")},
			start:    "2025-06-01", end: "2025-06-03",
			want: map[string]int{"2025-06-01": 1},
		},
		{
			name: "days outside the range are not counted",
			bookings: []models.Booking{
				stay(t, "2025-05-28", "2025-06-02"),
				stay(t, "2025-05-29", "2025-05-31"),
			},
			start: "2025-05-31", end: "2025-06-03",
			want: map[string]int{"2025-05-31": 1, "2025-06-01": 1},
		},
		{
			name: "stacked bookings",
			bookings: []models.Booking{
				stay(t, "2025-06-01", "2025-06-03"),
				stay(t, "2025-06-02", "2025-06-04"),
				stay(t, "2025-06-02", "2025-06-03"),
			},
			start: "2025-06-01", end: "2025-06-05",
			want: map[string]int{"2025-06-01": 1, "2025-06-02": 3, "2025-06-03": 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveOccupancy(tc.bookings, day(t, tc.start), day(t, tc.end))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeakIsMaxNotSum(t *testing.T) {
	// two guests on different nights never need more than one room at a time
	bookings := []models.Booking{
		stay(t, "2025-06-01", "2025-06-02"),
		stay(t, "2025-06-02", "2025-06-03"),
	}
	daily := ResolveOccupancy(bookings, day(t, "2025-06-01"), day(t, "2025-06-03"))

	assert.Equal(t, 1, PeakOccupancy(daily))
	assert.Equal(t, 0, PeakOccupancy(map[string]int{}))
}

func TestResolveOccupancyNormalisesTimes(t *testing.T) {
	bkk := time.FixedZone("ICT", 7*3600)
	// 2025-06-01 23:00 UTC, already the next calendar day in Bangkok
	b := models.Booking{
		CheckinDate:  time.Date(2025, 6, 2, 6, 0, 0, 0, bkk),
		CheckoutDate: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
	got := ResolveOccupancy([]models.Booking{b}, day(t, "2025-06-01"), day(t, "2025-06-03"))
	assert.Equal(t, map[string]int{"2025-06-01": 1}, got)
}

func TestParseStayRange(t *testing.T) {
	start, end, err := ParseStayRange("2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, day(t, "2025-06-01"), start)
	assert.Equal(t, day(t, "2025-06-03"), end)

	for _, stamp := range []string{"2025-06-01T23:30:00+07:00", "2025-06-01T00:00:00Z", "2025-06-01 10:00"} {
		_, _, err = ParseStayRange(stamp, "2025-06-03")
		require.Error(t, err, stamp)
		assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
	}

	_, _, err = ParseStayRange("06/01/2025", "2025-06-03")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
	assert.Contains(t, err.Error(), "Invalid date format")

	_, _, err = ParseStayRange("2025-06-03", "2025-06-03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Check-in date must be before check-out date")

	_, _, err = ParseStayRange("2025-06-04", "2025-06-03")
	assert.Contains(t, err.Error(), "Check-in date must be before check-out date")
}

func TestRequireParams(t *testing.T) {
	assert.NoError(t, RequireParams(Param{"hotelId", "1"}, Param{"checkInDate", "2025-06-01"}))

	err := RequireParams(Param{"hotelId", ""}, Param{"checkInDate", "2025-06-01"}, Param{"checkOutDate", " "})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
	assert.Equal(t, "Please provide hotelId, checkOutDate", err.Error())
}
