package service

import (
	"strings"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"
)

// Param is a named request parameter checked by RequireParams
type Param struct {
	Name  string
	Value string
}

// RequireParams fails with InvalidInput naming every empty parameter
func RequireParams(params ...Param) error {
	var missing []string
	for _, p := range params {
		if strings.TrimSpace(p.Value) == "" {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return apperror.InvalidInput("Please provide %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date into a UTC calendar day. Timestamps are rejected
// since their zone could move the stay to another day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperror.InvalidInput("Invalid date format. Please use YYYY-MM-DD format")
	}
	return d, nil
}

// ParseStayRange parses and orders a check-in/check-out pair
func ParseStayRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := ValidateStay(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ValidateStay rejects empty or inverted stays
func ValidateStay(checkIn, checkOut time.Time) error {
	if !calendarDay(checkIn).Before(calendarDay(checkOut)) {
		return apperror.InvalidInput("Check-in date must be before check-out date")
	}
	return nil
}

// ResolveOccupancy counts, for every calendar day of [start, end), how many of the given
// bookings occupy a room on that day. Bookings are half-open: a guest checking out on day D
// does not occupy day D. Days without occupancy are absent from the map.
func ResolveOccupancy(bookings []models.Booking, start, end time.Time) map[string]int {
	start, end = calendarDay(start), calendarDay(end)
	daily := make(map[string]int)

	for _, b := range bookings {
		checkin, checkout := calendarDay(b.CheckinDate), calendarDay(b.CheckoutDate)
		if !checkin.Before(end) || !checkout.After(start) {
			continue
		}

		from := checkin
		if from.Before(start) {
			from = start
		}
		to := checkout
		if to.After(end) {
			to = end
		}
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			daily[d.Format(time.DateOnly)]++
		}
	}

	return daily
}

// PeakOccupancy returns the highest daily count, zero for an empty map
func PeakOccupancy(daily map[string]int) int {
	peak := 0
	for _, count := range daily {
		peak = max(peak, count)
	}
	return peak
}

func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
