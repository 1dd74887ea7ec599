package models

const (
	StatusAvailable        = "available"
	StatusFullyBooked      = "fully_booked"
	StatusUnderMaintenance = "under_maintenance"
)

// RoomTypeDetails is the display subset of a room type embedded in availability results
type RoomTypeDetails struct {
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	BedType   string  `json:"bedType"`
	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency"`
}

// AvailabilityResult is computed per request and never persisted
type AvailabilityResult struct {
	RoomTypeID      uint            `json:"roomTypeId"`
	TotalRooms      int             `json:"totalRooms"`
	BookedRooms     int             `json:"bookedRooms"`
	AvailableRooms  int             `json:"availableRooms"`
	IsActivated     bool            `json:"isActivated"`
	IsAvailable     bool            `json:"isAvailable"`
	Status          string          `json:"status"`
	RoomTypeDetails RoomTypeDetails `json:"roomTypeDetails"`
	DailyBookings   map[string]int  `json:"dailyBookings,omitempty"`
}

// HotelAvailability folds the room type results of one hotel
type HotelAvailability struct {
	HotelID            uint                 `json:"hotelId"`
	HotelName          string               `json:"hotelName"`
	HotelAddress       string               `json:"hotelAddress"`
	HasAvailableRooms  bool                 `json:"hasAvailableRooms"`
	RoomTypeResults    []AvailabilityResult `json:"-"`
	AvailableRoomTypes []AvailabilityResult `json:"availableRoomTypes"`
}
