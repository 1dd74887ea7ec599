package handler

import (
	"strconv"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
}

func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
	}
}

// GetAvailableRoomTypes answers GET /availability/room-types?hotelId&checkInDate&checkOutDate
func (h *AvailabilityHandler) GetAvailableRoomTypes(c *gin.Context) {
	hotelIDStr := c.Query("hotelId")
	checkIn, checkOut, ok := stayFromQuery(c, service.Param{Name: "hotelId", Value: hotelIDStr})
	if !ok {
		return
	}
	hotelID, err := strconv.ParseUint(hotelIDStr, 10, 32)
	if err != nil {
		utils.HandleError(c, apperror.InvalidInput("Invalid hotel ID"))
		return
	}

	roomTypes, err := h.availabilityService.AvailableRoomTypes(c.Request.Context(), uint(hotelID), checkIn, checkOut)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hotelId":            uint(hotelID),
		"checkInDate":        checkIn.Format(time.DateOnly),
		"checkOutDate":       checkOut.Format(time.DateOnly),
		"availableRoomTypes": roomTypes,
	})
}

// GetAvailableHotels answers GET /availability/hotels?checkInDate&checkOutDate
func (h *AvailabilityHandler) GetAvailableHotels(c *gin.Context) {
	checkIn, checkOut, ok := stayFromQuery(c)
	if !ok {
		return
	}

	hotels, err := h.availabilityService.SearchAvailableHotels(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkInDate":     checkIn.Format(time.DateOnly),
		"checkOutDate":    checkOut.Format(time.DateOnly),
		"availableHotels": hotels,
	})
}

// GetHotelAvailability answers GET /availability/hotels/:hotelId with every room type's result
func (h *AvailabilityHandler) GetHotelAvailability(c *gin.Context) {
	hotelID, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}
	checkIn, checkOut, ok := stayFromQuery(c)
	if !ok {
		return
	}

	availability, err := h.availabilityService.CheckHotelAvailability(c.Request.Context(), hotelID, checkIn, checkOut)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hotelId":           availability.HotelID,
		"hotelName":         availability.HotelName,
		"hotelAddress":      availability.HotelAddress,
		"hasAvailableRooms": availability.HasAvailableRooms,
		"roomTypes":         availability.RoomTypeResults,
	})
}

// stayFromQuery checks the required query parameters, then parses the stay range
func stayFromQuery(c *gin.Context, extra ...service.Param) (time.Time, time.Time, bool) {
	checkInStr, checkOutStr := c.Query("checkInDate"), c.Query("checkOutDate")
	params := append(extra,
		service.Param{Name: "checkInDate", Value: checkInStr},
		service.Param{Name: "checkOutDate", Value: checkOutStr},
	)
	if err := service.RequireParams(params...); err != nil {
		utils.HandleError(c, err)
		return time.Time{}, time.Time{}, false
	}

	checkIn, checkOut, err := service.ParseStayRange(checkInStr, checkOutStr)
	if err != nil {
		utils.HandleError(c, err)
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}
