package handler

import (
	"net/http"

	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// AddBookingRequest is the body of POST /hotels/:hotelId/bookings. User defaults to the caller.
type AddBookingRequest struct {
	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`
	User         uint   `json:"user"`
	RoomType     uint   `json:"roomType"`
}

type UpdateBookingRequest struct {
	CheckinDate  string `json:"checkinDate"`
	CheckoutDate string `json:"checkoutDate"`
}

// GetBookings lists the caller's bookings; admins see all, narrowed by :hotelId when present
func (h *BookingHandler) GetBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var hotelID uint
	if c.Param("hotelId") != "" {
		if hotelID, ok = pathID(c, "hotelId", "hotel"); !ok {
			return
		}
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), actor, hotelID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "data": bookings})
}

// GetHotelBookings lists every booking of :hotelId for its managers
func (h *BookingHandler) GetHotelBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	hotelID, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListHotelBookings(c.Request.Context(), actor, hotelID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "data": bookings})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, booking)
}

// AddBooking admits a booking of one room at :hotelId
func (h *BookingHandler) AddBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	hotelID, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}
	var req AddBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := service.RequireParams(
		service.Param{Name: "checkinDate", Value: req.CheckinDate},
		service.Param{Name: "checkoutDate", Value: req.CheckoutDate},
	); err != nil {
		utils.HandleError(c, err)
		return
	}
	if req.RoomType == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Please provide roomType")
		return
	}
	checkin, err := service.ParseDate(req.CheckinDate)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	checkout, err := service.ParseDate(req.CheckoutDate)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if req.User == 0 {
		req.User = actor.ID
	}

	booking, err := h.bookingService.AdmitBooking(c.Request.Context(), actor, service.AdmissionRequest{
		TargetUserID: req.User,
		HotelID:      hotelID,
		RoomTypeID:   req.RoomType,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, booking)
}

// UpdateBooking moves a booking to new dates
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := service.RequireParams(
		service.Param{Name: "checkinDate", Value: req.CheckinDate},
		service.Param{Name: "checkoutDate", Value: req.CheckoutDate},
	); err != nil {
		utils.HandleError(c, err)
		return
	}
	checkin, checkout, err := service.ParseStayRange(req.CheckinDate, req.CheckoutDate)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), actor, id, checkin, checkout)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, booking)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), actor, id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{})
}
