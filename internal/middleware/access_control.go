package middleware

import (
	"net/http"
	"strconv"

	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CheckHotelAccess verifies the caller manages the hotel named by the :hotelId path
// parameter. Admins pass unconditionally.
func CheckHotelAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		if actor.IsAdmin() {
			c.Next()
			return
		}

		hotelIDStr := c.Param("hotelId")
		if hotelIDStr == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Hotel ID is required")
			c.Abort()
			return
		}

		hotelID, err := strconv.ParseUint(hotelIDStr, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hotel ID")
			c.Abort()
			return
		}

		if !actor.Manages(uint(hotelID)) {
			utils.ErrorResponse(c, http.StatusForbidden, "Access denied. You do not have permission to manage this hotel.")
			c.Abort()
			return
		}

		c.Next()
	}
}
