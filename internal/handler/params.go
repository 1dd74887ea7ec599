package handler

import (
	"net/http"
	"strconv"

	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/middleware"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter, writing a 400 when it is malformed
func pathID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

// currentActor returns the authenticated caller, writing a 401 when there is none
func currentActor(c *gin.Context) (authz.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	return actor, ok
}

// bindJSON decodes the request body, writing a 400 on malformed input
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
