package utils

import (
	"log"
	"net/http"

	"hotel-booking-api/internal/apperror"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a 200 with the standard success envelope
func SuccessResponse(c *gin.Context, data any) {
	JSONResponse(c, http.StatusOK, data)
}

// JSONResponse sends the success envelope with an explicit status
func JSONResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// PagedResponse sends a list together with its total count and pagination links
func PagedResponse(c *gin.Context, data any, count int, pagination any) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// HandleError renders err with the status of its kind. Errors outside the taxonomy are
// logged and reported as a generic server error.
func HandleError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		ErrorResponse(c, http.StatusInternalServerError, "Server Error")
		return
	}

	if appErr.Err != nil {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}
	if appErr.Retryable() {
		c.Header("Retry-After", "1")
	}
	ErrorResponse(c, appErr.Status(), appErr.Message)
}
