package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking-api/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken(42, "manager")
	require.NoError(t, err)

	claims, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestAccessTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, time.Hour)
	token, err := issuer.GenerateAccessToken(1, "user")
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", 15*time.Minute, time.Hour)
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)

	issuer.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = issuer.ValidateAccessToken(token)
	assert.Error(t, err, "expired token must be rejected")
}

func TestRefreshTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, 24*time.Hour)
	a, b := issuer.GenerateRefreshToken(), issuer.GenerateRefreshToken()
	assert.NotEqual(t, a, b)
	assert.Len(t, HashRefreshToken(a), 64)
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), issuer.RefreshExpiry(), time.Minute)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, ComparePassword(hash, "hunter22"))
	assert.False(t, ComparePassword(hash, "hunter23"))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperror.NotFound("No hotel with the id of %d", 3), http.StatusNotFound, "No hotel with the id of 3"},
		{"quota", apperror.QuotaExceeded("too many"), http.StatusBadRequest, "too many"},
		{"store detail hidden", apperror.Store("get hotel", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Server Error"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"`+tc.message+`"}`, w.Body.String())
		})
	}
}

func TestHandleErrorTimeoutSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleError(c, apperror.Store("find bookings", context.DeadlineExceeded))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestHandleErrorWriteTimeoutHasNoRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/hotels/1/bookings", nil)

	HandleError(c, apperror.StoreWrite("create booking", context.DeadlineExceeded))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("Retry-After"))
}
