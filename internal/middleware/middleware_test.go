package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/config"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActors struct {
	LoadActorFn func(ctx context.Context, userID uint) (authz.Actor, error)
}

func (f fakeActors) LoadActor(ctx context.Context, userID uint) (authz.Actor, error) {
	return f.LoadActorFn(ctx, userID)
}

func newRouter(tokens *utils.TokenIssuer, actors ActorLoader, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens, actors)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/hotels/:hotelId", handlers...)
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func actorsByID(actors map[uint]authz.Actor) fakeActors {
	return fakeActors{LoadActorFn: func(_ context.Context, userID uint) (authz.Actor, error) {
		if a, ok := actors[userID]; ok {
			return a, nil
		}
		return authz.Actor{}, apperror.Unauthorized("Not authorized to access this route")
	}}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Minute, time.Hour)
	actors := actorsByID(map[uint]authz.Actor{
		1: {ID: 1, Role: models.RoleAdmin},
	})
	r := newRouter(tokens, actors)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/hotels/1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/hotels/1", "garbage").Code)

	token, err := tokens.GenerateAccessToken(1, models.RoleUser)
	require.NoError(t, err)
	w := do(r, "/hotels/1", token)
	require.Equal(t, http.StatusOK, w.Code)
	// the stored role wins over the role in the token
	assert.JSONEq(t, `{"id":1,"role":"admin"}`, w.Body.String())

	deleted, err := tokens.GenerateAccessToken(2, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/hotels/1", deleted).Code)

	req := httptest.NewRequest(http.MethodGet, "/hotels/1", nil)
	req.Header.Set("Authorization", "Token "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAndHotelAccess(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Minute, time.Hour)
	actors := actorsByID(map[uint]authz.Actor{
		1: {ID: 1, Role: models.RoleAdmin},
		2: {ID: 2, Role: models.RoleUser},
		3: {ID: 3, Role: models.RoleManager, ManagedHotels: []uint{7}},
	})
	r := newRouter(tokens, actors, RequireRole(models.RoleManager, models.RoleAdmin), CheckHotelAccess())

	token := func(id uint) string {
		s, err := tokens.GenerateAccessToken(id, "")
		require.NoError(t, err)
		return s
	}

	assert.Equal(t, http.StatusOK, do(r, "/hotels/8", token(1)).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/hotels/7", token(2)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/hotels/7", token(3)).Code)

	w := do(r, "/hotels/8", token(3))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You do not have permission to manage this hotel")

	assert.Equal(t, http.StatusBadRequest, do(r, "/hotels/abc", token(3)).Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
