package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilnabti/tapeat-sub001/utils"
)

const testSecret = "test-secret"

func newAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, roles...), func(c *gin.Context) {
		c.String(http.StatusOK, fmt.Sprintf("%d", utils.CurrentUserID(c)))
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	wrong, err := utils.GenerateToken(42, "customer", "other-secret", time.Hour)
	require.NoError(t, err)
	w = get(r, wrong)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateToken(42, "customer", testSecret, time.Hour)
	require.NoError(t, err)
	w = get(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String(), "handlers read the user id from the context")
}

func TestAuthMiddlewareRoleGuard(t *testing.T) {
	r := newAuthRouter("owner")

	ownerTok, err := utils.GenerateToken(1, "owner", testSecret, time.Hour)
	require.NoError(t, err)
	driverTok, err := utils.GenerateToken(2, "driver", testSecret, time.Hour)
	require.NoError(t, err)
	adminTok, err := utils.GenerateToken(3, "admin", testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, ownerTok).Code)
	assert.Equal(t, http.StatusForbidden, get(r, driverTok).Code)
	// platform admin passes every role guard
	assert.Equal(t, http.StatusOK, get(r, adminTok).Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	r := newAuthRouter()

	expired, err := utils.GenerateToken(42, "customer", testSecret, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, expired).Code)
}
