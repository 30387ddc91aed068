package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID")+"|"+c.GetString("userRole"))
	})
	return r
}

func call(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	InitAuth(testSecret, nil)
	r := newRouter(RequireAuth())

	w := call(r, signToken(t, testSecret, "u-1", model.RoleCustomer))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1|customer", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, signToken(t, []byte("other"), "u-1", model.RoleCustomer)).Code)
	assert.Equal(t, http.StatusForbidden, call(r, signToken(t, testSecret, "u-1", "")).Code)
}

func TestRequireRole(t *testing.T) {
	InitAuth(testSecret, nil)
	r := newRouter(RequireRole(model.RoleAdmin, model.RoleWarehouse))

	assert.Equal(t, http.StatusOK, call(r, signToken(t, testSecret, "u-2", model.RoleWarehouse)).Code)
	assert.Equal(t, http.StatusForbidden, call(r, signToken(t, testSecret, "u-3", model.RoleCustomer)).Code)
}

func TestRequirePermission(t *testing.T) {
	var lookups atomic.Int32
	InitAuth(testSecret, func(_ context.Context, role string) ([]string, error) {
		lookups.Add(1)
		if role == model.RoleWarehouse {
			return []string{model.PermReturnsRead, model.PermReturnsInspect}, nil
		}
		return nil, nil
	})

	inspect := newRouter(RequirePermission(model.PermReturnsInspect))
	refund := newRouter(RequirePermission(model.PermReturnsRefund))
	warehouse := signToken(t, testSecret, "u-4", model.RoleWarehouse)

	assert.Equal(t, http.StatusOK, call(inspect, warehouse).Code)
	assert.Equal(t, http.StatusForbidden, call(refund, warehouse).Code)
	assert.EqualValues(t, 1, lookups.Load(), "permissions are cached per role")

	assert.Equal(t, http.StatusOK, call(refund, signToken(t, testSecret, "u-5", model.RoleAdmin)).Code)

	ClearPermissionCache(model.RoleWarehouse)
	assert.Equal(t, http.StatusOK, call(inspect, warehouse).Code)
	assert.EqualValues(t, 2, lookups.Load())
}

func TestRequirePermission_LookupFailure(t *testing.T) {
	InitAuth(testSecret, func(context.Context, string) ([]string, error) {
		return nil, errors.New("db down")
	})
	r := newRouter(RequirePermission(model.PermReturnsRead))

	assert.Equal(t, http.StatusInternalServerError, call(r, signToken(t, testSecret, "u-6", model.RoleWarehouse)).Code)
}
