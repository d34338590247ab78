package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pos/internal/config"
	"pos/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runWithAuth(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg := config.Config{JWTSecret: testSecret}

	var captured echo.Context
	h := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	assert.NoError(t, err)

	return rec, captured
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runWithAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := runWithAuth(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	now := time.Now()
	token := signToken(t, "other_secret", jwt.MapClaims{
		"sub":  "1",
		"name": "figo",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	now := time.Now()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "1",
		"name": "figo",
		"iat":  now.Add(-2 * time.Hour).Unix(),
		"exp":  now.Add(-time.Hour).Unix(),
	})

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Valid_SetsCashierContext(t *testing.T) {
	now := time.Now()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "7",
		"name": "figo",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})

	rec, captured := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(7), captured.Get(middleware.CtxCashierIDKey))
	assert.Equal(t, "figo", captured.Get(middleware.CtxCashierNameKey))
}
