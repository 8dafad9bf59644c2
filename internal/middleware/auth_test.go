package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botfolio/internal/domain"
)

func callProtected(t *testing.T, mw ...echo.MiddlewareFunc) func(req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateJWT(userID, domain.RoleUser)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuthMiddleware(func(c echo.Context) error {
		gotID, err := GetUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)

		role, err := GetUserRole(c)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, role)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareCookieToken(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	call := callProtected(t, AuthMiddleware)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rec := call(req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	call := callProtected(t, AuthMiddleware)

	// No credentials at all
	rec := call(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed header
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, call(req).Code)

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, call(req).Code)
}

func TestAdminMiddleware(t *testing.T) {
	call := callProtected(t, AuthMiddleware, AdminMiddleware)

	adminToken, err := GenerateJWT(uuid.New(), domain.RoleAdmin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, call(req).Code)

	userToken, err := GenerateJWT(uuid.New(), domain.RoleUser)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, call(req).Code)
}
