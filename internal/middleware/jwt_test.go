package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(register func(*gin.Engine, *Auth)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r, NewAuth(testSecret))
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter(func(r *gin.Engine, a *Auth) {
		r.GET("/ping", a.RequireAuth(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"userId": CallerID(c)})
		})
	})

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid HS512 token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "user-1"})
		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("HS256 rejected", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512,
			jwt.MapClaims{"sub": "user-1"}).SignedString([]byte("other-secret"))
		require.NoError(t, err)
		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	r := newTestRouter(func(r *gin.Engine, a *Auth) {
		r.GET("/ping", a.RequireAdmin(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"admin": CallerIsAdmin(c)})
		})
	})

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512,
			jwt.MapClaims{"sub": "user-1", "roles": []string{"USER"}})
		w := doRequest(r, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin role passes", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512,
			jwt.MapClaims{"sub": "admin-1", "roles": []string{"USER", "ADMIN"}})
		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "true")
	})

	t.Run("roles as single string", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512,
			jwt.MapClaims{"sub": "admin-2", "roles": "ADMIN"})
		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	r := newTestRouter(func(r *gin.Engine, a *Auth) {
		r.GET("/ping", a.OptionalAuth(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"userId": CallerID(c)})
		})
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":""`)
	})

	t.Run("garbage token treated as anonymous", func(t *testing.T) {
		w := doRequest(r, "not-a-jwt")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":""`)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "user-9"})
		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-9")
	})
}
