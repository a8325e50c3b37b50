package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhubhq/devhub-api/pkg/helpers"
)

func testJWT() *helpers.JWTManager {
	return &helpers.JWTManager{
		Secret:   []byte("test-secret"),
		Issuer:   "devhub-api",
		Audience: "devhub-clients",
		TTL:      time.Hour,
	}
}

func authTestRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("userID"),
			"email":   c.GetString("userEmail"),
			"role":    c.GetString("userRole"),
		})
	})
	r.GET("/admin", Auth(jwt), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuth_ValidBearerToken(t *testing.T) {
	jwt := testJWT()
	r := authTestRouter(jwt)

	token, _, err := jwt.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "a@b.c")
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	r := authTestRouter(testJWT())

	for _, header := range []string{"", "Bearer", "Basic abc", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwt := testJWT()
	jwt.TTL = -time.Minute
	r := authTestRouter(testJWT())

	token, _, err := jwt.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwt := testJWT()
	r := authTestRouter(jwt)

	userToken, _, err := jwt.GenerateToken("user-1", "a@b.c", "User")
	require.NoError(t, err)
	adminToken, _, err := jwt.GenerateToken("admin-1", "root@b.c", "Admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
