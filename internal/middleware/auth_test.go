package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	jwtsvc "railbook/internal/pkg/jwt"
)

func TestAuth_ValidToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	validToken, _ := jwtService.GenerateToken("user-42", "customer")

	router := gin.New()
	router.Use(Auth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
	assert.Contains(t, w.Body.String(), "customer")
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	otherService := jwtsvc.New("other-secret", time.Hour)
	token, _ := otherService.GenerateToken("user-1", "customer")

	jwtService := jwtsvc.New("test-secret-123", time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("role", "customer") })
	router.Use(RequireAdmin())
	router.GET("/admin", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
