package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func setupAuthMiddleware(t *testing.T) (*gin.Engine, service.JWTService) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	jwtService := service.NewJWTService(testSecret, 15*time.Minute, 168*time.Hour)

	router := gin.New()
	router.GET("/me", RequireAuth(jwtService), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})
	router.GET("/admin", RequireAuth(jwtService), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	return router, jwtService
}

func bearerFor(t *testing.T, jwtService service.JWTService, user *models.User) string {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	return "Bearer " + token
}

func TestRequireAuth(t *testing.T) {
	router, jwtService := setupAuthMiddleware(t)

	user := &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleUser}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", bearerFor(t, jwtService, user), http.StatusOK},
		{"lowercase scheme", "bearer " + bearerFor(t, jwtService, user)[7:], http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"no token after scheme", "Bearer", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	router, _ := setupAuthMiddleware(t)

	expired := service.NewJWTService(testSecret, -time.Minute, 168*time.Hour)
	user := &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleUser}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearerFor(t, expired, user))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdmin(t *testing.T) {
	router, jwtService := setupAuthMiddleware(t)

	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"admin allowed", &models.User{ID: 3, Email: "admin@example.com", Role: models.RoleAdmin}, http.StatusOK},
		{"user forbidden", &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleUser}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", bearerFor(t, jwtService, tt.user))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
