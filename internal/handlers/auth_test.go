package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// =============================================================================
// Mock AuthService
// =============================================================================

type mockAuthService struct {
	registerFunc     func(ctx context.Context, input service.RegisterInput) (*models.User, error)
	loginFunc        func(ctx context.Context, email, password string) (*service.LoginResponse, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (*service.LoginResponse, error)
	logoutFunc       func(ctx context.Context, token string) error
}

func (m *mockAuthService) Register(ctx context.Context, input service.RegisterInput) (*models.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*service.LoginResponse, error) {
	if m.refreshTokenFunc != nil {
		return m.refreshTokenFunc(ctx, refreshToken)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, token)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupAuthRouter(mock *mockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewAuthHandler(mock)
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/refresh", handler.Refresh)
	router.POST("/auth/logout", handler.Logout)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// Register Tests
// =============================================================================

func TestRegisterHandler(t *testing.T) {
	mock := &mockAuthService{
		registerFunc: func(ctx context.Context, input service.RegisterInput) (*models.User, error) {
			return &models.User{ID: 1, Name: input.Name, Email: input.Email, Role: models.RoleUser}, nil
		},
	}
	router := setupAuthRouter(mock)

	w := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if user.ID != 1 || user.Email != "alice@example.com" {
		t.Errorf("User = %+v, want ID 1 and email alice@example.com", user)
	}

	// Password hash must never appear in the response.
	if bytes.Contains(w.Body.Bytes(), []byte("password_hash")) {
		t.Error("Response must not expose the password hash")
	}
}

func TestRegisterHandler_InvalidPayload(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"email": "a@example.com", "password": "password123"}},
		{"bad email", gin.H{"name": "Alice", "email": "not-an-email", "password": "password123"}},
		{"short password", gin.H{"name": "Alice", "email": "a@example.com", "password": "123"}},
		{"empty body", gin.H{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/auth/register", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestRegisterHandler_EmailTaken(t *testing.T) {
	mock := &mockAuthService{
		registerFunc: func(ctx context.Context, input service.RegisterInput) (*models.User, error) {
			return nil, service.ErrEmailTaken
		},
	}
	router := setupAuthRouter(mock)

	w := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)

	if w.Code != http.StatusConflict {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusConflict)
	}
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLoginHandler(t *testing.T) {
	mock := &mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (*service.LoginResponse, error) {
			return &service.LoginResponse{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				ExpiresIn:    900,
				User:         &models.User{ID: 1, Email: email},
			}, nil
		},
	}
	router := setupAuthRouter(mock)

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp service.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.AccessToken != "access-token" || resp.RefreshToken != "refresh-token" {
		t.Errorf("Response tokens = %q/%q, want access-token/refresh-token", resp.AccessToken, resp.RefreshToken)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{
		loginFunc: func(ctx context.Context, email, password string) (*service.LoginResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := setupAuthRouter(mock)

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	}, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{"email": "alice@example.com"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// =============================================================================
// Refresh Tests
// =============================================================================

func TestRefreshHandler(t *testing.T) {
	mock := &mockAuthService{
		refreshTokenFunc: func(ctx context.Context, refreshToken string) (*service.LoginResponse, error) {
			if refreshToken != "valid-refresh" {
				return nil, service.ErrInvalidCredentials
			}
			return &service.LoginResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
		},
	}
	router := setupAuthRouter(mock)

	w := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{"refresh_token": "valid-refresh"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{"refresh_token": "expired"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRefreshHandler_MissingToken(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w := doJSON(t, router, http.MethodPost, "/auth/refresh", gin.H{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// =============================================================================
// Logout Tests
// =============================================================================

func TestLogoutHandler(t *testing.T) {
	var revoked string
	mock := &mockAuthService{
		logoutFunc: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	router := setupAuthRouter(mock)

	w := doJSON(t, router, http.MethodPost, "/auth/logout", nil, map[string]string{
		"Authorization": "Bearer some-access-token",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if revoked != "some-access-token" {
		t.Errorf("Logout received token %q, want %q", revoked, "some-access-token")
	}
}

func TestLogoutHandler_MissingHeader(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w := doJSON(t, router, http.MethodPost, "/auth/logout", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
