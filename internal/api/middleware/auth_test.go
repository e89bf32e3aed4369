package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonworks/booking-api/internal/service/auth"
)

type mockJWTService struct {
	claims      *auth.Claims
	validateErr error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "refresh", nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func runAuthenticated(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, bool, uuid.UUID) {
	t.Helper()

	var (
		reached  bool
		seenUser uuid.UUID
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seenUser, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	middleware := NewAuthMiddleware(jwtService)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	recorder := httptest.NewRecorder()
	middleware.Authenticate(next).ServeHTTP(recorder, req)
	return recorder, reached, seenUser
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid token reaches handler with user ID", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		jwtService := &mockJWTService{claims: &auth.Claims{UserID: userID}}

		recorder, reached, seenUser := runAuthenticated(t, jwtService, "Bearer good-token")

		require.True(t, reached)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, userID, seenUser)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		recorder, reached, _ := runAuthenticated(t, &mockJWTService{}, "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Authorization header required")
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()

		recorder, reached, _ := runAuthenticated(t, &mockJWTService{}, "Basic dXNlcjpwYXNz")

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid authorization format")
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mockJWTService{validateErr: auth.ErrExpiredToken}
		recorder, reached, _ := runAuthenticated(t, jwtService, "Bearer stale-token")

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Token expired")
	})

	t.Run("refresh token rejected on protected routes", func(t *testing.T) {
		t.Parallel()

		jwtService := &mockJWTService{validateErr: auth.ErrWrongTokenType}
		recorder, reached, _ := runAuthenticated(t, jwtService, "Bearer refresh-token")

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid token")
	})
}

func TestGetUserIDWithoutAuthentication(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)
}
