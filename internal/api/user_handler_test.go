package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/service"
	"github.com/salonworks/booking-api/internal/store"
)

func newUserRouter(userService service.UserService) chi.Router {
	handler := NewUserHandler(userService)

	r := chi.NewRouter()
	r.Post("/users", handler.CreateUser)
	r.Get("/users", handler.ListUsers)
	r.Get("/users/{id}", handler.GetUser)
	r.Patch("/users/{id}", handler.UpdateUser)
	r.Delete("/users/{id}", handler.DeleteUser)
	return r
}

func testAPIUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("johndoe", "john@gmail.com", "Valid1Password!")
	require.NoError(t, err)
	return user
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		user := testAPIUser(t)
		handler := NewUserHandler(&mockUserService{createUserResult: user})

		recorder := postJSON(t, handler.CreateUser, "/users", CreateUserRequest{
			Username: "johndoe",
			Email:    "john@gmail.com",
			Password: "Valid1Password!",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "password")

		var got domain.User
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		handler := NewUserHandler(&mockUserService{})

		recorder := postJSON(t, handler.CreateUser, "/users", CreateUserRequest{
			Username: "johndoe",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Validation error")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		handler := NewUserHandler(&mockUserService{createUserErr: store.ErrEmailExists})

		recorder := postJSON(t, handler.CreateUser, "/users", CreateUserRequest{
			Username: "johndoe",
			Email:    "john@gmail.com",
			Password: "Valid1Password!",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Email already exists")
	})
}

func TestGetUserEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		user := testAPIUser(t)
		router := newUserRouter(&mockUserService{getUserResult: user})

		req := httptest.NewRequest(http.MethodGet, "/users/"+user.ID.String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		// The hash never leaves the API
		assert.NotContains(t, recorder.Body.String(), "password")

		var got domain.User
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "johndoe", got.Username)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mockUserService{getUserErr: store.ErrUserNotFound})

		req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "User not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mockUserService{})

		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestListUsersEndpoint(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{
		listUsersResult: []*domain.User{testAPIUser(t)},
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var got []*domain.User
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Len(t, got, 1)
}

func TestUpdateUserEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("partial update passes through decoded fields", func(t *testing.T) {
		t.Parallel()

		user := testAPIUser(t)
		firstName := "John"
		user.FirstName = &firstName
		userService := &mockUserService{updateUserResult: user}
		router := newUserRouter(userService)

		body := strings.NewReader(`{"first_name": "John"}`)
		req := httptest.NewRequest(http.MethodPatch, "/users/"+user.ID.String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, userService.lastUpdate)
		require.NotNil(t, userService.lastUpdate.FirstName)
		assert.Equal(t, "John", *userService.lastUpdate.FirstName)
		assert.Nil(t, userService.lastUpdate.Email, "absent fields stay nil")
	})

	t.Run("id in payload rejected", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mockUserService{
			updateUserErr: domainValidationErr(domain.ErrIDImmutable),
		})

		body := strings.NewReader(`{"id": "` + uuid.New().String() + `"}`)
		req := httptest.NewRequest(http.MethodPatch, "/users/"+uuid.New().String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ID cannot be modified.")
	})

	t.Run("email domain rejected", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mockUserService{
			updateUserErr: domainValidationErr(domain.ErrEmailDomainNotAllowed),
		})

		body := strings.NewReader(`{"email": "john@example.com"}`)
		req := httptest.NewRequest(http.MethodPatch, "/users/"+uuid.New().String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "email domain is not allowed")
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mockUserService{})

		req := httptest.NewRequest(http.MethodDelete, "/users/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("still referenced by appointments", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(&mockUserService{deleteUserErr: store.ErrReferenced})

		req := httptest.NewRequest(http.MethodDelete, "/users/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}
