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

func newServiceRouter(catalogService service.CatalogService) chi.Router {
	handler := NewServiceHandler(catalogService)

	r := chi.NewRouter()
	r.Post("/services", handler.CreateService)
	r.Get("/services", handler.ListServices)
	r.Get("/services/{id}", handler.GetService)
	r.Patch("/services/{id}", handler.UpdateService)
	r.Delete("/services/{id}", handler.DeleteService)
	return r
}

func testAPIService(t *testing.T) *domain.Service {
	t.Helper()

	svc, err := domain.NewService("Haircut", "A classic haircut with wash and styling.", 45, 35.50)
	require.NoError(t, err)
	return svc
}

func TestCreateServiceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		svc := testAPIService(t)
		router := newServiceRouter(&mockCatalogService{createResult: svc})

		body := `{
			"name": "Haircut",
			"description": "A classic haircut with wash and styling.",
			"duration_minutes": 45,
			"price": 35.50
		}`
		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var got domain.Service
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Equal(t, svc.ID, got.ID)
		assert.True(t, got.Availability)
	})

	t.Run("invalid price surfaces the rule", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{
			createErr: domainValidationErr(domain.ErrPriceFormat),
		})

		body := `{
			"name": "Haircut",
			"description": "A classic haircut with wash and styling.",
			"duration_minutes": 45,
			"price": 12345.678
		}`
		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "5 digits")
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{createErr: store.ErrServiceNameExists})

		body := `{
			"name": "Haircut",
			"description": "A classic haircut with wash and styling.",
			"duration_minutes": 45,
			"price": 35.50
		}`
		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Service name already exists")
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{})

		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(`{"name": "Haircut"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetServiceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		svc := testAPIService(t)
		router := newServiceRouter(&mockCatalogService{getResult: svc})

		req := httptest.NewRequest(http.MethodGet, "/services/"+svc.ID.String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{getErr: store.ErrServiceNotFound})

		req := httptest.NewRequest(http.MethodGet, "/services/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Service not found")
	})
}

func TestListServicesEndpoint(t *testing.T) {
	t.Parallel()

	router := newServiceRouter(&mockCatalogService{
		listResult: []*domain.Service{testAPIService(t)},
	})

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var got []*domain.Service
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Len(t, got, 1)
}

func TestUpdateServiceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("availability toggled", func(t *testing.T) {
		t.Parallel()

		svc := testAPIService(t)
		svc.Availability = false
		router := newServiceRouter(&mockCatalogService{updateResult: svc})

		body := strings.NewReader(`{"availability": false}`)
		req := httptest.NewRequest(http.MethodPatch, "/services/"+svc.ID.String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var got domain.Service
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.False(t, got.Availability)
	})

	t.Run("id in payload rejected", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{
			updateErr: domainValidationErr(domain.ErrIDImmutable),
		})

		body := strings.NewReader(`{"id": "` + uuid.New().String() + `"}`)
		req := httptest.NewRequest(http.MethodPatch, "/services/"+uuid.New().String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ID cannot be modified.")
	})
}

func TestDeleteServiceEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{})

		req := httptest.NewRequest(http.MethodDelete, "/services/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("still booked", func(t *testing.T) {
		t.Parallel()

		router := newServiceRouter(&mockCatalogService{deleteErr: store.ErrReferenced})

		req := httptest.NewRequest(http.MethodDelete, "/services/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "still reference")
	})
}
