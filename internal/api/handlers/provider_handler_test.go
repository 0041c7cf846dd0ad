package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
)

// MockProviderDirectoryService is a mock implementation of ProviderDirectoryService
type MockProviderDirectoryService struct {
	mock.Mock
}

func (m *MockProviderDirectoryService) ListNPIs(ctx context.Context, page, pageSize int) (*zocdoc.NPIListResponse, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zocdoc.NPIListResponse), args.Error(1)
}

func (m *MockProviderDirectoryService) GetProviders(ctx context.Context, npis []string, insurancePlanID string) (*zocdoc.ProvidersResponse, error) {
	args := m.Called(ctx, npis, insurancePlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zocdoc.ProvidersResponse), args.Error(1)
}

func (m *MockProviderDirectoryService) SearchProviderLocations(ctx context.Context, req zocdoc.LocationSearchRequest) (*zocdoc.ProviderLocationSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zocdoc.ProviderLocationSearchResponse), args.Error(1)
}

func TestSearchLocationsHandler(t *testing.T) {
	t.Run("requires a zip code", func(t *testing.T) {
		service := new(MockProviderDirectoryService)
		handler := NewProviderHandler(service)
		req := httptest.NewRequest(http.MethodGet, "/api/provider_locations?visit_reason_id=vr-1", nil)
		w := httptest.NewRecorder()

		handler.SearchLocations(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "SearchProviderLocations", mock.Anything, mock.Anything)
	})

	t.Run("requires a clinical filter", func(t *testing.T) {
		service := new(MockProviderDirectoryService)
		handler := NewProviderHandler(service)
		req := httptest.NewRequest(http.MethodGet, "/api/provider_locations?zip_code=10011", nil)
		w := httptest.NewRecorder()

		handler.SearchLocations(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("passes filters through to the vendor", func(t *testing.T) {
		service := new(MockProviderDirectoryService)
		service.On("SearchProviderLocations", mock.Anything, mock.MatchedBy(func(req zocdoc.LocationSearchRequest) bool {
			return req.ZipCode == "10011" && req.VisitReasonID == "vr-1" && req.MaxDistanceMi == 5 && req.PageSize == 25
		})).Return(&zocdoc.ProviderLocationSearchResponse{RequestID: "req-1"}, nil)

		handler := NewProviderHandler(service)
		req := httptest.NewRequest(http.MethodGet, "/api/provider_locations?zip_code=10011&visit_reason_id=vr-1&max_distance_mi=5&page_size=25", nil)
		w := httptest.NewRecorder()

		handler.SearchLocations(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})
}

func TestGetProvidersHandler(t *testing.T) {
	t.Run("splits the npis parameter", func(t *testing.T) {
		service := new(MockProviderDirectoryService)
		service.On("GetProviders", mock.Anything, []string{"111", "222"}, "plan-1").
			Return(&zocdoc.ProvidersResponse{}, nil)

		handler := NewProviderHandler(service)
		req := httptest.NewRequest(http.MethodGet, "/api/providers?npis=111,222&insurance_plan_id=plan-1", nil)
		w := httptest.NewRecorder()

		handler.GetProviders(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("requires npis", func(t *testing.T) {
		service := new(MockProviderDirectoryService)
		handler := NewProviderHandler(service)
		req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
		w := httptest.NewRecorder()

		handler.GetProviders(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListNPIsHandler(t *testing.T) {
	service := new(MockProviderDirectoryService)
	service.On("ListNPIs", mock.Anything, 2, 100).
		Return(&zocdoc.NPIListResponse{Page: 2, PageSize: 100}, nil)

	handler := NewProviderHandler(service)
	req := httptest.NewRequest(http.MethodGet, "/api/providers/npis?page=2&page_size=100", nil)
	w := httptest.NewRecorder()

	handler.ListNPIs(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp zocdoc.NPIListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
}
