package zocdoc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
	"github.com/zatekoja/bookingdemo/pkg/config"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

func newTestClient(apiURL, authURL string) *Client {
	return NewClient(config.VendorConfig{
		APIBaseURL: apiURL,
		AuthURL:    authURL,
		Scope:      "external.appointment.read",
		Audience:   apiURL + "/",
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("exchanges credentials and stores the session", func(t *testing.T) {
		var gotBody TokenRequest
		authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(TokenResponse{
				AccessToken: "tok-123",
				TokenType:   "Bearer",
				ExpiresIn:   3600,
				Scope:       "external.appointment.read",
			})
		}))
		defer authServer.Close()

		client := newTestClient("http://api.invalid", authServer.URL)
		token, err := client.Authenticate(context.Background(), "id", "secret")

		assert.NoError(t, err)
		assert.Equal(t, "tok-123", token.AccessToken)
		assert.Equal(t, "client_credentials", gotBody.GrantType)
		assert.Equal(t, "external.appointment.read", gotBody.Scope)
		assert.True(t, client.Authenticated())
		assert.True(t, client.Session().Valid())
	})

	t.Run("rejects missing credentials before any request", func(t *testing.T) {
		client := newTestClient("http://api.invalid", "http://auth.invalid")
		_, err := client.Authenticate(context.Background(), "", "secret")

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.Equal(t, 400, appErr.Status)
		assert.False(t, client.Authenticated())
	})

	t.Run("surfaces identity provider rejections as vendor errors", func(t *testing.T) {
		authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorEnvelope{
				Error:            "access_denied",
				ErrorDescription: "Unauthorized",
			})
		}))
		defer authServer.Close()

		client := newTestClient("http://api.invalid", authServer.URL)
		_, err := client.Authenticate(context.Background(), "id", "bad-secret")

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeVendor, appErr.Type)
		assert.Equal(t, "access_denied", appErr.Message)
		assert.Equal(t, 401, appErr.Status)
		assert.True(t, apperrors.IsTokenExpiry(appErr))
	})
}

func TestRequestsRequireAuthentication(t *testing.T) {
	called := false
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer apiServer.Close()

	client := newTestClient(apiServer.URL, "http://auth.invalid")
	_, err := client.SearchProviderLocations(context.Background(), LocationSearchRequest{
		ZipCode:       "10011",
		VisitReasonID: "vr-1",
	})

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrorTypeUnauthenticated, appErr.Type)
	assert.False(t, called, "no request should reach the vendor without a token")
}

func TestSearchProviderLocations(t *testing.T) {
	t.Run("sends filters and defaults the page size", func(t *testing.T) {
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/provider_locations", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			q := r.URL.Query()
			assert.Equal(t, "10011", q.Get("zip_code"))
			assert.Equal(t, "vr-1", q.Get("visit_reason_id"))
			assert.Equal(t, "50", q.Get("page_size"))
			json.NewEncoder(w).Encode(ProviderLocationSearchResponse{RequestID: "req-1"})
		}))
		defer apiServer.Close()

		client := newTestClient(apiServer.URL, "http://auth.invalid")
		client.session.AccessToken = "tok"

		resp, err := client.SearchProviderLocations(context.Background(), LocationSearchRequest{
			ZipCode:       "10011",
			VisitReasonID: "vr-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "req-1", resp.RequestID)
	})

	t.Run("requires a clinical filter", func(t *testing.T) {
		client := newTestClient("http://api.invalid", "http://auth.invalid")
		client.session.AccessToken = "tok"

		_, err := client.SearchProviderLocations(context.Background(), LocationSearchRequest{ZipCode: "10011"})

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})
}

func TestGetAvailability(t *testing.T) {
	t.Run("joins location ids into one parameter", func(t *testing.T) {
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/provider_locations/availability", r.URL.Path)
			assert.Equal(t, "pl-1,pl-2", r.URL.Query().Get("provider_location_ids"))
			assert.Equal(t, "new", r.URL.Query().Get("patient_type"))
			json.NewEncoder(w).Encode(AvailabilityResponse{
				Data: []Availability{{ProviderLocationID: "pl-1", Timeslots: []Timeslot{{StartTime: "2026-09-01T09:00:00"}}}},
			})
		}))
		defer apiServer.Close()

		client := newTestClient(apiServer.URL, "http://auth.invalid")
		client.session.AccessToken = "tok"

		resp, err := client.GetAvailability(context.Background(), AvailabilityRequest{
			ProviderLocationIDs: []string{"pl-1", "pl-2"},
			VisitReasonID:       "vr-1",
			PatientType:         "new",
		})

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 1)
	})

	t.Run("rejects an empty location set", func(t *testing.T) {
		client := newTestClient("http://api.invalid", "http://auth.invalid")
		client.session.AccessToken = "tok"

		_, err := client.GetAvailability(context.Background(), AvailabilityRequest{
			VisitReasonID: "vr-1",
			PatientType:   "new",
		})

		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.AsAppError(err).Type)
	})
}

func TestGetProviders(t *testing.T) {
	client := newTestClient("http://api.invalid", "http://auth.invalid")
	client.session.AccessToken = "tok"

	npis := make([]string, 51)
	for i := range npis {
		npis[i] = "1234567890"
	}
	_, err := client.GetProviders(context.Background(), npis, "")

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Message, "50")
}

func TestErrorMapping(t *testing.T) {
	t.Run("vendor errors keep code, description and status", func(t *testing.T) {
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(ErrorEnvelope{
				Error:            "slot_unavailable",
				ErrorDescription: "The requested timeslot is no longer available",
			})
		}))
		defer apiServer.Close()

		client := newTestClient(apiServer.URL, "http://auth.invalid")
		client.session.AccessToken = "tok"

		_, err := client.BookAppointment(context.Background(), json.RawMessage(`{"start_time":"x"}`))

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeVendor, appErr.Type)
		assert.Equal(t, "slot_unavailable", appErr.Message)
		assert.Equal(t, "The requested timeslot is no longer available", appErr.Description)
		assert.Equal(t, 422, appErr.Status)
	})

	t.Run("non-json error bodies get a synthesized code", func(t *testing.T) {
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream unavailable"))
		}))
		defer apiServer.Close()

		client := newTestClient(apiServer.URL, "http://auth.invalid")
		client.session.AccessToken = "tok"

		_, err := client.ListNPIs(context.Background(), 0, 0)

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeVendor, appErr.Type)
		assert.Equal(t, 502, appErr.Status)
		assert.Contains(t, appErr.Message, "status 502")
	})

	t.Run("a slow vendor maps to a timeout error", func(t *testing.T) {
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer apiServer.Close()

		client := newTestClient(apiServer.URL, "http://auth.invalid")
		client.session.AccessToken = "tok"
		client.timeouts.standard = 20 * time.Millisecond

		_, err := client.ListNPIs(context.Background(), 0, 0)

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeTimeout, appErr.Type)
		assert.Equal(t, 408, appErr.Status)
	})

	t.Run("an unreachable vendor maps to a network error", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1", "http://auth.invalid")
		client.session.AccessToken = "tok"

		_, err := client.ListNPIs(context.Background(), 0, 0)

		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.ErrorTypeNetwork, appErr.Type)
		assert.Equal(t, 502, appErr.Status)
	})
}

func TestSimulateAppointmentWebhook(t *testing.T) {
	t.Run("rejects a key that is not base64", func(t *testing.T) {
		client := newTestClient("http://api.invalid", "http://auth.invalid")
		client.session.AccessToken = "tok"

		_, err := client.SimulateAppointmentWebhook(context.Background(), WebhookMockRequest{
			WebhookURL: "https://example.com/hook",
			WebhookKey: "not-base64!!!",
		})

		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.AsAppError(err).Type)
	})

	t.Run("defaults the update type", func(t *testing.T) {
		var got WebhookMockRequest
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/webhook_mocks/appointment", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(WebhookMockResponse{EventType: "appointment.updated"})
		}))
		defer apiServer.Close()

		client := newTestClient(apiServer.URL, "http://auth.invalid")
		client.session.AccessToken = "tok"

		resp, err := client.SimulateAppointmentWebhook(context.Background(), WebhookMockRequest{
			WebhookURL: "https://example.com/hook",
			WebhookKey: "c2VjcmV0",
		})

		assert.NoError(t, err)
		assert.Equal(t, "created", got.AppointmentUpdateType)
		assert.Equal(t, "appointment.updated", resp.EventType)
	})
}

func TestVendorCallDurationRecorded(t *testing.T) {
	previous := otel.GetMeterProvider()
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	defer otel.SetMeterProvider(previous)

	metrics, err := observability.InitMetrics()
	assert.NoError(t, err)

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(NPIListResponse{})
	}))
	defer apiServer.Close()

	client := newTestClient(apiServer.URL, "http://auth.invalid")
	client.session.AccessToken = "tok"
	client.SetMetrics(metrics)

	_, err = client.ListNPIs(context.Background(), 0, 0)
	assert.NoError(t, err)

	var rm metricdata.ResourceMetrics
	assert.NoError(t, reader.Collect(context.Background(), &rm))

	found := false
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == "vendor.call.duration" {
				found = true
			}
		}
	}
	assert.True(t, found, "vendor call should record a duration sample")
}
