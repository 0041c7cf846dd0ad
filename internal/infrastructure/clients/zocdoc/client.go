package zocdoc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
	"github.com/zatekoja/bookingdemo/pkg/config"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

const (
	defaultSearchPageSize    = 50
	defaultNPIPageSize       = 60000
	defaultInsurancePageSize = 100
	maxNPIsPerRequest        = 50
)

// timeouts are the fixed per-endpoint request budgets. Availability,
// search and booking calls get a longer budget than the rest.
type timeouts struct {
	auth         time.Duration
	search       time.Duration
	availability time.Duration
	booking      time.Duration
	standard     time.Duration
}

func defaultTimeouts() timeouts {
	return timeouts{
		auth:         10 * time.Second,
		search:       15 * time.Second,
		availability: 15 * time.Second,
		booking:      15 * time.Second,
		standard:     10 * time.Second,
	}
}

// Client talks to the scheduling vendor's sandbox API. It holds one
// access token per process, guarded for concurrent use; requests made
// before Authenticate succeeds fail without touching the network.
type Client struct {
	apiBaseURL string
	authURL    string
	scope      string
	audience   string
	httpClient *http.Client
	timeouts   timeouts
	metrics    *observability.Metrics

	mu      sync.RWMutex
	session entities.AuthSession
}

// NewClient creates a vendor API client from configuration
func NewClient(cfg config.VendorConfig) *Client {
	return &Client{
		apiBaseURL: strings.TrimSuffix(cfg.APIBaseURL, "/"),
		authURL:    cfg.AuthURL,
		scope:      cfg.Scope,
		audience:   cfg.Audience,
		httpClient: &http.Client{},
		timeouts:   defaultTimeouts(),
	}
}

// SetMetrics enables the per-operation vendor call duration histogram
func (c *Client) SetMetrics(m *observability.Metrics) {
	c.metrics = m
}

// Authenticate exchanges client credentials for an access token and
// stores it for subsequent requests
func (c *Client) Authenticate(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	if clientID == "" || clientSecret == "" {
		return nil, apperrors.NewValidationError("client_id and client_secret are required")
	}

	body := TokenRequest{
		GrantType:    "client_credentials",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        c.scope,
		Audience:     c.audience,
	}

	var token TokenResponse
	if err := c.doJSON(ctx, "authentication", http.MethodPost, c.authURL, body, c.timeouts.auth, false, &token); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = entities.AuthSession{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Scope:       token.Scope,
		ExpiresAt:   time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}
	c.mu.Unlock()

	log.Debug().Str("scope", token.Scope).Msg("vendor authentication succeeded")
	return &token, nil
}

// Session returns a copy of the current auth session
func (c *Client) Session() entities.AuthSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Authenticated reports whether a token is currently held
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.AccessToken != ""
}

// Logout discards the held token
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = entities.AuthSession{}
	c.mu.Unlock()
}

// SearchProviderLocations searches bookable provider locations near a
// zip code
func (c *Client) SearchProviderLocations(ctx context.Context, req LocationSearchRequest) (*ProviderLocationSearchResponse, error) {
	if req.ZipCode == "" {
		return nil, apperrors.NewValidationError("zip_code is required")
	}
	if req.SpecialtyID == "" && req.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("one of specialty_id or visit_reason_id is required")
	}

	q := url.Values{}
	q.Set("zip_code", req.ZipCode)
	if req.SpecialtyID != "" {
		q.Set("specialty_id", req.SpecialtyID)
	}
	if req.VisitReasonID != "" {
		q.Set("visit_reason_id", req.VisitReasonID)
	}
	if req.InsurancePlanID != "" {
		q.Set("insurance_plan_id", req.InsurancePlanID)
	}
	if req.VisitType != "" {
		q.Set("visit_type", req.VisitType)
	}
	if req.MaxDistanceMi > 0 {
		q.Set("max_distance_mi", strconv.FormatFloat(req.MaxDistanceMi, 'f', -1, 64))
	}
	q.Set("page", strconv.Itoa(req.Page))
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultSearchPageSize
	}
	q.Set("page_size", strconv.Itoa(pageSize))

	var out ProviderLocationSearchResponse
	if err := c.getJSON(ctx, "provider location search", "/v1/provider_locations", q, c.timeouts.search, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAvailability fetches open timeslots for a set of provider
// locations. Locations the vendor omits from the answer have no
// availability.
func (c *Client) GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error) {
	if len(req.ProviderLocationIDs) == 0 {
		return nil, apperrors.NewValidationError("provider_location_ids is required")
	}
	if req.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("visit_reason_id is required")
	}
	if req.PatientType == "" {
		return nil, apperrors.NewValidationError("patient_type is required")
	}

	q := url.Values{}
	q.Set("provider_location_ids", strings.Join(req.ProviderLocationIDs, ","))
	q.Set("visit_reason_id", req.VisitReasonID)
	q.Set("patient_type", req.PatientType)
	if req.StartDate != "" {
		q.Set("start_date_in_provider_local_time", req.StartDate)
	}
	if req.EndDate != "" {
		q.Set("end_date_in_provider_local_time", req.EndDate)
	}

	var out AvailabilityResponse
	if err := c.getJSON(ctx, "availability lookup", "/v1/provider_locations/availability", q, c.timeouts.availability, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListNPIs returns one page of the vendor's NPI directory
func (c *Client) ListNPIs(ctx context.Context, page, pageSize int) (*NPIListResponse, error) {
	if pageSize <= 0 {
		pageSize = defaultNPIPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out NPIListResponse
	if err := c.getJSON(ctx, "npi listing", "/v1/reference/npi", q, c.timeouts.standard, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProviders fetches full provider records for up to 50 NPIs
func (c *Client) GetProviders(ctx context.Context, npis []string, insurancePlanID string) (*ProvidersResponse, error) {
	if len(npis) == 0 {
		return nil, apperrors.NewValidationError("npis is required")
	}
	if len(npis) > maxNPIsPerRequest {
		return nil, apperrors.NewValidationError(fmt.Sprintf("at most %d npis per request", maxNPIsPerRequest))
	}

	q := url.Values{}
	q.Set("npis", strings.Join(npis, ","))
	if insurancePlanID != "" {
		q.Set("insurance_plan_id", insurancePlanID)
	}

	var out ProvidersResponse
	if err := c.getJSON(ctx, "provider lookup", "/v1/providers", q, c.timeouts.standard, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInsurancePlans returns one page of the insurance plan directory
func (c *Client) GetInsurancePlans(ctx context.Context, req InsurancePlansRequest) (*InsurancePlansResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultInsurancePageSize
	}
	q.Set("page_size", strconv.Itoa(pageSize))
	status := req.Status
	if status == "" {
		status = "active"
	}
	q.Set("status", status)
	if req.State != "" {
		q.Set("state", req.State)
	}
	if req.PlanType != "" {
		q.Set("plan_type", req.PlanType)
	}
	if req.ProgramType != "" {
		q.Set("program_type", req.ProgramType)
	}
	if req.CareCategory != "" {
		q.Set("care_category", req.CareCategory)
	}

	var out InsurancePlansResponse
	if err := c.getJSON(ctx, "insurance plan listing", "/v1/insurance_plans", q, c.timeouts.standard, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookAppointment submits a booking payload as-is and returns the
// vendor's appointment record
func (c *Client) BookAppointment(ctx context.Context, payload json.RawMessage) (*AppointmentResponse, error) {
	if len(payload) == 0 {
		return nil, apperrors.NewValidationError("booking payload is required")
	}
	var out AppointmentResponse
	if err := c.doJSON(ctx, "appointment booking", http.MethodPost, c.apiBaseURL+"/v1/appointments", payload, c.timeouts.booking, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAppointments returns one page of booked appointments
func (c *Client) ListAppointments(ctx context.Context, page, pageSize int) (*AppointmentsResponse, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out AppointmentsResponse
	if err := c.getJSON(ctx, "appointment listing", "/v1/appointments", q, c.timeouts.standard, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAppointment fetches one appointment including patient details
func (c *Client) GetAppointment(ctx context.Context, appointmentID string) (*AppointmentResponse, error) {
	if appointmentID == "" {
		return nil, apperrors.NewValidationError("appointment_id is required")
	}
	var out AppointmentResponse
	endpoint := "/v1/appointments/" + url.PathEscape(appointmentID)
	if err := c.getJSON(ctx, "appointment lookup", endpoint, nil, c.timeouts.standard, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAppointment cancels an appointment. The payload carries the
// appointment_id and cancellation reason and is forwarded verbatim.
func (c *Client) CancelAppointment(ctx context.Context, payload json.RawMessage) (*AppointmentResponse, error) {
	if len(payload) == 0 {
		return nil, apperrors.NewValidationError("cancellation payload is required")
	}
	var out AppointmentResponse
	if err := c.doJSON(ctx, "appointment cancellation", http.MethodPost, c.apiBaseURL+"/v1/appointments/cancel", payload, c.timeouts.standard, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RescheduleAppointment moves an appointment to a new start time. The
// payload carries the appointment_id and the new slot.
func (c *Client) RescheduleAppointment(ctx context.Context, payload json.RawMessage) (*AppointmentResponse, error) {
	if len(payload) == 0 {
		return nil, apperrors.NewValidationError("reschedule payload is required")
	}
	var out AppointmentResponse
	if err := c.doJSON(ctx, "appointment reschedule", http.MethodPost, c.apiBaseURL+"/v1/appointments/reschedule", payload, c.timeouts.standard, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimulateAppointmentWebhook asks the sandbox to deliver a mock
// appointment webhook to the given URL. The webhook key must be valid
// base64 or the sandbox rejects the call.
func (c *Client) SimulateAppointmentWebhook(ctx context.Context, req WebhookMockRequest) (*WebhookMockResponse, error) {
	if req.WebhookURL == "" {
		return nil, apperrors.NewValidationError("webhook_url is required")
	}
	if req.WebhookKey == "" {
		return nil, apperrors.NewValidationError("webhook_key is required")
	}
	if _, err := base64.StdEncoding.DecodeString(req.WebhookKey); err != nil {
		return nil, apperrors.NewValidationError("webhook_key must be base64 encoded")
	}
	if req.AppointmentUpdateType == "" {
		req.AppointmentUpdateType = "created"
	}

	var out WebhookMockResponse
	if err := c.doJSON(ctx, "webhook simulation", http.MethodPost, c.apiBaseURL+"/v1/webhook_mocks/appointment", req, c.timeouts.standard, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) bearerToken() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session.AccessToken == "" {
		return "", apperrors.NewUnauthenticatedError("not authenticated, call authenticate first")
	}
	return c.session.AccessToken, nil
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, query url.Values, timeout time.Duration, out interface{}) error {
	rawURL := c.apiBaseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	return c.doJSON(ctx, op, http.MethodGet, rawURL, nil, timeout, true, out)
}

// doJSON performs one request against the vendor. Authenticated
// requests fail before any network I/O when no token is held. There
// are no retries; each failure maps to exactly one error type.
func (c *Client) doJSON(ctx context.Context, op, method, rawURL string, body interface{}, timeout time.Duration, authed bool, out interface{}) error {
	var token string
	if authed {
		var err error
		if token, err = c.bearerToken(); err != nil {
			return err
		}
	}

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case json.RawMessage:
			reader = bytes.NewReader(b)
		default:
			data, err := json.Marshal(body)
			if err != nil {
				return apperrors.NewInternalError("failed to encode request body", err)
			}
			reader = bytes.NewReader(data)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		observability.RecordVendorCallMetric(ctx, c.metrics, op, time.Since(start))
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			log.Warn().Str("operation", op).Dur("elapsed", time.Since(start)).Msg("vendor request timed out")
			return apperrors.NewTimeoutError(op)
		}
		log.Warn().Str("operation", op).Err(err).Msg("vendor request failed before a response")
		return apperrors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		var env ErrorEnvelope
		if err := json.Unmarshal(data, &env); err != nil || env.Error == "" {
			env.Error = fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
		}
		log.Warn().
			Str("operation", op).
			Int("status", resp.StatusCode).
			Str("error", env.Error).
			Msg("vendor returned an error")
		return apperrors.NewVendorError(env.Error, env.ErrorDescription, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to decode %s response", op), err)
	}
	return nil
}
