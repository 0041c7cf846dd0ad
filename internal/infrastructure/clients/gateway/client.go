package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

// Client is the caller-side view of the proxy gateway. It implements
// providers.BookingDirectory over the gateway's /api routes and keeps
// its own copy of the auth session; the gateway holds the vendor token.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	session entities.AuthSession

	// onSessionExpired fires when a held session is rejected, after the
	// local copy has been cleared. A rejected login never fires it, so a
	// handler that re-authenticates cannot loop on bad credentials.
	onSessionExpired func()
}

// Option configures a Client
type Option func(*Client)

// WithSessionExpiredHandler registers a callback invoked when a request
// fails in a way that indicates the session is no longer valid
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) {
		c.onSessionExpired = fn
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a gateway client
func NewClient(gatewayURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(gatewayURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ providers.BookingDirectory = (*Client)(nil)

// Session returns a copy of the locally held session
func (c *Client) Session() entities.AuthSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Authenticate asks the gateway to establish a vendor session
func (c *Client) Authenticate(ctx context.Context, clientID, clientSecret string) (*entities.AuthSession, error) {
	if clientID == "" || clientSecret == "" {
		return nil, apperrors.NewValidationError("client_id and client_secret are required")
	}

	body := map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
	}
	var token zocdoc.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth", nil, body, &token); err != nil {
		return nil, err
	}

	session := entities.AuthSession{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Scope:       token.Scope,
		ExpiresAt:   time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return &session, nil
}

// SearchProviderLocations returns one page of matching locations
func (c *Client) SearchProviderLocations(ctx context.Context, query providers.LocationSearchQuery) (*entities.ProviderLocationPage, error) {
	if query.ZipCode == "" {
		return nil, apperrors.NewValidationError("zip_code is required")
	}
	if query.SpecialtyID == "" && query.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("one of specialty_id or visit_reason_id is required")
	}

	q := url.Values{}
	q.Set("zip_code", query.ZipCode)
	if query.SpecialtyID != "" {
		q.Set("specialty_id", query.SpecialtyID)
	}
	if query.VisitReasonID != "" {
		q.Set("visit_reason_id", query.VisitReasonID)
	}
	if query.InsurancePlanID != "" {
		q.Set("insurance_plan_id", query.InsurancePlanID)
	}
	if query.VisitType != "" {
		q.Set("visit_type", query.VisitType)
	}
	if query.MaxDistanceMi > 0 {
		q.Set("max_distance_mi", strconv.FormatFloat(query.MaxDistanceMi, 'f', -1, 64))
	}
	q.Set("page", strconv.Itoa(query.Page))
	if query.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(query.PageSize))
	}

	var resp zocdoc.ProviderLocationSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/provider_locations", q, nil, &resp); err != nil {
		return nil, err
	}

	page := &entities.ProviderLocationPage{
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		TotalCount: resp.TotalCount,
		Locations:  make([]entities.ProviderLocation, 0, len(resp.Data.ProviderLocations)),
	}
	if resp.NextURL != nil {
		page.NextURL = *resp.NextURL
	}
	for _, pl := range resp.Data.ProviderLocations {
		page.Locations = append(page.Locations, mapProviderLocation(pl))
	}
	return page, nil
}

// GetAvailability returns slots for the locations the vendor answered
// for; absent locations mean no availability
func (c *Client) GetAvailability(ctx context.Context, query providers.AvailabilityQuery) ([]entities.Availability, error) {
	if len(query.ProviderLocationIDs) == 0 {
		return nil, apperrors.NewValidationError("provider_location_ids is required")
	}
	if query.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("visit_reason_id is required")
	}
	if query.PatientType == "" {
		return nil, apperrors.NewValidationError("patient_type is required")
	}

	q := url.Values{}
	q.Set("provider_location_ids", strings.Join(query.ProviderLocationIDs, ","))
	q.Set("visit_reason_id", query.VisitReasonID)
	q.Set("patient_type", string(query.PatientType))
	if query.StartDate != "" {
		q.Set("start_date_in_provider_local_time", query.StartDate)
	}
	if query.EndDate != "" {
		q.Set("end_date_in_provider_local_time", query.EndDate)
	}

	var resp zocdoc.AvailabilityResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/availability", q, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]entities.Availability, 0, len(resp.Data))
	for _, av := range resp.Data {
		out = append(out, mapAvailability(av))
	}
	return out, nil
}

// ListNPIs pages through the vendor's provider directory
func (c *Client) ListNPIs(ctx context.Context, page, pageSize int) (*entities.NPIPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp zocdoc.NPIListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/providers/npis", q, nil, &resp); err != nil {
		return nil, err
	}

	out := &entities.NPIPage{
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		TotalCount: resp.TotalCount,
		NPIs:       resp.Data.NPIs,
	}
	if resp.NextURL != nil {
		out.NextURL = *resp.NextURL
	}
	return out, nil
}

// GetProviders fetches full records for up to 50 NPIs
func (c *Client) GetProviders(ctx context.Context, npis []string, insurancePlanID string) ([]entities.ProviderGroup, error) {
	if len(npis) == 0 {
		return nil, apperrors.NewValidationError("npis is required")
	}

	q := url.Values{}
	q.Set("npis", strings.Join(npis, ","))
	if insurancePlanID != "" {
		q.Set("insurance_plan_id", insurancePlanID)
	}

	var resp zocdoc.ProvidersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/providers", q, nil, &resp); err != nil {
		return nil, err
	}

	groups := make([]entities.ProviderGroup, 0, len(resp.Data))
	for _, g := range resp.Data {
		group := entities.ProviderGroup{NPI: g.NPI}
		for _, p := range g.Providers {
			group.Providers = append(group.Providers, mapProviderSummary(p.BaseProvider))
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// GetInsurancePlans returns one page of insurance plans
func (c *Client) GetInsurancePlans(ctx context.Context, query providers.InsurancePlanQuery) (*entities.InsurancePlanPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(query.Page))
	if query.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if query.Status != "" {
		q.Set("status", query.Status)
	}
	if query.State != "" {
		q.Set("state", query.State)
	}
	if query.PlanType != "" {
		q.Set("plan_type", query.PlanType)
	}
	if query.ProgramType != "" {
		q.Set("program_type", query.ProgramType)
	}
	if query.CareCategory != "" {
		q.Set("care_category", query.CareCategory)
	}

	var resp zocdoc.InsurancePlansResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/insurance_plans", q, nil, &resp); err != nil {
		return nil, err
	}

	page := &entities.InsurancePlanPage{
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		TotalCount: resp.TotalCount,
		Plans:      make([]entities.InsurancePlan, 0, len(resp.Data)),
	}
	if resp.NextURL != nil {
		page.NextURL = *resp.NextURL
	}
	for _, p := range resp.Data {
		page.Plans = append(page.Plans, mapInsurancePlan(p))
	}
	return page, nil
}

// BookAppointment books a slot with the vendor through the gateway
func (c *Client) BookAppointment(ctx context.Context, req providers.BookingRequest) (*entities.Appointment, error) {
	if req.ProviderLocationID == "" {
		return nil, apperrors.NewValidationError("provider_location_id is required")
	}
	if req.StartTime == "" {
		return nil, apperrors.NewValidationError("start_time is required")
	}
	if req.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("visit_reason_id is required")
	}

	var resp zocdoc.AppointmentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/appointments", nil, req, &resp); err != nil {
		return nil, err
	}
	appt := mapAppointment(resp.Data)
	return &appt, nil
}

// ListAppointments returns one page of booked appointments
func (c *Client) ListAppointments(ctx context.Context, page, pageSize int) ([]entities.Appointment, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp zocdoc.AppointmentsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/appointments", q, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]entities.Appointment, 0, len(resp.Data))
	for _, a := range resp.Data {
		out = append(out, mapAppointment(a))
	}
	return out, nil
}

// GetAppointment fetches one appointment with full patient details
func (c *Client) GetAppointment(ctx context.Context, appointmentID string) (*entities.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.NewValidationError("appointment_id is required")
	}

	var resp zocdoc.AppointmentResponse
	endpoint := "/api/appointments/" + url.PathEscape(appointmentID)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, nil, &resp); err != nil {
		return nil, err
	}
	appt := mapAppointment(resp.Data)
	return &appt, nil
}

// CancelAppointment cancels a booked appointment
func (c *Client) CancelAppointment(ctx context.Context, appointmentID, reason, reasonType string) error {
	if appointmentID == "" {
		return apperrors.NewValidationError("appointment_id is required")
	}
	if reasonType == "" {
		reasonType = "patient_no_longer_needs_appointment"
	}

	body := map[string]string{
		"appointment_id":           appointmentID,
		"cancellation_reason":      reason,
		"cancellation_reason_type": reasonType,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/appointments/cancel", nil, body, nil)
}

// RescheduleAppointment moves an appointment to a new start time
func (c *Client) RescheduleAppointment(ctx context.Context, appointmentID, newStartTime string) (*entities.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.NewValidationError("appointment_id is required")
	}
	if newStartTime == "" {
		return nil, apperrors.NewValidationError("start_time is required")
	}

	body := map[string]string{
		"appointment_id": appointmentID,
		"start_time":     newStartTime,
	}
	var resp zocdoc.AppointmentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/appointments/reschedule", nil, body, &resp); err != nil {
		return nil, err
	}
	appt := mapAppointment(resp.Data)
	return &appt, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	rawURL := c.baseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return apperrors.NewTimeoutError("gateway request")
		}
		return apperrors.NewNetworkError("gateway request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		appErr := c.decodeError(endpoint, resp)
		if apperrors.IsTokenExpiry(appErr) {
			c.expireSession()
		}
		return appErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInternalError("failed to decode gateway response", err)
	}
	return nil
}

func (c *Client) decodeError(endpoint string, resp *http.Response) *apperrors.AppError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var env zocdoc.ErrorEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Error == "" {
		env.Error = fmt.Sprintf("request to %s failed with status %d", endpoint, resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		appErr := apperrors.NewUnauthenticatedError(env.Error)
		appErr.Description = env.ErrorDescription
		return appErr
	case http.StatusRequestTimeout:
		return apperrors.NewTimeoutError(env.Error)
	default:
		return apperrors.NewVendorError(env.Error, env.ErrorDescription, resp.StatusCode)
	}
}

func (c *Client) expireSession() {
	c.mu.Lock()
	hadSession := c.session.AccessToken != ""
	c.session = entities.AuthSession{}
	fn := c.onSessionExpired
	c.mu.Unlock()

	if !hadSession {
		return
	}
	log.Debug().Msg("gateway session expired, cleared local token")
	if fn != nil {
		fn()
	}
}

func mapProviderSummary(p zocdoc.BaseProvider) entities.ProviderSummary {
	return entities.ProviderSummary{
		NPI:                  p.NPI,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Title:                p.Title,
		FullName:             p.FullName,
		Specialties:          p.Specialties,
		SpecialtyIDs:         p.SpecialtyIDs,
		DefaultVisitReasonID: p.DefaultVisitReasonID,
		VisitReasonIDs:       p.VisitReasonIDs,
		Languages:            p.Languages,
		Statement:            p.Statement,
		PhotoURL:             p.ProviderPhotoURL,
	}
}

func mapProviderLocation(pl zocdoc.ProviderLocation) entities.ProviderLocation {
	out := entities.ProviderLocation{
		ID:                      pl.ProviderLocationID,
		Provider:                mapProviderSummary(pl.Provider),
		PracticeID:              pl.Practice.PracticeID,
		PracticeName:            pl.Practice.PracticeName,
		AcceptsPatientInsurance: pl.AcceptsPatientInsurance,
		FirstAvailabilityDate:   pl.FirstAvailabilityDate,
		BookingRequirements: entities.BookingRequirements{
			RequiredFields:             pl.BookingRequirements.RequiredFields,
			AcceptsBookingRequestsFrom: pl.BookingRequirements.AcceptsBookingRequestsFrom,
		},
	}

	switch {
	case pl.VirtualLocation != nil:
		out.Place = entities.VirtualPlace{
			State:        pl.VirtualLocation.State,
			LocationName: pl.VirtualLocation.LocationName,
		}
	case pl.Location != nil:
		out.Place = entities.PhysicalPlace{
			Address1:            pl.Location.Address1,
			Address2:            pl.Location.Address2,
			City:                pl.Location.City,
			State:               pl.Location.State,
			ZipCode:             pl.Location.ZipCode,
			Latitude:            pl.Location.Latitude,
			Longitude:           pl.Location.Longitude,
			LocationName:        pl.Location.LocationName,
			DistanceToPatientMi: pl.Location.DistanceToPatientMi,
		}
	}
	return out
}

func mapAvailability(av zocdoc.Availability) entities.Availability {
	out := entities.Availability{
		ProviderLocationID: av.ProviderLocationID,
		Timeslots:          make([]entities.Timeslot, 0, len(av.Timeslots)),
	}
	if av.FirstAvailability != nil {
		out.FirstAvailability = &entities.Timeslot{
			StartTime:     av.FirstAvailability.StartTime,
			VisitReasonID: av.FirstAvailability.VisitReasonID,
		}
	}
	for _, ts := range av.Timeslots {
		out.Timeslots = append(out.Timeslots, entities.Timeslot{
			StartTime:     ts.StartTime,
			VisitReasonID: ts.VisitReasonID,
		})
	}
	return out
}

func mapInsurancePlan(p zocdoc.InsurancePlan) entities.InsurancePlan {
	return entities.InsurancePlan{
		ID:   p.ID,
		Name: p.Name,
		Carrier: entities.InsuranceCarrier{
			ID:   p.Carrier.ID,
			Name: p.Carrier.Name,
		},
		PlanType:       p.PlanType,
		ProgramType:    p.ProgramType,
		CareCategories: p.CareCategories,
		Status:         p.Status,
		CoverageArea: entities.CoverageArea{
			IsNational: p.CoverageArea.IsNational,
			States:     p.CoverageArea.States,
		},
		RefMetadata: entities.ReferenceMetadata{
			CreatedTimestampUTC:     p.RefMetadata.CreatedTimestampUTC,
			LastUpdatedTimestampUTC: p.RefMetadata.LastUpdatedTimestampUTC,
		},
	}
}

func mapAppointment(a zocdoc.Appointment) entities.Appointment {
	out := entities.Appointment{
		AppointmentID:          a.AppointmentID,
		Status:                 entities.AppointmentStatus(a.Status),
		StartTime:              a.StartTime,
		ProviderLocationID:     a.ProviderLocationID,
		VisitReasonID:          a.VisitReasonID,
		PatientType:            entities.PatientType(a.PatientType),
		CancellationReason:     a.CancellationReason,
		CancellationReasonType: a.CancellationReasonType,
		CreatedTimestampUTC:    a.CreatedTimestampUTC,
		UpdatedTimestampUTC:    a.UpdatedTimestampUTC,
	}
	if a.Patient != nil {
		out.Patient = &entities.Patient{
			FirstName:         a.Patient.FirstName,
			LastName:          a.Patient.LastName,
			Email:             a.Patient.Email,
			PhoneNumber:       a.Patient.PhoneNumber,
			DateOfBirth:       a.Patient.DateOfBirth,
			SexAtBirth:        a.Patient.SexAtBirth,
			InsuranceMemberID: a.Patient.InsuranceMemberID,
			InsurancePlanID:   a.Patient.InsurancePlanID,
		}
	}
	return out
}
