package providers

import (
	"context"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
)

// LocationSearchQuery is a provider-location search. ZipCode and at
// least one of SpecialtyID/VisitReasonID are required.
type LocationSearchQuery struct {
	ZipCode         string
	SpecialtyID     string
	VisitReasonID   string
	InsurancePlanID string
	VisitType       string
	MaxDistanceMi   float64
	Page            int
	PageSize        int
}

// AvailabilityQuery asks for open slots at a set of locations. Dates
// are provider-local calendar dates passed through verbatim.
type AvailabilityQuery struct {
	ProviderLocationIDs []string
	VisitReasonID       string
	PatientType         entities.PatientType
	StartDate           string
	EndDate             string
}

// InsurancePlanQuery filters the vendor's insurance plan directory
type InsurancePlanQuery struct {
	Page         int
	PageSize     int
	Status       string
	State        string
	PlanType     string
	ProgramType  string
	CareCategory string
}

// BookingRequest is the payload submitted to book a slot
type BookingRequest struct {
	ProviderLocationID string               `json:"provider_location_id"`
	StartTime          string               `json:"start_time"`
	VisitReasonID      string               `json:"visit_reason_id"`
	PatientType        entities.PatientType `json:"patient_type"`
	Patient            entities.Patient     `json:"patient"`
	Notes              string               `json:"notes,omitempty"`
}

// BookingDirectory is the scheduling vendor as seen through the proxy
// gateway: directory lookups, availability, and the appointment
// lifecycle. Implementations surface failures as pkg/errors.AppError
// values and never retry.
type BookingDirectory interface {
	// Authenticate exchanges credentials for a session held by the gateway
	Authenticate(ctx context.Context, clientID, clientSecret string) (*entities.AuthSession, error)

	// SearchProviderLocations returns one page of matching locations
	SearchProviderLocations(ctx context.Context, query LocationSearchQuery) (*entities.ProviderLocationPage, error)

	// GetAvailability returns slots for the locations the vendor chose
	// to answer for; absent locations mean no availability
	GetAvailability(ctx context.Context, query AvailabilityQuery) ([]entities.Availability, error)

	// ListNPIs pages through the vendor's provider directory
	ListNPIs(ctx context.Context, page, pageSize int) (*entities.NPIPage, error)

	// GetProviders fetches full records for up to 50 NPIs
	GetProviders(ctx context.Context, npis []string, insurancePlanID string) ([]entities.ProviderGroup, error)

	// GetInsurancePlans returns one page of insurance plans
	GetInsurancePlans(ctx context.Context, query InsurancePlanQuery) (*entities.InsurancePlanPage, error)

	// BookAppointment books a slot with the vendor
	BookAppointment(ctx context.Context, req BookingRequest) (*entities.Appointment, error)

	// ListAppointments returns one page of booked appointments
	ListAppointments(ctx context.Context, page, pageSize int) ([]entities.Appointment, error)

	// GetAppointment fetches one appointment with full patient details
	GetAppointment(ctx context.Context, appointmentID string) (*entities.Appointment, error)

	// CancelAppointment cancels a booked appointment
	CancelAppointment(ctx context.Context, appointmentID, reason, reasonType string) error

	// RescheduleAppointment moves an appointment to a new start time
	RescheduleAppointment(ctx context.Context, appointmentID, newStartTime string) (*entities.Appointment, error)
}
