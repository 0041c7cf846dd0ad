package services

import (
	"context"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

const defaultCancellationReasonType = "patient_no_longer_needs_appointment"

// AppointmentService manages the appointment lifecycle after booking
type AppointmentService struct {
	directory providers.BookingDirectory
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(directory providers.BookingDirectory) *AppointmentService {
	return &AppointmentService{directory: directory}
}

// List returns one page of appointments. The vendor's list entries may
// omit patient details; with backfill enabled each bare entry gets a
// follow-up detail fetch. A failed backfill keeps the bare entry rather
// than failing the whole listing.
func (s *AppointmentService) List(ctx context.Context, page, pageSize int, backfillPatients bool) ([]entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.List")
	defer span.End()

	appointments, err := s.directory.ListAppointments(ctx, page, pageSize)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if backfillPatients {
		for i := range appointments {
			if appointments[i].HasPatientDetails() {
				continue
			}
			full, err := s.directory.GetAppointment(ctx, appointments[i].AppointmentID)
			if err != nil {
				observability.LoggerFromContext(ctx).Warn().
					Str("appointment_id", appointments[i].AppointmentID).
					Err(err).
					Msg("patient detail backfill failed, keeping bare entry")
				continue
			}
			appointments[i] = *full
		}
	}

	return appointments, nil
}

// Get fetches one appointment with full patient details
func (s *AppointmentService) Get(ctx context.Context, appointmentID string) (*entities.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.NewValidationError("appointment_id is required")
	}
	return s.directory.GetAppointment(ctx, appointmentID)
}

// Cancel cancels a booked appointment, defaulting the reason type when
// the caller gives none
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, reason, reasonType string) error {
	if appointmentID == "" {
		return apperrors.NewValidationError("appointment_id is required")
	}
	if reasonType == "" {
		reasonType = defaultCancellationReasonType
	}
	return s.directory.CancelAppointment(ctx, appointmentID, reason, reasonType)
}

// Reschedule moves an appointment to a new start time
func (s *AppointmentService) Reschedule(ctx context.Context, appointmentID, newStartTime string) (*entities.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.NewValidationError("appointment_id is required")
	}
	if newStartTime == "" {
		return nil, apperrors.NewValidationError("start_time is required")
	}
	return s.directory.RescheduleAppointment(ctx, appointmentID, newStartTime)
}
