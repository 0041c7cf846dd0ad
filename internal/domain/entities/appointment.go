package entities

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPendingBooking AppointmentStatus = "pending_booking"
	AppointmentStatusConfirmed      AppointmentStatus = "confirmed"
	AppointmentStatusCancelled      AppointmentStatus = "cancelled"
	AppointmentStatusNoShow         AppointmentStatus = "no_show"
)

// Patient is the person an appointment is booked for
type Patient struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email_address"`
	PhoneNumber       string `json:"phone_number"`
	DateOfBirth       string `json:"date_of_birth"`
	SexAtBirth        string `json:"sex_at_birth,omitempty"`
	InsuranceMemberID string `json:"insurance_member_id,omitempty"`
	InsurancePlanID   string `json:"insurance_plan_id,omitempty"`
}

// Appointment mirrors the vendor's appointment resource
type Appointment struct {
	AppointmentID          string            `json:"appointment_id"`
	Status                 AppointmentStatus `json:"status"`
	StartTime              string            `json:"start_time"`
	ProviderLocationID     string            `json:"provider_location_id"`
	VisitReasonID          string            `json:"visit_reason_id"`
	PatientType            PatientType       `json:"patient_type,omitempty"`
	Patient                *Patient          `json:"patient,omitempty"`
	CancellationReason     string            `json:"cancellation_reason,omitempty"`
	CancellationReasonType string            `json:"cancellation_reason_type,omitempty"`
	CreatedTimestampUTC    string            `json:"created_timestamp_utc,omitempty"`
	UpdatedTimestampUTC    string            `json:"last_updated_timestamp_utc,omitempty"`
}

// HasPatientDetails reports whether the vendor's list entry already
// carried the patient payload or a detail fetch is needed
func (a Appointment) HasPatientDetails() bool {
	return a.Patient != nil && a.Patient.FirstName != ""
}
