package zocdoc

// Wire shapes for the developer-sandbox scheduling API. Field names
// follow the vendor's JSON exactly; mapping to domain entities happens
// at the gateway client.

// TokenRequest is the OAuth client-credentials exchange payload
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
	Audience     string `json:"audience"`
}

// TokenResponse is the identity provider's answer
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// ErrorEnvelope is the normalized failure shape for vendor and gateway
// responses alike
type ErrorEnvelope struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Status           int    `json:"status,omitempty"`
}

// Practice groups locations under one organization
type Practice struct {
	PracticeID   string `json:"practice_id"`
	PracticeName string `json:"practice_name"`
}

// BookingRequirements lists prerequisites for booking at a location
type BookingRequirements struct {
	RequiredFields             []string `json:"required_fields"`
	AcceptsBookingRequestsFrom []string `json:"accepts_booking_requests_from"`
}

// ProviderCredentials holds certification and education data
type ProviderCredentials struct {
	Certifications []string `json:"certifications"`
	Education      struct {
		Institutions []string `json:"institutions"`
	} `json:"education"`
}

// BaseProvider is the clinician embedded in a search result
type BaseProvider struct {
	NPI                  string              `json:"npi"`
	FirstName            string              `json:"first_name"`
	LastName             string              `json:"last_name"`
	Title                string              `json:"title"`
	FullName             string              `json:"full_name"`
	GenderIdentity       string              `json:"gender_identity"`
	Specialties          []string            `json:"specialties"`
	SpecialtyIDs         []string            `json:"specialty_ids"`
	DefaultVisitReasonID string              `json:"default_visit_reason_id"`
	VisitReasonIDs       []string            `json:"visit_reason_ids"`
	Statement            string              `json:"statement"`
	ProviderPhotoURL     string              `json:"provider_photo_url"`
	Languages            []string            `json:"languages"`
	Credentials          ProviderCredentials `json:"credentials"`
}

// Location is a physical office on the wire
type Location struct {
	Address1            string  `json:"address1"`
	Address2            string  `json:"address2,omitempty"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	ZipCode             string  `json:"zip_code"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	LocationName        string  `json:"location_name,omitempty"`
	DistanceToPatientMi float64 `json:"distance_to_patient_mi"`
}

// VirtualLocation is a telehealth venue on the wire
type VirtualLocation struct {
	State        string `json:"state"`
	LocationName string `json:"location_name,omitempty"`
}

// ProviderLocation is one search hit. Exactly one of Location and
// VirtualLocation is populated, discriminated by ProviderLocationType.
type ProviderLocation struct {
	ProviderLocationID      string              `json:"provider_location_id"`
	ProviderLocationType    string              `json:"provider_location_type"`
	AcceptsPatientInsurance string              `json:"accepts_patient_insurance"`
	FirstAvailabilityDate   string              `json:"first_availability_date_in_provider_local_time"`
	Provider                BaseProvider        `json:"provider"`
	Location                *Location           `json:"location,omitempty"`
	VirtualLocation         *VirtualLocation    `json:"virtual_location,omitempty"`
	Practice                Practice            `json:"practice"`
	BookingRequirements     BookingRequirements `json:"booking_requirements"`
}

// SearchParameters echoes what the vendor resolved the search to
type SearchParameters struct {
	SpecialtyID   string `json:"specialty_id"`
	VisitReasonID string `json:"visit_reason_id"`
}

// ProviderLocationSearchResponse is the provider_locations resource
type ProviderLocationSearchResponse struct {
	RequestID  string  `json:"request_id"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalCount int     `json:"total_count"`
	NextURL    *string `json:"next_url"`
	Data       struct {
		SearchParameters  SearchParameters   `json:"search_parameters"`
		ProviderLocations []ProviderLocation `json:"provider_locations"`
	} `json:"data"`
}

// Timeslot is a bookable start time on the wire
type Timeslot struct {
	StartTime     string `json:"start_time"`
	VisitReasonID string `json:"visit_reason_id,omitempty"`
}

// Availability is the slots reported for one location
type Availability struct {
	ProviderLocationID string     `json:"provider_location_id"`
	FirstAvailability  *Timeslot  `json:"first_availability,omitempty"`
	Timeslots          []Timeslot `json:"timeslots"`
}

// AvailabilityResponse is the availability resource
type AvailabilityResponse struct {
	RequestID string         `json:"request_id"`
	Data      []Availability `json:"data"`
}

// NPIListResponse is the reference NPI directory
type NPIListResponse struct {
	RequestID  string  `json:"request_id"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalCount int     `json:"total_count"`
	NextURL    *string `json:"next_url"`
	Data       struct {
		NPIs []string `json:"npis"`
	} `json:"data"`
}

// ProviderDetails is a full provider record from the providers resource
type ProviderDetails struct {
	BaseProvider
	Locations        []Location        `json:"locations"`
	VirtualLocations []VirtualLocation `json:"virtual_locations"`
	Practice         Practice          `json:"practice"`
}

// ProvidersByNPI groups provider records under one NPI
type ProvidersByNPI struct {
	NPI       string            `json:"npi"`
	Providers []ProviderDetails `json:"providers"`
}

// ProvidersResponse is the providers resource
type ProvidersResponse struct {
	RequestID string           `json:"request_id"`
	Data      []ProvidersByNPI `json:"data"`
}

// InsuranceCarrier identifies the company behind a plan
type InsuranceCarrier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CoverageArea is where a plan applies
type CoverageArea struct {
	IsNational bool     `json:"is_national"`
	States     []string `json:"states,omitempty"`
}

// ReferenceMetadata carries vendor bookkeeping timestamps
type ReferenceMetadata struct {
	CreatedTimestampUTC     string `json:"created_timestamp_utc"`
	LastUpdatedTimestampUTC string `json:"last_updated_timestamp_utc"`
}

// InsurancePlan is one plan in the reference directory
type InsurancePlan struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Carrier        InsuranceCarrier  `json:"carrier"`
	PlanType       string            `json:"plan_type"`
	ProgramType    string            `json:"program_type"`
	CareCategories []string          `json:"care_categories"`
	Status         string            `json:"status"`
	CoverageArea   CoverageArea      `json:"coverage_area"`
	RefMetadata    ReferenceMetadata `json:"ref_metadata"`
}

// InsurancePlansResponse is the insurance_plans resource
type InsurancePlansResponse struct {
	RequestID  string          `json:"request_id"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int             `json:"total_count"`
	NextURL    *string         `json:"next_url"`
	Data       []InsurancePlan `json:"data"`
}

// Patient is the appointment patient payload on the wire
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

// Appointment is the vendor's appointment resource on the wire
type Appointment struct {
	AppointmentID          string   `json:"appointment_id"`
	Status                 string   `json:"status"`
	StartTime              string   `json:"start_time"`
	ProviderLocationID     string   `json:"provider_location_id"`
	VisitReasonID          string   `json:"visit_reason_id"`
	PatientType            string   `json:"patient_type,omitempty"`
	Patient                *Patient `json:"patient,omitempty"`
	CancellationReason     string   `json:"cancellation_reason,omitempty"`
	CancellationReasonType string   `json:"cancellation_reason_type,omitempty"`
	CreatedTimestampUTC    string   `json:"created_timestamp_utc,omitempty"`
	UpdatedTimestampUTC    string   `json:"last_updated_timestamp_utc,omitempty"`
}

// AppointmentResponse wraps a single appointment
type AppointmentResponse struct {
	RequestID string      `json:"request_id"`
	Data      Appointment `json:"data"`
}

// AppointmentsResponse is one page of appointments
type AppointmentsResponse struct {
	RequestID  string        `json:"request_id"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int           `json:"total_count"`
	NextURL    *string       `json:"next_url"`
	Data       []Appointment `json:"data"`
}

// WebhookMockRequest asks the sandbox to fire a mock webhook
type WebhookMockRequest struct {
	WebhookURL            string `json:"webhook_url"`
	WebhookKey            string `json:"webhook_key"`
	AppointmentUpdateType string `json:"appointment_update_type"`
}

// ChangedAttribute describes one field a mock update touched
type ChangedAttribute struct {
	AttributePath  string `json:"attribute_path"`
	AttachmentType string `json:"attachment_type,omitempty"`
}

// WebhookMockResponse is the sandbox's record of the delivered webhook
type WebhookMockResponse struct {
	EventType        string `json:"event_type"`
	WebhookTimestamp string `json:"webhook_timestamp"`
	Data             struct {
		DataType        string `json:"data_type"`
		AppointmentData struct {
			AppointmentID               string             `json:"appointment_id"`
			AppointmentUpdateType       string             `json:"appointment_update_type"`
			AppointmentUpdatedTimestamp string             `json:"appointment_updated_timestamp"`
			ChangedAttributes           []ChangedAttribute `json:"changed_attributes,omitempty"`
		} `json:"appointment_data"`
	} `json:"data"`
}

// LocationSearchRequest is the client-side search input
type LocationSearchRequest struct {
	ZipCode         string
	SpecialtyID     string
	VisitReasonID   string
	InsurancePlanID string
	VisitType       string
	MaxDistanceMi   float64
	Page            int
	PageSize        int
}

// AvailabilityRequest is the client-side availability input
type AvailabilityRequest struct {
	ProviderLocationIDs []string
	VisitReasonID       string
	PatientType         string
	StartDate           string
	EndDate             string
}

// InsurancePlansRequest is the client-side insurance plan filter
type InsurancePlansRequest struct {
	Page         int
	PageSize     int
	Status       string
	State        string
	PlanType     string
	ProgramType  string
	CareCategory string
}
