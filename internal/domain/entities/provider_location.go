package entities

// PlaceKind discriminates physical offices from virtual venues
type PlaceKind string

const (
	PlaceKindPhysical PlaceKind = "physical"
	PlaceKindVirtual  PlaceKind = "virtual"
)

// Place is the venue half of a provider location. It is a closed union:
// a location is either a physical office or a state-scoped virtual
// venue, never both and never neither, so consumers type-switch instead
// of probing optional fields.
type Place interface {
	Kind() PlaceKind
}

// PhysicalPlace is a street-address office
type PhysicalPlace struct {
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

// Kind implements Place
func (PhysicalPlace) Kind() PlaceKind { return PlaceKindPhysical }

// VirtualPlace is a telehealth venue licensed for one state
type VirtualPlace struct {
	State        string `json:"state"`
	LocationName string `json:"location_name,omitempty"`
}

// Kind implements Place
func (VirtualPlace) Kind() PlaceKind { return PlaceKindVirtual }

// ProviderSummary is the clinician attached to a search result
type ProviderSummary struct {
	NPI                  string   `json:"npi"`
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Title                string   `json:"title"`
	FullName             string   `json:"full_name"`
	Specialties          []string `json:"specialties"`
	SpecialtyIDs         []string `json:"specialty_ids"`
	DefaultVisitReasonID string   `json:"default_visit_reason_id"`
	VisitReasonIDs       []string `json:"visit_reason_ids"`
	Languages            []string `json:"languages"`
	Statement            string   `json:"statement,omitempty"`
	PhotoURL             string   `json:"provider_photo_url,omitempty"`
}

// BookingRequirements lists what the vendor demands before booking
type BookingRequirements struct {
	RequiredFields             []string `json:"required_fields"`
	AcceptsBookingRequestsFrom []string `json:"accepts_booking_requests_from"`
}

// ProviderLocation identifies one bookable site tied to one provider
// and one practice. Immutable once fetched within a search session.
type ProviderLocation struct {
	ID                      string              `json:"provider_location_id"`
	Provider                ProviderSummary     `json:"provider"`
	PracticeID              string              `json:"practice_id"`
	PracticeName            string              `json:"practice_name"`
	AcceptsPatientInsurance string              `json:"accepts_patient_insurance"`
	FirstAvailabilityDate   string              `json:"first_availability_date_in_provider_local_time,omitempty"`
	BookingRequirements     BookingRequirements `json:"booking_requirements"`
	Place                   Place               `json:"-"`
}

// ProviderLocationPage is one page of search results
type ProviderLocationPage struct {
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalCount int                `json:"total_count"`
	NextURL    string             `json:"next_url,omitempty"`
	Locations  []ProviderLocation `json:"locations"`
}

// NPIPage is one page of the vendor's provider directory
type NPIPage struct {
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int      `json:"total_count"`
	NextURL    string   `json:"next_url,omitempty"`
	NPIs       []string `json:"npis"`
}

// ProviderGroup is the providers registered under a single NPI
type ProviderGroup struct {
	NPI       string            `json:"npi"`
	Providers []ProviderSummary `json:"providers"`
}
