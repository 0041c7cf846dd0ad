package entities

// PatientType affects which slots and booking rules apply
type PatientType string

const (
	PatientTypeNew      PatientType = "new"
	PatientTypeExisting PatientType = "existing"
)

// Timeslot is a single bookable start time at a provider location for a
// given visit reason. Start times are provider-local strings passed
// through from the vendor verbatim; no timezone normalization happens
// on this side.
type Timeslot struct {
	StartTime     string `json:"start_time"`
	VisitReasonID string `json:"visit_reason_id,omitempty"`
}

// Availability is the open slots the vendor reported for one location,
// ordered by start time
type Availability struct {
	ProviderLocationID string     `json:"provider_location_id"`
	FirstAvailability  *Timeslot  `json:"first_availability,omitempty"`
	Timeslots          []Timeslot `json:"timeslots"`
}

// HasOpenSlots reports whether at least one timeslot is open
func (a Availability) HasOpenSlots() bool {
	return len(a.Timeslots) > 0
}

// AvailabilityAwareProviderLocation pairs a search result with the
// availability the vendor returned for it. Entries kept in a joined
// view always have at least one open slot.
type AvailabilityAwareProviderLocation struct {
	Location     ProviderLocation `json:"location"`
	Availability Availability     `json:"availability"`
}
