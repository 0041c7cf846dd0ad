package services

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

// SearchInput drives one availability-aware search
type SearchInput struct {
	Query       providers.LocationSearchQuery
	PatientType entities.PatientType
	StartDate   string
	EndDate     string
}

// SearchService runs the availability-aware search pipeline and holds
// the resulting view for the current session. The view only changes on
// a successful search or a vendor-confirmed booking; failed calls leave
// it exactly as it was.
type SearchService struct {
	directory providers.BookingDirectory

	mu   sync.RWMutex
	view []entities.AvailabilityAwareProviderLocation
}

// NewSearchService creates a new search service
func NewSearchService(directory providers.BookingDirectory) *SearchService {
	return &SearchService{directory: directory}
}

// JoinAvailability pairs search results with the availability reported
// for them, keyed by provider location id. Locations the vendor did not
// answer for count as having no availability; on duplicate ids the last
// report wins. Entries without at least one open slot are dropped and
// the search result order is preserved.
func JoinAvailability(locations []entities.ProviderLocation, availability []entities.Availability) []entities.AvailabilityAwareProviderLocation {
	byLocation := make(map[string]entities.Availability, len(availability))
	for _, av := range availability {
		byLocation[av.ProviderLocationID] = av
	}

	joined := make([]entities.AvailabilityAwareProviderLocation, 0, len(locations))
	for _, loc := range locations {
		av, ok := byLocation[loc.ID]
		if !ok {
			av = entities.Availability{ProviderLocationID: loc.ID, Timeslots: []entities.Timeslot{}}
		}
		if !av.HasOpenSlots() {
			continue
		}
		joined = append(joined, entities.AvailabilityAwareProviderLocation{
			Location:     loc,
			Availability: av,
		})
	}
	return joined
}

// Search runs one search: fetch locations, fetch their availability,
// join, and keep only bookable entries. A search that finds no
// locations skips the availability call entirely.
func (s *SearchService) Search(ctx context.Context, input SearchInput) ([]entities.AvailabilityAwareProviderLocation, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	if input.Query.ZipCode == "" {
		return nil, apperrors.NewValidationError("zip_code is required")
	}
	if input.Query.SpecialtyID == "" && input.Query.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("one of specialty_id or visit_reason_id is required")
	}
	patientType := input.PatientType
	if patientType == "" {
		patientType = entities.PatientTypeNew
	}

	page, err := s.directory.SearchProviderLocations(ctx, input.Query)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	observability.SetSpanAttributes(span, attribute.Int("search.location_count", len(page.Locations)))

	if len(page.Locations) == 0 {
		s.replaceView(nil)
		return []entities.AvailabilityAwareProviderLocation{}, nil
	}

	ids := make([]string, 0, len(page.Locations))
	for _, loc := range page.Locations {
		ids = append(ids, loc.ID)
	}
	visitReasonID := input.Query.VisitReasonID
	if visitReasonID == "" {
		visitReasonID = page.Locations[0].Provider.DefaultVisitReasonID
	}

	availability, err := s.directory.GetAvailability(ctx, providers.AvailabilityQuery{
		ProviderLocationIDs: ids,
		VisitReasonID:       visitReasonID,
		PatientType:         patientType,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	joined := JoinAvailability(page.Locations, availability)
	observability.SetSpanAttributes(span, attribute.Int("search.bookable_count", len(joined)))

	s.replaceView(joined)
	return s.View(), nil
}

// View returns a copy of the current availability-aware view
func (s *SearchService) View() []entities.AvailabilityAwareProviderLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.AvailabilityAwareProviderLocation, len(s.view))
	copy(out, s.view)
	return out
}

// Book submits a booking and, once the vendor confirms it, removes the
// booked timeslot from the view so it cannot be booked twice in this
// session. A rejected booking leaves the view untouched.
func (s *SearchService) Book(ctx context.Context, req providers.BookingRequest) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Book")
	defer span.End()

	if req.ProviderLocationID == "" {
		return nil, apperrors.NewValidationError("provider_location_id is required")
	}
	if req.StartTime == "" {
		return nil, apperrors.NewValidationError("start_time is required")
	}
	if req.VisitReasonID == "" {
		return nil, apperrors.NewValidationError("visit_reason_id is required")
	}
	if req.PatientType == "" {
		req.PatientType = entities.PatientTypeNew
	}

	appointment, err := s.directory.BookAppointment(ctx, req)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	s.removeBookedSlot(req.ProviderLocationID, req.StartTime)
	return appointment, nil
}

func (s *SearchService) replaceView(view []entities.AvailabilityAwareProviderLocation) {
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
}

// removeBookedSlot drops the slot matching the booked start time from
// the matching view entry, comparing start times as verbatim strings.
// An entry whose last slot was booked is removed entirely.
func (s *SearchService) removeBookedSlot(providerLocationID, startTime string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]entities.AvailabilityAwareProviderLocation, 0, len(s.view))
	for _, entry := range s.view {
		if entry.Location.ID != providerLocationID {
			next = append(next, entry)
			continue
		}

		remaining := make([]entities.Timeslot, 0, len(entry.Availability.Timeslots))
		for _, ts := range entry.Availability.Timeslots {
			if ts.StartTime == startTime {
				continue
			}
			remaining = append(remaining, ts)
		}
		if len(remaining) == 0 {
			continue
		}

		entry.Availability.Timeslots = remaining
		if entry.Availability.FirstAvailability != nil && entry.Availability.FirstAvailability.StartTime == startTime {
			first := remaining[0]
			entry.Availability.FirstAvailability = &first
		}
		next = append(next, entry)
	}
	s.view = next
}
