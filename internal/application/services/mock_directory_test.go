package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
)

// MockBookingDirectory is a mock implementation of providers.BookingDirectory
type MockBookingDirectory struct {
	mock.Mock
}

func (m *MockBookingDirectory) Authenticate(ctx context.Context, clientID, clientSecret string) (*entities.AuthSession, error) {
	args := m.Called(ctx, clientID, clientSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthSession), args.Error(1)
}

func (m *MockBookingDirectory) SearchProviderLocations(ctx context.Context, query providers.LocationSearchQuery) (*entities.ProviderLocationPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProviderLocationPage), args.Error(1)
}

func (m *MockBookingDirectory) GetAvailability(ctx context.Context, query providers.AvailabilityQuery) ([]entities.Availability, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Availability), args.Error(1)
}

func (m *MockBookingDirectory) ListNPIs(ctx context.Context, page, pageSize int) (*entities.NPIPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NPIPage), args.Error(1)
}

func (m *MockBookingDirectory) GetProviders(ctx context.Context, npis []string, insurancePlanID string) ([]entities.ProviderGroup, error) {
	args := m.Called(ctx, npis, insurancePlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProviderGroup), args.Error(1)
}

func (m *MockBookingDirectory) GetInsurancePlans(ctx context.Context, query providers.InsurancePlanQuery) (*entities.InsurancePlanPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InsurancePlanPage), args.Error(1)
}

func (m *MockBookingDirectory) BookAppointment(ctx context.Context, req providers.BookingRequest) (*entities.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockBookingDirectory) ListAppointments(ctx context.Context, page, pageSize int) ([]entities.Appointment, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Appointment), args.Error(1)
}

func (m *MockBookingDirectory) GetAppointment(ctx context.Context, appointmentID string) (*entities.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockBookingDirectory) CancelAppointment(ctx context.Context, appointmentID, reason, reasonType string) error {
	args := m.Called(ctx, appointmentID, reason, reasonType)
	return args.Error(0)
}

func (m *MockBookingDirectory) RescheduleAppointment(ctx context.Context, appointmentID, newStartTime string) (*entities.Appointment, error) {
	args := m.Called(ctx, appointmentID, newStartTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}
