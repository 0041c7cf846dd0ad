package routes

import (
	"net/http"

	"github.com/zatekoja/bookingdemo/internal/api/handlers"
	"github.com/zatekoja/bookingdemo/internal/api/middleware"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	providerHandler     *handlers.ProviderHandler
	availabilityHandler *handlers.AvailabilityHandler
	insuranceHandler    *handlers.InsuranceHandler
	appointmentHandler  *handlers.AppointmentHandler
	webhookHandler      *handlers.WebhookHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics

	// authenticated reports whether the gateway holds a vendor token
	authenticated func() bool
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	providerHandler *handlers.ProviderHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	insuranceHandler *handlers.InsuranceHandler,
	appointmentHandler *handlers.AppointmentHandler,
	webhookHandler *handlers.WebhookHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	authenticated func() bool,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:         authHandler,
		providerHandler:     providerHandler,
		availabilityHandler: availabilityHandler,
		insuranceHandler:    insuranceHandler,
		appointmentHandler:  appointmentHandler,
		webhookHandler:      webhookHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		authenticated:   authenticated,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, req *http.Request) {
		status := `{"status":"ok","authenticated":false}`
		if r.authenticated != nil && r.authenticated() {
			status = `{"status":"ok","authenticated":true}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(status)); err != nil {
			return
		}
	})

	// Authentication
	r.mux.HandleFunc("POST /api/auth", r.authHandler.Authenticate)

	// Provider directory
	r.mux.HandleFunc("GET /api/providers/npis", r.providerHandler.ListNPIs)
	r.mux.HandleFunc("GET /api/providers", r.providerHandler.GetProviders)
	r.mux.HandleFunc("GET /api/provider_locations", r.providerHandler.SearchLocations)

	// Availability
	r.mux.HandleFunc("GET /api/availability", r.availabilityHandler.GetAvailability)

	// Insurance plans
	r.mux.HandleFunc("GET /api/insurance_plans", r.insuranceHandler.ListPlans)

	// Appointment lifecycle
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.GetAppointment)
	r.mux.HandleFunc("POST /api/appointments/cancel", r.appointmentHandler.CancelAppointment)
	r.mux.HandleFunc("POST /api/appointments/reschedule", r.appointmentHandler.RescheduleAppointment)

	// Webhook simulation and delivery
	if r.webhookHandler != nil {
		r.mux.HandleFunc("POST /api/webhook_mocks", r.webhookHandler.SimulateWebhook)
		r.mux.HandleFunc("POST /webhooks/appointments", r.webhookHandler.ReceiveWebhook)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
