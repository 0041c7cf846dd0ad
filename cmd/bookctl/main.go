package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zatekoja/bookingdemo/internal/application/services"
	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/gateway"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
	"github.com/zatekoja/bookingdemo/pkg/config"
	"github.com/zatekoja/bookingdemo/pkg/credstore"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	observability.InitLogger("bookctl", cfg.Environment)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var runErr error
	switch os.Args[1] {
	case "login":
		runErr = runLogin(ctx, cfg, os.Args[2:])
	case "logout":
		runErr = runLogout()
	case "search":
		runErr = runSearch(ctx, cfg, os.Args[2:], false)
	case "book":
		runErr = runSearch(ctx, cfg, os.Args[2:], true)
	case "appointments":
		runErr = runAppointments(ctx, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if runErr != nil {
		appErr := apperrors.AsAppError(runErr)
		if appErr.Description != "" {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", appErr.Message, appErr.Description)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", appErr.Message)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bookctl <command> [flags]

commands:
  login         store API credentials and verify them against the gateway
  logout        remove stored credentials
  search        search bookable provider locations near a zip code
  book          search, then book the first open slot
  appointments  list booked appointments`)
}

func openStore() (*credstore.Store, error) {
	path, err := credstore.DefaultPath()
	if err != nil {
		return nil, err
	}
	return credstore.New(path), nil
}

// connect builds a gateway client that silently re-authenticates with
// the stored credentials whenever the session is rejected
func connect(ctx context.Context, cfg *config.Config) (*gateway.Client, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	creds, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("no stored credentials, run bookctl login first: %w", err)
	}

	var client *gateway.Client
	client = gateway.NewClient(cfg.Client.GatewayURL, gateway.WithSessionExpiredHandler(func() {
		reauthCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if _, err := client.Authenticate(reauthCtx, creds.ClientID, creds.ClientSecret); err != nil {
			fmt.Fprintln(os.Stderr, "re-authentication failed:", err)
		}
	}))

	if _, err := client.Authenticate(ctx, creds.ClientID, creds.ClientSecret); err != nil {
		return nil, err
	}
	return client, nil
}

func runLogin(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	clientID := fs.String("client-id", "", "API client id")
	clientSecret := fs.String("client-secret", "", "API client secret")
	fs.Parse(args)

	if *clientID == "" || *clientSecret == "" {
		return apperrors.NewValidationError("client-id and client-secret are required")
	}

	client := gateway.NewClient(cfg.Client.GatewayURL)
	if _, err := client.Authenticate(ctx, *clientID, *clientSecret); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Save(credstore.Credentials{ClientID: *clientID, ClientSecret: *clientSecret}); err != nil {
		return err
	}

	fmt.Println("credentials verified and stored")
	return nil
}

func runLogout() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("credentials removed")
	return nil
}

func runSearch(ctx context.Context, cfg *config.Config, args []string, book bool) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	zip := fs.String("zip", "", "patient zip code")
	visitReason := fs.String("visit-reason", "", "visit reason id")
	specialty := fs.String("specialty", "", "specialty id")
	insurancePlan := fs.String("insurance-plan", "", "insurance plan id")
	patientType := fs.String("patient-type", "new", "patient type (new or existing)")
	firstName := fs.String("first-name", "", "patient first name (book only)")
	lastName := fs.String("last-name", "", "patient last name (book only)")
	email := fs.String("email", "", "patient email (book only)")
	phone := fs.String("phone", "", "patient phone number (book only)")
	dateOfBirth := fs.String("dob", "", "patient date of birth YYYY-MM-DD (book only)")
	fs.Parse(args)

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	// Show which plans the patient could pick from
	plans, err := client.GetInsurancePlans(ctx, providers.InsurancePlanQuery{})
	if err != nil {
		return err
	}
	fmt.Printf("insurance directory: %d active plans\n", plans.TotalCount)

	search := services.NewSearchService(client)
	view, err := search.Search(ctx, services.SearchInput{
		Query: providers.LocationSearchQuery{
			ZipCode:         *zip,
			SpecialtyID:     *specialty,
			VisitReasonID:   *visitReason,
			InsurancePlanID: *insurancePlan,
		},
		PatientType: entities.PatientType(*patientType),
	})
	if err != nil {
		return err
	}

	if len(view) == 0 {
		fmt.Println("no bookable locations found")
		return nil
	}

	printView(view)

	if !book {
		return nil
	}

	entry := view[0]
	slot := entry.Availability.Timeslots[0]
	visitReasonID := slot.VisitReasonID
	if visitReasonID == "" {
		visitReasonID = *visitReason
	}

	appointment, err := search.Book(ctx, providers.BookingRequest{
		ProviderLocationID: entry.Location.ID,
		StartTime:          slot.StartTime,
		VisitReasonID:      visitReasonID,
		PatientType:        entities.PatientType(*patientType),
		Patient: entities.Patient{
			FirstName:       *firstName,
			LastName:        *lastName,
			Email:           *email,
			PhoneNumber:     *phone,
			DateOfBirth:     *dateOfBirth,
			InsurancePlanID: *insurancePlan,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nbooked %s at %s with %s (status %s)\n",
		appointment.AppointmentID, appointment.StartTime,
		entry.Location.Provider.FullName, appointment.Status)

	fmt.Println("\nremaining availability:")
	printView(search.View())
	return nil
}

func runAppointments(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("appointments", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	pageSize := fs.Int("page-size", 10, "page size")
	fs.Parse(args)

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	appointments, err := services.NewAppointmentService(client).List(ctx, *page, *pageSize, true)
	if err != nil {
		return err
	}

	if len(appointments) == 0 {
		fmt.Println("no appointments")
		return nil
	}
	for _, a := range appointments {
		patient := "unknown patient"
		if a.HasPatientDetails() {
			patient = a.Patient.FirstName + " " + a.Patient.LastName
		}
		fmt.Printf("%s  %s  %-15s  %s\n", a.AppointmentID, a.StartTime, a.Status, patient)
	}
	return nil
}

func printView(view []entities.AvailabilityAwareProviderLocation) {
	for _, entry := range view {
		venue := ""
		switch place := entry.Location.Place.(type) {
		case entities.PhysicalPlace:
			venue = fmt.Sprintf("%s, %s %s (%.1f mi)", place.City, place.State, place.ZipCode, place.DistanceToPatientMi)
		case entities.VirtualPlace:
			venue = fmt.Sprintf("telehealth (%s)", place.State)
		}
		fmt.Printf("%s  %-30s %s\n", entry.Location.ID, entry.Location.Provider.FullName, venue)
		for i, slot := range entry.Availability.Timeslots {
			if i == 5 {
				fmt.Printf("    ... %d more slots\n", len(entry.Availability.Timeslots)-i)
				break
			}
			fmt.Printf("    %s\n", slot.StartTime)
		}
	}
}
