package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/salonworks/booking-api/internal/config"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/platform/notify"
	"github.com/salonworks/booking-api/internal/platform/postgres"
	"github.com/salonworks/booking-api/internal/platform/twilio"
	"github.com/salonworks/booking-api/internal/service"
	"github.com/salonworks/booking-api/internal/service/auth"
	"github.com/salonworks/booking-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	serviceStore      store.ServiceStore
	appointmentStore  store.AppointmentStore
	notificationStore store.NotificationStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	userService         service.UserService
	catalogService      service.CatalogService
	bookingService      service.BookingService
	notificationService service.NotificationService

	dispatcher *service.Dispatcher
}

// newApplication connects the database, applies migrations, and wires
// the store, service, and auth layers together.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := postgres.MigrateUp(db); err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	userStore := postgres.NewUserStore(db, cfg.Auth.BcryptCost, logger)
	serviceStore := postgres.NewServiceStore(db, logger)
	appointmentStore := postgres.NewAppointmentStore(db, logger)
	notificationStore := postgres.NewNotificationStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,

		userStore:         userStore,
		serviceStore:      serviceStore,
		appointmentStore:  appointmentStore,
		notificationStore: notificationStore,

		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),

		userService:         service.NewUserService(userStore, db, logger),
		catalogService:      service.NewCatalogService(serviceStore, db, logger),
		bookingService:      service.NewBookingService(appointmentStore, db, logger),
		notificationService: service.NewNotificationService(notificationStore, db, logger),
	}

	if cfg.Dispatch.Enabled {
		senders, err := buildSenders(cfg, logger)
		if err != nil {
			closeDB(db, logger)
			return nil, err
		}
		app.dispatcher = service.NewDispatcher(notificationStore, senders, cfg.Dispatch, logger)
	}

	return app, nil
}

// buildSenders binds each notification type to a delivery channel. SMS
// goes through Twilio when credentials are present, otherwise every
// channel logs.
func buildSenders(cfg *config.Config, logger *slog.Logger) (map[domain.NotificationType]service.Sender, error) {
	senders := map[domain.NotificationType]service.Sender{
		domain.NotificationTypeEmail: notify.NewLogSender("email", logger),
		domain.NotificationTypeInApp: notify.NewLogSender("in_app", logger),
	}

	if cfg.Twilio.AccountSID != "" {
		smsSender, err := twilio.NewSMSSender(cfg.Twilio)
		if err != nil {
			return nil, fmt.Errorf("failed to create SMS sender: %w", err)
		}
		senders[domain.NotificationTypeSMS] = smsSender
		logger.Info("SMS channel using Twilio")
	} else {
		senders[domain.NotificationTypeSMS] = notify.NewLogSender("sms", logger)
		logger.Info("SMS channel using log sender, no Twilio credentials configured")
	}

	return senders, nil
}

// cleanup releases the application's resources. Safe to call once
// during shutdown.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}
	closeDB(app.db, app.logger)
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
