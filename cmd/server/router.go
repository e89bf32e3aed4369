package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/salonworks/booking-api/internal/api"
	apiMiddleware "github.com/salonworks/booking-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	if app.config.Server.RateLimitPerSecond > 0 {
		limiter := apiMiddleware.NewRateLimiter(
			app.config.Server.RateLimitPerSecond,
			app.config.Server.RateLimitBurst,
		)
		r.Use(limiter.Limit)
	}

	authHandler := api.NewAuthHandler(
		app.userService,
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth.TokenLifetimeMinutes,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	userHandler := api.NewUserHandler(app.userService)
	serviceHandler := api.NewServiceHandler(app.catalogService)
	appointmentHandler := api.NewAppointmentHandler(app.bookingService)
	notificationHandler := api.NewNotificationHandler(app.notificationService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/users", userHandler.CreateUser)
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Patch("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)

			r.Post("/services", serviceHandler.CreateService)
			r.Get("/services", serviceHandler.ListServices)
			r.Get("/services/{id}", serviceHandler.GetService)
			r.Patch("/services/{id}", serviceHandler.UpdateService)
			r.Delete("/services/{id}", serviceHandler.DeleteService)

			r.Post("/appointments", appointmentHandler.CreateAppointment)
			r.Get("/appointments", appointmentHandler.ListAppointments)
			r.Get("/appointments/confirmation/{number}", appointmentHandler.GetAppointmentByConfirmationNumber)
			r.Get("/appointments/{id}", appointmentHandler.GetAppointment)
			r.Patch("/appointments/{id}", appointmentHandler.UpdateAppointment)
			r.Delete("/appointments/{id}", appointmentHandler.DeleteAppointment)

			r.Post("/notifications", notificationHandler.CreateNotification)
			r.Get("/notifications", notificationHandler.ListNotifications)
			r.Get("/notifications/{id}", notificationHandler.GetNotification)
			r.Patch("/notifications/{id}", notificationHandler.UpdateNotification)
			r.Delete("/notifications/{id}", notificationHandler.DeleteNotification)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
