package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"revonn/internal/api"
	"revonn/internal/app"
	"revonn/internal/auth"
	"revonn/internal/config"
	"revonn/internal/logger"
	"revonn/internal/middleware"
	"revonn/internal/repository"
	"revonn/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	log := logger.New(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open DB")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer db.Close()

	if cfg.RunMigrations {
		migrator, err := app.NewMigrator(db, cfg.MigrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init migrator")
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
		log.Info().Msg("migrations applied")
	}

	slotRepo := repository.NewSlotTemplateRepository(db)
	staffingRepo := repository.NewStaffingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	garageRepo := repository.NewGarageRepository(db)
	jobRepo := repository.NewJobRepository(db)

	availabilitySvc := service.NewAvailabilityService(slotRepo, staffingRepo, service.AvailabilityConfig{
		ShowSlotsOnDegradedStaffing: cfg.ShowSlotsOnDegradedStaffing,
		SlotCacheTTL:                cfg.SlotCacheTTL,
	}, log)
	senderSvc := service.NewSenderService(cfg, log)
	bookingSvc := service.NewBookingService(bookingRepo, garageRepo, staffingRepo, availabilitySvc, senderSvc, log)
	adminSvc := service.NewGarageAdminService(slotRepo, staffingRepo)
	jobSvc := service.NewJobService(jobRepo, log)

	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	ownerHandler := api.NewOwnerHandler(adminSvc, bookingSvc)
	healthHandler := api.NewHealthHandler(db)

	scheduler := cron.New()
	scheduler.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.CompletePastBookings(context.Background()); err != nil {
			log.Error().Err(err).Msg("complete past bookings job failed")
		}
	})
	scheduler.AddFunc("0 * * * *", func() {
		if err := jobSvc.PurgeStalePendingBookings(context.Background(), 24*time.Hour); err != nil {
			log.Error().Err(err).Msg("purge stale pending bookings job failed")
		}
	})
	scheduler.Start()
	defer scheduler.Stop()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.HandleFunc("/healthz", healthHandler.Healthz).Methods("GET")

	// Public endpoints
	public := r.PathPrefix("/api").Subrouter()
	public.Use(rateLimiter.Limit)
	public.HandleFunc("/garages/{garage_id}/availability", availabilityHandler.GetAvailability).Methods("GET")
	public.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	public.HandleFunc("/bookings/{code}", bookingHandler.GetBooking).Methods("GET")
	public.HandleFunc("/bookings/{code}", bookingHandler.CancelBooking).Methods("DELETE")

	// Owner endpoints (protected)
	owner := r.PathPrefix("/owner").Subrouter()
	owner.Use(auth.OwnerAuthMiddleware(cfg.JWTSecret))
	owner.HandleFunc("/garages/{garage_id}/time-slots", ownerHandler.ListTimeSlots).Methods("GET")
	owner.HandleFunc("/garages/{garage_id}/time-slots", ownerHandler.CreateTimeSlot).Methods("POST")
	owner.HandleFunc("/time-slots/{slot_id}", ownerHandler.UpdateTimeSlot).Methods("PUT")
	owner.HandleFunc("/time-slots/{slot_id}", ownerHandler.DeleteTimeSlot).Methods("DELETE")
	owner.HandleFunc("/garages/{garage_id}/mechanics", ownerHandler.ListMechanics).Methods("GET")
	owner.HandleFunc("/garages/{garage_id}/mechanics", ownerHandler.CreateMechanic).Methods("POST")
	owner.HandleFunc("/mechanics/{mechanic_id}", ownerHandler.UpdateMechanic).Methods("PUT")
	owner.HandleFunc("/garages/{garage_id}/bookings", ownerHandler.ListBookings).Methods("GET")
	owner.HandleFunc("/bookings/{code}/assign", ownerHandler.AssignMechanic).Methods("PUT")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      cors(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("server running")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
