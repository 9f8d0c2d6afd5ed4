package main

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"rentacar/internal/api"
	"rentacar/internal/auth"
	"rentacar/internal/db"
	"rentacar/internal/repository"
	"rentacar/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := conn.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := runMigrations(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(conn)
	carRepo := repository.NewCarRepository(conn)
	rateRepo := repository.NewRateRepository(conn)
	rentalRepo := repository.NewRentalRepository(conn)
	orderRepo := repository.NewPaymentOrderRepository(conn)
	jobRepo := repository.NewJobRepository(conn)
	reportRepo := repository.NewReportRepository(conn)

	paypalSvc, err := service.NewPayPalService()
	if err != nil {
		log.Fatalf("Failed to init PayPal client: %v", err)
	}
	senderSvc := service.NewSenderService()

	authSvc := service.NewAuthService(userRepo)
	carSvc := service.NewCarService(carRepo)
	rateSvc := service.NewRateService(rateRepo)
	rentalSvc := service.NewRentalService(rentalRepo, carRepo, rateRepo, userRepo, orderRepo, paypalSvc, senderSvc)
	reportSvc := service.NewReportService(reportRepo)
	jobSvc := service.NewJobService(jobRepo, senderSvc)

	authHandler := api.NewAuthHandler(authSvc)
	carHandler := api.NewCarHandler(carSvc)
	rateHandler := api.NewRateHandler(rateSvc)
	rentalHandler := api.NewRentalHandler(rentalSvc)
	paymentHandler := api.NewPaymentHandler(rentalSvc)
	reportHandler := api.NewReportHandler(reportSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	// PayPal redirects the buyer here after approving or cancelling an order.
	r.HandleFunc("/api/payments/capture", paymentHandler.Capture).Methods("GET")
	r.HandleFunc("/api/payments/cancel", paymentHandler.Cancel).Methods("GET")
	r.HandleFunc("/api/cars", carHandler.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/{placa}", carHandler.GetCar).Methods("GET")
	r.HandleFunc("/api/rates", rateHandler.ListRates).Methods("GET")
	r.HandleFunc("/api/rates/{id}", rateHandler.GetRate).Methods("GET")

	// Client endpoints (any authenticated user)
	client := r.PathPrefix("/api").Subrouter()
	client.Use(auth.Middleware)
	client.HandleFunc("/rentals/cliente", rentalHandler.CreateByClient).Methods("POST")
	client.HandleFunc("/rentals/cliente/{clienteId}", rentalHandler.GetRentalsByClient).Methods("GET")

	// Staff endpoints (admin or empleado)
	staff := r.PathPrefix("/api").Subrouter()
	staff.Use(auth.Middleware)
	staff.Use(auth.RequireRoles(db.RolAdmin, db.RolEmpleado))
	staff.HandleFunc("/users", authHandler.ListUsers).Methods("GET")
	staff.HandleFunc("/cars", carHandler.CreateCar).Methods("POST")
	staff.HandleFunc("/cars/{placa}", carHandler.UpdateCar).Methods("PATCH")
	staff.HandleFunc("/cars/{placa}", carHandler.DeleteCar).Methods("DELETE")
	staff.HandleFunc("/cars/{placa}/mantenimientos", carHandler.ListMaintenance).Methods("GET")
	staff.HandleFunc("/cars/{placa}/mantenimientos", carHandler.AddMaintenance).Methods("POST")
	staff.HandleFunc("/mantenimientos/{id}", carHandler.UpdateMaintenance).Methods("PUT")
	staff.HandleFunc("/mantenimientos/{id}", carHandler.DeleteMaintenance).Methods("DELETE")
	staff.HandleFunc("/rates", rateHandler.CreateRate).Methods("POST")
	staff.HandleFunc("/rates/{id}", rateHandler.UpdateRate).Methods("PUT")
	staff.HandleFunc("/rates/{id}", rateHandler.DeleteRate).Methods("DELETE")
	staff.HandleFunc("/rentals", rentalHandler.CreateByEmployee).Methods("POST")
	staff.HandleFunc("/rentals", rentalHandler.ListRentals).Methods("GET")
	staff.HandleFunc("/rentals/{id}", rentalHandler.GetRental).Methods("GET")
	staff.HandleFunc("/rentals/autorizar/{id}", rentalHandler.Authorize).Methods("PUT")
	staff.HandleFunc("/rentals/devolucion/{id}", rentalHandler.ReturnVehicle).Methods("PUT")
	staff.HandleFunc("/rentals/status/{id}", rentalHandler.UpdateStatus).Methods("PUT")
	staff.HandleFunc("/rentals/{id}/inspecciones", rentalHandler.GetInspections).Methods("GET")
	staff.HandleFunc("/reports/rentals", reportHandler.RentalReport).Methods("GET")
	staff.HandleFunc("/reports/cars", reportHandler.CarReport).Methods("GET")

	// User management (admin only): the public register endpoint never
	// assigns staff roles, these routes do.
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(auth.Middleware)
	admin.Use(auth.RequireRoles(db.RolAdmin))
	admin.HandleFunc("/users", authHandler.CreateUser).Methods("POST")
	admin.HandleFunc("/users/{cedula}", authHandler.DeactivateUser).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@every 30m", func() {
		if err := jobSvc.CancelStalePendingRentals(); err != nil {
			log.Printf("ALERTA: %v", err)
		}
	})
	c.AddFunc("@hourly", func() {
		if err := jobSvc.NotifyOverdueRentals(); err != nil {
			log.Printf("ALERTA: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsOrigins := gorillahandlers.AllowedOrigins([]string{os.Getenv("FRONTEND_URL")})
	corsMethods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	corsHeaders := gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"})
	handler := gorillahandlers.CORS(corsOrigins, corsMethods, corsHeaders, gorillahandlers.AllowCredentials())(r)
	handler = gorillahandlers.CompressHandler(handler)
	handler = gorillahandlers.LoggingHandler(os.Stdout, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
