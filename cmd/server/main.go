package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nirmaanhomes/backend/docs"
	"github.com/nirmaanhomes/backend/internal/config"
	"github.com/nirmaanhomes/backend/internal/data"
	"github.com/nirmaanhomes/backend/internal/database"
	"github.com/nirmaanhomes/backend/internal/handlers"
	mW "github.com/nirmaanhomes/backend/internal/middleware"
	"github.com/nirmaanhomes/backend/internal/services"
)

// @title Nirmaan Homes Backend API
// @version 1.0
// @description API for the Nirmaan Homes marketing site: project catalogue, blog, EMI calculator, appointment booking, and the buyer portal
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.SetDefault("jwt.expiry_hours", 72)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Nirmaan Homes Backend API"
	docs.SwaggerInfo.Description = "API for the Nirmaan Homes marketing site"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize services
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	bookingCfg := config.LoadBookingConfig()

	authService := services.NewAuthService(db, redisClient)
	appointmentService := services.NewAppointmentService(db, redisClient, bookingCfg)
	contactService := services.NewContactService(db)
	catalogService := services.NewCatalogService(redisClient, data.Projects, data.BlogPosts)
	progressService := services.NewProgressService(data.OwnedUnits)
	emiHandler := handlers.NewEMIHandler()

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Static file server for project imagery
	r.Handle("/static/project-images/*", http.StripPrefix("/static/project-images/",
		mW.StaticFileServer("./static/project-images")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/register", authService.Register)
		r.Post("/auth/login", authService.Login)
		r.Post("/auth/logout", authService.Logout)

		r.Get("/projects", catalogService.ListProjects)
		r.Get("/projects/{id}", catalogService.GetProject)
		r.Get("/blog", catalogService.ListPosts)
		r.Get("/blog/{id}", catalogService.GetPost)

		r.Post("/emi/calculate", emiHandler.Calculate)
		r.Post("/contact", contactService.SubmitContactForm)
		r.Post("/newsletter/subscribe", contactService.SubscribeNewsletter)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/auth/account", authService.GetUserAccount)
			r.Put("/auth/preferences", authService.UpdatePreferences)

			r.Get("/appointments", appointmentService.ListAppointments)
			r.Post("/appointments", appointmentService.CreateAppointment)
			r.Put("/appointments/{id}/cancel", appointmentService.CancelAppointment)
			r.Get("/appointments/{id}/pass", appointmentService.VisitPass)

			r.Get("/portal/units", progressService.ListUnits)
			r.Get("/portal/units/{id}", progressService.GetUnit)

			// Admin dashboard endpoints
			r.Group(func(r chi.Router) {
				r.Use(mW.AdminOnly)

				r.Get("/admin/appointments", appointmentService.AdminListAppointments)
				r.Put("/admin/appointments/{id}/status", appointmentService.AdminUpdateStatus)
				r.Delete("/admin/appointments/{id}", appointmentService.AdminDeleteAppointment)
				r.Post("/admin/passes/verify", appointmentService.AdminVerifyPass)
				r.Put("/admin/units/{id}/progress", progressService.AdminUpdateProgress)
			})
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
