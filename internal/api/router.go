package api

import (
	"net/http"

	"github.com/authly/authly-rhythm/internal/api/handlers"
	"github.com/authly/authly-rhythm/internal/api/middleware"
	"github.com/authly/authly-rhythm/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	uploadHandler := handlers.NewUploadHandler(services.Upload)
	chartHandler := handlers.NewChartHandler(services.Chart)

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Get("/data/{username}", handlers.Wrap(authHandler.Data))
		r.Post("/signin", handlers.Wrap(authHandler.SignIn))
		r.Post("/register", handlers.Wrap(authHandler.Register))
		r.Post("/upload", handlers.Wrap(uploadHandler.Push))
		r.Get("/upload/{uid}", handlers.Wrap(uploadHandler.Serve))
	})

	// Protected chart routes
	r.Route("/charts", func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))
		r.Get("/", handlers.Wrap(chartHandler.List))
		r.Post("/", handlers.Wrap(chartHandler.Create))
		r.Get("/{id}", handlers.Wrap(chartHandler.Get))
		r.Delete("/{id}", handlers.Wrap(chartHandler.Delete))
	})

	return r
}
