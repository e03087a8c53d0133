package handlers

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/image"
	"ShareAMeal/internal/middleware"
	"ShareAMeal/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	donations service.Lifecycle,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	enc := image.NewEncoder(service.NewValidator(config.ImageMaxBytes()))
	donationHandler := NewDonationHandler(donations, enc, logger, config)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Donation routes
	r.Get("/api/donations", donationHandler.List)
	r.Post("/api/donations", donationHandler.Create)
	r.Get("/api/donations/{id}", donationHandler.Get)
	r.Delete("/api/donations/{id}", donationHandler.Delete)

	// Image upload → data URI
	r.Post("/api/images", donationHandler.UploadImage)

	return &Handler{Router: r}
}
