package http

import (
	"net/http"

	"github.com/frontandrew/rental/internal/delivery/http/middleware"
	"github.com/frontandrew/rental/internal/pkg/config"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	inventoryHandler *InventoryHandler
	galleryHandler   *GalleryHandler
	draftHandler     *DraftHandler
	quoteHandler     *QuoteHandler
	settingsHandler  *SettingsHandler
	config           *config.Config
	logger           logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	inventoryHandler *InventoryHandler,
	galleryHandler *GalleryHandler,
	draftHandler *DraftHandler,
	quoteHandler *QuoteHandler,
	settingsHandler *SettingsHandler,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		inventoryHandler: inventoryHandler,
		galleryHandler:   galleryHandler,
		draftHandler:     draftHandler,
		quoteHandler:     quoteHandler,
		settingsHandler:  settingsHandler,
		config:           config,
		logger:           logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Каталог автомобилей
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", rt.inventoryHandler.ListVehicles)
			r.Post("/", rt.inventoryHandler.CreateVehicle)
			r.Post("/import", rt.inventoryHandler.ImportVehicles)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.inventoryHandler.GetVehicle)
				r.Patch("/", rt.inventoryHandler.UpdateVehicle)
				r.Delete("/", rt.inventoryHandler.DeleteVehicle)

				// Галерея автомобиля
				r.Get("/media", rt.galleryHandler.ListVehicleMedia)
				r.Post("/media", rt.galleryHandler.UploadMedia)
			})
		})

		// Элементы галереи
		r.Route("/media", func(r chi.Router) {
			r.Get("/{id}", rt.galleryHandler.GetMedia)
			r.Delete("/{id}", rt.galleryHandler.DeleteMedia)
		})

		// Черновики смет
		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", rt.draftHandler.CreateDraft)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.draftHandler.GetDraft)
				r.Delete("/", rt.draftHandler.DeleteDraft)
				r.Put("/dates", rt.draftHandler.SetDates)
				r.Put("/client", rt.draftHandler.SetClient)
				r.Post("/finalize", rt.quoteHandler.Finalize)
				r.Route("/vehicles/{vehicleId}", func(r chi.Router) {
					r.Post("/toggle", rt.draftHandler.ToggleVehicle)
					r.Put("/price", rt.draftHandler.SetPrice)
					r.Put("/season", rt.draftHandler.SetSeason)
				})
			})
		})

		// История смет
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.ListQuotes)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.quoteHandler.GetQuote)
				r.Delete("/", rt.quoteHandler.DeleteQuote)
				r.Post("/duplicate", rt.quoteHandler.DuplicateQuote)
				r.Post("/render", rt.quoteHandler.RenderQuote)
				r.Get("/pdf", rt.quoteHandler.GetQuotePDF)
				r.Get("/image", rt.quoteHandler.GetQuoteImage)
			})
		})

		// Настройки компании
		r.Route("/settings", func(r chi.Router) {
			r.Get("/season", rt.settingsHandler.GetSeasonWindow)
			r.Put("/season", rt.settingsHandler.SetSeasonWindow)
			r.Get("/logo", rt.settingsHandler.GetLogo)
			r.Put("/logo", rt.settingsHandler.SetLogo)
		})
	})

	return r
}
