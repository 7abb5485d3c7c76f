package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Pro-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/rs/zerolog"
)

// Services groups the services the router dispatches to.
type Services struct {
	System     *service.SystemService
	Symbols    *service.SymbolService
	Operations *service.OperationService
	Assets     *service.AssetService
	Reports    *service.ReportService
	Transfer   *service.TransferService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/symbol", func(r chi.Router) {
			symbolHandler := handlers.NewSymbolHandler(svc.Symbols)
			r.Get("/", symbolHandler.Symbols)
			r.Post("/", symbolHandler.CreateSymbol)
			r.Delete("/{ticker}", symbolHandler.DeleteSymbol)
		})

		r.Route("/operation", func(r chi.Router) {
			operationHandler := handlers.NewOperationHandler(svc.Operations)
			r.Get("/", operationHandler.Operations)
			r.Post("/", operationHandler.CreateOperation)
			r.Get("/last-mep", operationHandler.LastMEP)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", operationHandler.GetOperation)
				r.Put("/", operationHandler.UpdateOperation)
				r.Delete("/", operationHandler.DeleteOperation)
			})
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Assets)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.With(custommiddleware.ValidateIDMiddleware).Delete("/{id}", assetHandler.DeleteAsset)
		})

		r.Route("/report", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(svc.Reports)
			r.Get("/holdings", reportHandler.Holdings)
			r.Get("/allocation", reportHandler.Allocation)
			r.Get("/net-worth", reportHandler.NetWorth)
			r.Get("/flows", reportHandler.Flows)
			r.Get("/dashboard", reportHandler.Dashboard)
		})

		r.Route("/data", func(r chi.Router) {
			r.Use(custommiddleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log))

			dataHandler := handlers.NewDataHandler(svc.Transfer)
			r.Get("/export", dataHandler.ExportArchive)
			r.Get("/export/{collection}", dataHandler.ExportCollection)
			r.Post("/import/{collection}", dataHandler.Import)
			r.Post("/restore", dataHandler.Restore)
			r.Delete("/", dataHandler.Clear)
		})
	})

	return r
}
