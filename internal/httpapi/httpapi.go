// Package httpapi exposes the application over a JSON REST surface.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/John09278606492/pos-inventory-system-sub001/internal/service"
)

type Server struct {
	svc  *service.Service
	auth *AuthManager
	log  zerolog.Logger
}

func NewServer(svc *service.Service, auth *AuthManager, log zerolog.Logger) *Server {
	return &Server{svc: svc, auth: auth, log: log}
}

func (s *Server) Router(allowedOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors(allowedOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.requireAuth)

		r.Route("/api/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Post("/", s.handleCreateProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetProduct)
				r.Put("/", s.handleUpdateProduct)
				r.Delete("/", s.handleDeleteProduct)
				r.Get("/financials", s.handleProductFinancials)
				r.Get("/price-history", s.handlePriceHistory)
				r.Get("/description", s.handleProductDescription)
			})
		})
		r.Get("/api/categories", s.handleListCategories)

		r.Route("/api/stock", func(r chi.Router) {
			r.Post("/adjust", s.handleAdjustStock)
			r.Post("/bulk-adjust", s.handleBulkAdjustStock)
			r.Post("/convert", s.handleConvertStock)
			r.Get("/adjustments", s.handleListAdjustments)
		})

		r.Get("/api/sales", s.handleListSales)
		r.Post("/api/sales", s.handleRecordSale)
		r.Get("/api/returns", s.handleListReturns)
		r.Post("/api/returns", s.handleRecordReturn)

		r.Get("/api/dashboard", s.handleDashboard)
		r.Get("/api/reports/inventory.xlsx", s.handleExportReport)

		r.Get("/api/insights", s.handleBusinessInsights)
		r.Get("/api/insights/suggestions", s.handleProductSuggestions)

		r.Route("/api/purchase-orders", func(r chi.Router) {
			r.Get("/", s.handleListPurchaseOrders)
			r.Post("/", s.handleCreatePurchaseOrder)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetPurchaseOrder)
				r.Put("/", s.handleUpdatePurchaseOrder)
				r.Delete("/", s.handleDeletePurchaseOrder)
				r.Post("/status", s.handleTransitionPurchaseOrder)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireRole("admin"))
			r.Get("/api/settings", s.handleGetSettings)
			r.Put("/api/settings", s.handleUpdateSettings)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func cors(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
