package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/store"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server holds what the handlers need. It replaces a package level database
// handle so tests can run against an in-memory store.
type Server struct {
	Invoices *invoicing.Manager
	Settings *invoicing.SettingsStore
	Clients  store.ClientStore

	AuthUser string
	AuthPass string

	// Clock drives listing periods and dashboards; nil means time.Now.
	Clock func() time.Time
}

func (s *Server) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Routes builds the full router: the API under /api/v1 and the swagger UI.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(BasicAuth(s.AuthUser, s.AuthPass))
		r.Use(Owner)

		// Settings
		r.Get("/settings", s.GetSettings)
		r.Put("/settings", s.UpdateSettings)

		// Clients
		r.Get("/clients", s.ListClients)
		r.Post("/clients", s.CreateClient)
		r.Get("/clients/{id}", s.GetClient)
		r.Put("/clients/{id}", s.UpdateClient)
		r.Delete("/clients/{id}", s.DeleteClient)

		// Invoices
		r.Get("/invoices", s.ListInvoices)
		r.Post("/invoices", s.CreateInvoice)
		r.Get("/invoices/export.csv", s.ExportInvoices)
		r.Get("/invoices/{id}", s.GetInvoice)
		r.Put("/invoices/{id}", s.UpdateInvoice)
		r.Delete("/invoices/{id}", s.DeleteInvoice)
		r.Put("/invoices/{id}/status", s.UpdateInvoiceStatus)
		r.Get("/invoices/{id}/duplicate", s.DuplicateInvoice)

		// Dashboard
		r.Get("/dashboard", s.GetDashboard)
		r.Get("/quota", s.GetQuota)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
