package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"hrdesk-backend/domain/model"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/interfaces/http/rest/handlers"
	"hrdesk-backend/interfaces/http/rest/middleware"
	"hrdesk-backend/pkg/utils"
)

// Router creates and configures the HTTP router
type Router struct {
	store  *persistence.Store
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(store *persistence.Store, logger *zap.Logger) *Router {
	return &Router{store: store, logger: logger}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity())

		backoffice := middleware.RequireRoles(model.RoleManager, model.RoleLead)
		finance := middleware.RequireRoles(model.RoleFinance, model.RoleManager)

		r.Route("/companies", func(r chi.Router) {
			companyHandler := handlers.NewCompanyHandler(rt.store, rt.logger)
			r.With(backoffice).Post("/", companyHandler.Create)
			r.Get("/", companyHandler.List)
			r.Get("/active", companyHandler.ListActive)
			r.Get("/{companyID}", companyHandler.Get)
			r.With(backoffice).Put("/{companyID}", companyHandler.Update)
			r.Get("/{companyID}/spocs", companyHandler.ListSPOCs)
			r.Get("/{companyID}/requirements", companyHandler.ListOpenRequirements)
			r.With(finance).Get("/{companyID}/invoices", companyHandler.ListInvoices)
		})

		r.Route("/spocs", func(r chi.Router) {
			spocHandler := handlers.NewSPOCHandler(rt.store, rt.logger)
			r.With(backoffice).Post("/", spocHandler.Create)
			r.Get("/", spocHandler.List)
			r.Get("/{spocID}", spocHandler.Get)
			r.With(backoffice).Put("/{spocID}", spocHandler.Update)
		})

		r.Route("/requirements", func(r chi.Router) {
			requirementHandler := handlers.NewRequirementHandler(rt.store, rt.logger)
			r.With(backoffice).Post("/", requirementHandler.Create)
			r.Get("/", requirementHandler.List)
			r.Get("/statuses", requirementHandler.ListStatuses)
			r.Get("/{requirementID}", requirementHandler.Get)
			r.Put("/{requirementID}", requirementHandler.Update)
			r.With(backoffice).Put("/{requirementID}/recruiter", requirementHandler.AssignRecruiter)
			r.Get("/{requirementID}/profiles", requirementHandler.Profiles)
			r.Put("/{requirementID}/actively-working", requirementHandler.SetActivelyWorking)
		})

		r.Route("/profiles", func(r chi.Router) {
			profileHandler := handlers.NewProfileHandler(rt.store, rt.logger)
			r.Post("/", profileHandler.Create)
			r.Get("/", profileHandler.List)
			r.Get("/statuses", profileHandler.ListStatuses)
			r.Get("/report", profileHandler.Report)
			r.Post("/process", profileHandler.Process)
			r.Put("/process/{requirementID}/{profileID}", profileHandler.UpdateProcess)
			r.Get("/{profileID}", profileHandler.Get)
			r.Put("/{profileID}", profileHandler.Update)
		})

		r.Route("/invoices", func(r chi.Router) {
			invoiceHandler := handlers.NewInvoiceHandler(rt.store, rt.logger)
			r.Use(finance)
			r.Post("/", invoiceHandler.Create)
			r.Get("/", invoiceHandler.List)
			r.Get("/{invoiceID}", invoiceHandler.Get)
			r.Put("/{invoiceID}", invoiceHandler.Update)
		})

		r.Route("/leaves", func(r chi.Router) {
			leaveHandler := handlers.NewLeaveHandler(rt.store, rt.logger)
			r.Post("/", leaveHandler.Apply)
			r.Get("/mine", leaveHandler.Mine)
			r.Get("/balance", leaveHandler.Balance)
			r.With(backoffice).Get("/", leaveHandler.List)
			r.With(backoffice).Get("/pending", leaveHandler.ListPending)
			r.Get("/{leaveID}", leaveHandler.Get)
			r.With(backoffice).Put("/{leaveID}/approve", leaveHandler.Approve)
			r.With(backoffice).Put("/{leaveID}/reject", leaveHandler.Reject)
		})

		r.Route("/financial-years", func(r chi.Router) {
			fyHandler := handlers.NewFinancialYearHandler(rt.store, rt.logger)
			r.With(backoffice).Post("/", fyHandler.Create)
			r.Get("/", fyHandler.List)
			r.Get("/active", fyHandler.GetActive)
			r.Get("/{yearID}", fyHandler.Get)
			r.With(backoffice).Put("/{yearID}", fyHandler.Update)
			r.With(backoffice).Put("/{yearID}/activate", fyHandler.Activate)
		})

		r.Route("/holidays", func(r chi.Router) {
			holidayHandler := handlers.NewHolidayHandler(rt.store, rt.logger)
			r.With(backoffice).Post("/", holidayHandler.Create)
			r.Get("/year/{yearID}", holidayHandler.ListByYear)
			r.Get("/year/{yearID}/mine", holidayHandler.Mine)
			r.Post("/selections", holidayHandler.Select)
			r.Get("/{holidayID}", holidayHandler.Get)
			r.With(backoffice).Put("/{holidayID}", holidayHandler.Update)
			r.With(backoffice).Delete("/{holidayID}", holidayHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(rt.store, rt.logger)
			r.With(backoffice).Post("/", userHandler.Create)
			r.With(backoffice).Get("/", userHandler.List)
			r.Get("/me", userHandler.Me)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","time":"` + utils.NowRFC3339() + `"}`))
}

// readinessCheck reports whether the storage backend is reachable.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if _, err := rt.store.FinancialYear.GetActive(req.Context()); err != nil {
		rt.logger.Error("readiness probe failed", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
