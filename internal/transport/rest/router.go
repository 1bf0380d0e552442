package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/heitorcapra/contas-backend/internal/account"
	"github.com/heitorcapra/contas-backend/internal/category"
	"github.com/heitorcapra/contas-backend/internal/contact"
	"github.com/heitorcapra/contas-backend/internal/expense"
	"github.com/heitorcapra/contas-backend/internal/transport/middleware"
	"github.com/heitorcapra/contas-backend/internal/transport/swagger"
	"github.com/heitorcapra/contas-backend/internal/vendors"
)

type Handlers struct {
	Expense  *expense.Handler
	Vendor   *vendor.Handler
	Category *category.Handler
	Account  *account.Handler
	Contact  *contact.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Readiness)
		r.Get("/ping", healthHandler.Ping)

		// Everything below is tenant scoped
		r.Group(func(tr chi.Router) {
			tr.Use(middleware.CompanyScope)

			if h := handlers.Expense; h != nil {
				tr.Route("/expenses", func(er chi.Router) {
					er.Post("/", h.CreateExpense)
					er.Get("/", h.ListExpenses)
					er.Get("/{id}", h.GetExpense)
					er.Put("/{id}", h.UpdateExpense)
					er.Delete("/{id}", h.DeleteExpense)

					er.Post("/{id}/submit", h.SubmitExpense)
					er.Post("/{id}/cancel", h.CancelExpense)
					er.Post("/{id}/recompute-status", h.RecomputeStatus)
					er.Get("/{id}/reconciliation", h.GetReconciliation)

					er.Route("/{id}/installments/{installmentID}", func(ir chi.Router) {
						ir.Delete("/", h.RemoveInstallment)
						ir.Post("/payments", h.ApplyPayment)
						ir.Delete("/payments/{paymentID}", h.RevertPayment)
					})
				})
			}

			if h := handlers.Vendor; h != nil {
				tr.Route("/vendors", func(vr chi.Router) {
					vr.Get("/", h.GetVendors)
					vr.Post("/", h.CreateVendor)
					vr.Get("/{id}", h.GetVendor)
					vr.Put("/{id}", h.UpdateVendor)
					vr.Delete("/{id}", h.DeleteVendor)
				})
			}

			if h := handlers.Category; h != nil {
				tr.Route("/categories", func(cr chi.Router) {
					cr.Get("/", h.GetCategories)
					cr.Post("/", h.CreateCategory)
					cr.Get("/{id}", h.GetCategory)
					cr.Put("/{id}", h.UpdateCategory)
					cr.Delete("/{id}", h.DeleteCategory)
				})
			}

			if h := handlers.Account; h != nil {
				tr.Route("/accounts", func(ar chi.Router) {
					ar.Get("/", h.GetAccounts)
					ar.Post("/", h.CreateAccount)
					ar.Get("/{id}", h.GetAccount)
					ar.Put("/{id}", h.UpdateAccount)
					ar.Delete("/{id}", h.DeleteAccount)
				})
			}

			if h := handlers.Contact; h != nil {
				tr.Route("/contacts", func(cr chi.Router) {
					cr.Get("/", h.GetContacts)
					cr.Post("/", h.CreateContact)
					cr.Get("/{id}", h.GetContact)
					cr.Put("/{id}", h.UpdateContact)
					cr.Delete("/{id}", h.DeleteContact)
				})
			}
		})
	})
}
