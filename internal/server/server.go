package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/model/tracker"
)

type budgetService interface {
	CreateCategory(ctx context.Context, name string) ([]budget.Category, error)
	ListCategories(ctx context.Context) ([]budget.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (budget.Category, error)
	DeleteCategory(ctx context.Context, id int64) ([]budget.Category, error)

	CreateTransaction(ctx context.Context, in tracker.TransactionInput) (budget.Transaction, error)
	ListTransactions(ctx context.Context) ([]budget.TransactionView, error)
	UpdateTransaction(ctx context.Context, id int64, patch tracker.TransactionPatch) (budget.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	Report(ctx context.Context, period string) (budget.Report, error)
}

type Server struct {
	service budgetService
	router  chi.Router
}

func New(service budgetService) *Server {
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogging)
	r.Use(requestMetrics)
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Handle("/static/*", staticFiles())
	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Post("/", s.createCategory)
		r.Put("/{id:[0-9]+}", s.updateCategory)
		r.Delete("/{id:[0-9]+}", s.deleteCategory)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", s.listTransactions)
		r.Post("/", s.createTransaction)
		r.Put("/{id:[0-9]+}", s.updateTransaction)
		r.Delete("/{id:[0-9]+}", s.deleteTransaction)
	})

	r.Get("/reports", s.report)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
