package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

//go:embed web/index.html.tmpl web/static
var webFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html.tmpl").
		Funcs(template.FuncMap{
			"date": func(t time.Time) string { return t.Format(budget.DateLayout) },
		}).
		ParseFS(webFS, "web/index.html.tmpl"),
)

func staticFiles() http.Handler {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

type indexData struct {
	Categories   []budget.Category
	Transactions []budget.TransactionView
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := s.service.ListCategories(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	transactions, err := s.service.ListTransactions(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = indexTemplate.Execute(w, indexData{Categories: categories, Transactions: transactions})
	if err != nil {
		logger.Error("failed to render index page", zap.Error(err))
	}
}
