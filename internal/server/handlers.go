package server

import (
	"net/http"

	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/model/tracker"
)

const (
	msgCategoryCreated    = "Category created successfully"
	msgCategoryUpdated    = "Category updated successfully"
	msgCategoryDeleted    = "Category deleted successfully"
	msgTransactionCreated = "Transaction created successfully"
	msgTransactionUpdated = "Transaction updated successfully"
	msgTransactionDeleted = "Transaction deleted successfully"
	msgInvalidID          = "Invalid id"
)

type categoryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type updatedCategoryJSON struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

type transactionJSON struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	CategoryID int64  `json:"category_id"`
	Notes      string `json:"notes"`
}

type transactionViewJSON struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

type reportRecordJSON struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type reportJSON struct {
	Period  string             `json:"period"`
	Records []reportRecordJSON `json:"records"`
	Total   string             `json:"total"`
}

func toCategoriesJSON(categories []budget.Category) []categoryJSON {
	res := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		res = append(res, categoryJSON{ID: c.ID, Name: c.Name})
	}
	return res
}

func toTransactionJSON(tx budget.Transaction) transactionJSON {
	return transactionJSON{
		ID:         tx.ID,
		Date:       tx.Date.Format(budget.DateLayout),
		Amount:     tx.Amount.String(),
		CategoryID: tx.CategoryID,
		Notes:      tx.Notes,
	}
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.ListCategories(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": toCategoriesJSON(categories),
	})
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	categories, err := s.service.CreateCategory(r.Context(), req.Name.Value)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    msgCategoryCreated,
		"categories": toCategoriesJSON(categories),
	})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req categoryRequest
	if err = decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	category, err := s.service.UpdateCategory(r.Context(), id, req.Name.Value)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  msgCategoryUpdated,
		"category": updatedCategoryJSON{CategoryID: category.ID, Name: category.Name},
	})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	categories, err := s.service.DeleteCategory(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    msgCategoryDeleted,
		"categories": toCategoriesJSON(categories),
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	tx, err := s.service.CreateTransaction(r.Context(), tracker.TransactionInput{
		Date:       req.Date.Value,
		Amount:     req.Amount.Value,
		CategoryID: req.CategoryID.Value,
		Notes:      req.Notes.Value,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     msgTransactionCreated,
		"transaction": toTransactionJSON(tx),
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	views, err := s.service.ListTransactions(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	res := make([]transactionViewJSON, 0, len(views))
	for _, v := range views {
		res = append(res, transactionViewJSON{
			ID:       v.ID,
			Date:     v.Date.Format(budget.DateLayout),
			Amount:   v.Amount.String(),
			Category: v.Category,
			Notes:    v.Notes,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": res,
	})
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req transactionRequest
	if err = decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	tx, err := s.service.UpdateTransaction(r.Context(), id, tracker.TransactionPatch{
		Date:       req.Date.ptr(),
		Amount:     req.Amount.ptr(),
		CategoryID: req.CategoryID.ptr(),
		Notes:      req.Notes.ptr(),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     msgTransactionUpdated,
		"transaction": toTransactionJSON(tx),
	})
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	if err = s.service.DeleteTransaction(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": msgTransactionDeleted,
	})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Report(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeErr(w, err)
		return
	}

	res := reportJSON{
		Period:  report.Period,
		Records: make([]reportRecordJSON, 0, len(report.Records)),
		Total:   report.Total.String(),
	}
	for _, rec := range report.Records {
		res.Records = append(res.Records, reportRecordJSON{Category: rec.Category, Amount: rec.Amount.String()})
	}
	writeJSON(w, http.StatusOK, res)
}
