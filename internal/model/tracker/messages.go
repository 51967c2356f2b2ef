package tracker

import "max.ks1230/budget-tracker/internal/model/customerr"

const (
	maxCategoryName = 50
	maxNotes        = 200
)

const (
	msgCategoryNameRequired    = "Category name is required"
	msgNewCategoryNameRequired = "New category name is required"
	msgCategoryNameTooLong     = "Category name must be at most 50 characters"
	msgCategoryExists          = "Category already exists"
	msgCategoryNotFound        = "Category not found"
	msgCategoryInUse           = "Category has transactions"

	msgTransactionFieldsRequired = "Date, amount, and category_id are required fields"
	msgInvalidDate               = "Invalid date format. Use YYYY-MM-DD."
	msgInvalidAmount             = "Invalid amount"
	msgInvalidCategoryID         = "Invalid category_id"
	msgNotesTooLong              = "Notes must be at most 200 characters"
	msgTransactionNotFound       = "Transaction not found"

	msgUnsupportedPeriod = "Unsupported report period"
)

func validation(msg string) error {
	return &customerr.ValidationError{Err: msg}
}

func notFound(msg string) error {
	return &customerr.NotFoundError{Err: msg}
}

func conflict(msg string) error {
	return &customerr.ConflictError{Err: msg}
}
