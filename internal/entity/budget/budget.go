package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only date format accepted and produced for transactions.
const DateLayout = "2006-01-02"

type Category struct {
	ID   int64
	Name string
}

type Transaction struct {
	ID         int64
	Date       time.Time
	Amount     decimal.Decimal
	CategoryID int64
	Notes      string
}

// TransactionView is a transaction joined with its category name.
type TransactionView struct {
	Transaction
	Category string
}

type ReportRecord struct {
	Category string
	Amount   decimal.Decimal
}

type Report struct {
	Period  string
	Records []ReportRecord
	Total   decimal.Decimal
}
