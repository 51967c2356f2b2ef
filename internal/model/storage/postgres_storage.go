package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=%s"

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

//go:embed schema.sql
var schema string

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
	SSLMode() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database(),
		config.SSLMode()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

// Migrate creates missing tables and indexes.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "migrate")
}

func (s *PostgresStorage) Close() {
	if err := s.db.Close(); err != nil {
		logger.Error("error closing database", zap.Error(err))
	}
}

func (s *PostgresStorage) AddCategory(ctx context.Context, name string) (budget.Category, error) {
	query := psql.Insert("categories").
		Columns("name").
		Values(name).
		Suffix("RETURNING id")

	res := budget.Category{Name: name}
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.ID)
	if err != nil {
		return budget.Category{}, errors.Wrap(translate(err), "add category")
	}
	return res, nil
}

func (s *PostgresStorage) GetCategory(ctx context.Context, id int64) (budget.Category, error) {
	query := psql.Select("id", "name").
		From("categories").
		Where(sq.Eq{"id": id})

	var res budget.Category
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.ID, &res.Name)
	if err != nil {
		return budget.Category{}, errors.Wrap(translate(err), "get category")
	}
	return res, nil
}

func (s *PostgresStorage) FindCategoryByName(ctx context.Context, name string) (budget.Category, error) {
	query := psql.Select("id", "name").
		From("categories").
		Where(sq.Eq{"name": name})

	var res budget.Category
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.ID, &res.Name)
	if err != nil {
		return budget.Category{}, errors.Wrap(translate(err), "find category")
	}
	return res, nil
}

func (s *PostgresStorage) ListCategories(ctx context.Context) ([]budget.Category, error) {
	query := psql.Select("id", "name").
		From("categories").
		OrderBy("id")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer closeRows(rows)

	res := make([]budget.Category, 0)
	for rows.Next() {
		var c budget.Category
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errors.Wrap(err, "list categories")
		}
		res = append(res, c)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return res, nil
}

func (s *PostgresStorage) RenameCategory(ctx context.Context, id int64, name string) (budget.Category, error) {
	query := psql.Update("categories").
		Set("name", name).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name")

	var res budget.Category
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.ID, &res.Name)
	if err != nil {
		return budget.Category{}, errors.Wrap(translate(err), "rename category")
	}
	return res, nil
}

func (s *PostgresStorage) DeleteCategory(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	defer rollback(tx)

	var used int64
	err = psql.Select("count(*)").
		From("transactions").
		Where(sq.Eq{"category_id": id}).
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&used)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}

	if used > 0 {
		return errors.Wrap(customerr.ErrInUse, "delete category")
	}

	res, err := psql.Delete("categories").
		Where(sq.Eq{"id": id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if err = expectOneRow(res); err != nil {
		return errors.Wrap(err, "delete category")
	}
	return errors.Wrap(tx.Commit(), "delete category")
}

func (s *PostgresStorage) AddTransaction(ctx context.Context, rec budget.Transaction) (budget.Transaction, error) {
	query := psql.Insert("transactions").
		Columns("date", "amount", "category_id", "notes").
		Values(rec.Date, rec.Amount, rec.CategoryID, rec.Notes).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.ID)
	if err != nil {
		return budget.Transaction{}, errors.Wrap(translate(err), "add transaction")
	}
	return rec, nil
}

func (s *PostgresStorage) GetTransaction(ctx context.Context, id int64) (budget.Transaction, error) {
	query := psql.Select("id", "date", "amount", "category_id", "notes").
		From("transactions").
		Where(sq.Eq{"id": id})

	var res budget.Transaction
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&res.ID, &res.Date, &res.Amount, &res.CategoryID, &res.Notes)
	if err != nil {
		return budget.Transaction{}, errors.Wrap(translate(err), "get transaction")
	}
	return res, nil
}

func (s *PostgresStorage) ListTransactions(ctx context.Context) ([]budget.TransactionView, error) {
	query := psql.Select("t.id", "t.date", "t.amount", "t.category_id", "t.notes", "c.name").
		From("transactions t").
		Join("categories c ON c.id = t.category_id").
		OrderBy("t.id")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	defer closeRows(rows)

	res := make([]budget.TransactionView, 0)
	for rows.Next() {
		var v budget.TransactionView
		err = rows.Scan(&v.ID, &v.Date, &v.Amount, &v.CategoryID, &v.Notes, &v.Category)
		if err != nil {
			return nil, errors.Wrap(err, "list transactions")
		}
		res = append(res, v)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	return res, nil
}

func (s *PostgresStorage) SaveTransaction(ctx context.Context, rec budget.Transaction) error {
	res, err := psql.Update("transactions").
		SetMap(map[string]interface{}{
			"date":        rec.Date,
			"amount":      rec.Amount,
			"category_id": rec.CategoryID,
			"notes":       rec.Notes,
		}).
		Where(sq.Eq{"id": rec.ID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrap(translate(err), "save transaction")
	}
	return errors.Wrap(expectOneRow(res), "save transaction")
}

func (s *PostgresStorage) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := psql.Delete("transactions").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "delete transaction")
	}
	return errors.Wrap(expectOneRow(res), "delete transaction")
}

// translate maps driver errors onto the customerr sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customerr.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return customerr.ErrDuplicate
		case foreignKeyViolation:
			return customerr.ErrMissingReference
		}
	}
	return err
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return customerr.ErrNotFound
	}
	return nil
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Error("error when transaction rollback", zap.Error(err))
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Error("error closing rows", zap.Error(err))
	}
}
