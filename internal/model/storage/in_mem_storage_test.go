package storage

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/model/customerr"
)

func Test_OnAddCategory_ShouldRejectDuplicateName(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	first, err := s.AddCategory(ctx, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = s.AddCategory(ctx, "Groceries")
	assert.True(t, errors.Is(err, customerr.ErrDuplicate))
}

func Test_OnRenameCategory_ShouldKeepOwnNameAndRejectOthers(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()
	books, _ := s.AddCategory(ctx, "Books")
	_, _ = s.AddCategory(ctx, "Food")

	renamed, err := s.RenameCategory(ctx, books.ID, "Books")
	require.NoError(t, err)
	assert.Equal(t, "Books", renamed.Name)

	_, err = s.RenameCategory(ctx, books.ID, "Food")
	assert.True(t, errors.Is(err, customerr.ErrDuplicate))

	_, err = s.RenameCategory(ctx, 99, "Other")
	assert.True(t, errors.Is(err, customerr.ErrNotFound))
}

func Test_OnDeleteCategory_ShouldRefuseWhenTransactionsReferenceIt(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()
	c, _ := s.AddCategory(ctx, "Utilities")
	tx, err := s.AddTransaction(ctx, budget.Transaction{
		Date:       time.Date(2023, 10, 31, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(100),
		CategoryID: c.ID,
	})
	require.NoError(t, err)

	assert.True(t, errors.Is(s.DeleteCategory(ctx, c.ID), customerr.ErrInUse))

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	assert.NoError(t, s.DeleteCategory(ctx, c.ID))
	assert.True(t, errors.Is(s.DeleteCategory(ctx, c.ID), customerr.ErrNotFound))
}

func Test_OnAddTransaction_ShouldRequireExistingCategory(t *testing.T) {
	s := NewInMemStorage()

	_, err := s.AddTransaction(context.Background(), budget.Transaction{CategoryID: 7})
	assert.True(t, errors.Is(err, customerr.ErrMissingReference))
}

func Test_OnListTransactions_ShouldJoinCategoryNamesInIDOrder(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()
	food, _ := s.AddCategory(ctx, "Food")
	fun, _ := s.AddCategory(ctx, "Entertainment")
	for _, catID := range []int64{fun.ID, food.ID, fun.ID} {
		_, err := s.AddTransaction(ctx, budget.Transaction{Amount: decimal.NewFromInt(1), CategoryID: catID})
		require.NoError(t, err)
	}

	views, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{views[0].ID, views[1].ID, views[2].ID})
	assert.Equal(t, "Entertainment", views[0].Category)
	assert.Equal(t, "Food", views[1].Category)
}

func Test_OnSaveTransaction_ShouldFailForUnknownID(t *testing.T) {
	s := NewInMemStorage()

	err := s.SaveTransaction(context.Background(), budget.Transaction{ID: 3})
	assert.True(t, errors.Is(err, customerr.ErrNotFound))
}

func Test_OnSaveTransaction_ShouldRequireExistingCategory(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()
	food, _ := s.AddCategory(ctx, "Food")
	tx, err := s.AddTransaction(ctx, budget.Transaction{Amount: decimal.NewFromInt(1), CategoryID: food.ID})
	require.NoError(t, err)

	tx.CategoryID = 9
	err = s.SaveTransaction(ctx, tx)
	assert.True(t, errors.Is(err, customerr.ErrMissingReference))

	views, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Food", views[0].Category)
}
