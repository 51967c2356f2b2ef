package reports

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"max.ks1230/budget-tracker/internal/entity/budget"
)

type reportStoreMock struct {
	mock.Mock
}

func (m *reportStoreMock) CacheReport(report budget.Report) error {
	return m.Called(report).Error(0)
}

func Test_OnHandleTransactionEvent_ShouldCacheEveryPeriod(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	storage := &storageMock{}
	storage.On("ListTransactions", ctx).Return([]budget.TransactionView{view("Food", "3", at)}, nil)
	store := &reportStoreMock{}
	store.On("CacheReport", mock.Anything).Return(nil)

	err := NewWarmer(fixedGenerator(storage, at), store).
		HandleTransactionEvent(ctx, budget.TransactionEvent{ID: "e1", Kind: budget.EventCreated})

	assert.NoError(t, err)
	store.AssertNumberOfCalls(t, "CacheReport", 4)
	for _, period := range []string{"", "week", "month", "year"} {
		p := period
		store.AssertCalled(t, "CacheReport", mock.MatchedBy(func(r budget.Report) bool {
			return r.Period == p && r.Total.String() == "3"
		}))
	}
}

func Test_OnHandleTransactionEvent_ShouldStopOnCacheFailure(t *testing.T) {
	ctx := context.Background()
	storage := &storageMock{}
	storage.On("ListTransactions", ctx).Return([]budget.TransactionView{}, nil)
	store := &reportStoreMock{}
	store.On("CacheReport", mock.Anything).Return(errors.New("memcache down")).Once()

	err := NewWarmer(NewGenerator(storage), store).HandleTransactionEvent(ctx, budget.TransactionEvent{})

	assert.EqualError(t, err, "warm reports: memcache down")
	store.AssertNumberOfCalls(t, "CacheReport", 1)
}
