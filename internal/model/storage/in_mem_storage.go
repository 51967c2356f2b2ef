package storage

import (
	"context"
	"sort"
	"sync"

	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/model/customerr"
)

// InMemStorage keeps everything in process memory. Ids are sequential per table
// and never reused.
type InMemStorage struct {
	mu             sync.RWMutex
	categories     map[int64]budget.Category
	transactions   map[int64]budget.Transaction
	lastCategoryID int64
	lastTxID       int64
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		categories:   make(map[int64]budget.Category),
		transactions: make(map[int64]budget.Transaction),
	}
}

func (s *InMemStorage) AddCategory(_ context.Context, name string) (budget.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(name, 0) {
		return budget.Category{}, customerr.ErrDuplicate
	}
	s.lastCategoryID++
	c := budget.Category{ID: s.lastCategoryID, Name: name}
	s.categories[c.ID] = c
	return c, nil
}

func (s *InMemStorage) GetCategory(_ context.Context, id int64) (budget.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return budget.Category{}, customerr.ErrNotFound
	}
	return c, nil
}

func (s *InMemStorage) FindCategoryByName(_ context.Context, name string) (budget.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return budget.Category{}, customerr.ErrNotFound
}

func (s *InMemStorage) ListCategories(_ context.Context) ([]budget.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]budget.Category, 0, len(s.categories))
	for _, c := range s.categories {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (s *InMemStorage) RenameCategory(_ context.Context, id int64, name string) (budget.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return budget.Category{}, customerr.ErrNotFound
	}
	if s.nameTaken(name, id) {
		return budget.Category{}, customerr.ErrDuplicate
	}
	c.Name = name
	s.categories[id] = c
	return c, nil
}

func (s *InMemStorage) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return customerr.ErrNotFound
	}
	for _, tx := range s.transactions {
		if tx.CategoryID == id {
			return customerr.ErrInUse
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *InMemStorage) AddTransaction(_ context.Context, tx budget.Transaction) (budget.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[tx.CategoryID]; !ok {
		return budget.Transaction{}, customerr.ErrMissingReference
	}
	s.lastTxID++
	tx.ID = s.lastTxID
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *InMemStorage) GetTransaction(_ context.Context, id int64) (budget.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return budget.Transaction{}, customerr.ErrNotFound
	}
	return tx, nil
}

func (s *InMemStorage) ListTransactions(_ context.Context) ([]budget.TransactionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]budget.TransactionView, 0, len(s.transactions))
	for _, tx := range s.transactions {
		res = append(res, budget.TransactionView{
			Transaction: tx,
			Category:    s.categories[tx.CategoryID].Name,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (s *InMemStorage) SaveTransaction(_ context.Context, tx budget.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[tx.ID]; !ok {
		return customerr.ErrNotFound
	}
	if _, ok := s.categories[tx.CategoryID]; !ok {
		return customerr.ErrMissingReference
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *InMemStorage) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return customerr.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *InMemStorage) nameTaken(name string, except int64) bool {
	for id, c := range s.categories {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}
