package tracker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/customerr"
)

// CreateCategory adds a category and returns the full category list.
func (s *Service) CreateCategory(ctx context.Context, name string) (categories []budget.Category, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "createCategory")
	defer finishSpan(span, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation(msgCategoryNameRequired)
	}
	if utf8.RuneCountInString(name) > maxCategoryName {
		return nil, validation(msgCategoryNameTooLong)
	}

	_, err = s.storage.FindCategoryByName(ctx, name)
	switch {
	case err == nil:
		return nil, validation(msgCategoryExists)
	case !errors.Is(err, customerr.ErrNotFound):
		return nil, errors.Wrap(err, "create category")
	}

	created, err := s.storage.AddCategory(ctx, name)
	if errors.Is(err, customerr.ErrDuplicate) {
		return nil, validation(msgCategoryExists)
	}
	if err != nil {
		return nil, errors.Wrap(err, "create category")
	}
	logger.Info("category created", zap.Int64("categoryID", created.ID), zap.String("name", name))

	return s.ListCategories(ctx)
}

func (s *Service) ListCategories(ctx context.Context) ([]budget.Category, error) {
	categories, err := s.storage.ListCategories(ctx)
	return categories, errors.Wrap(err, "list categories")
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) (category budget.Category, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "updateCategory")
	defer finishSpan(span, &err)
	span.SetTag("categoryID", id)

	name = strings.TrimSpace(name)
	if name == "" {
		return budget.Category{}, validation(msgNewCategoryNameRequired)
	}
	if utf8.RuneCountInString(name) > maxCategoryName {
		return budget.Category{}, validation(msgCategoryNameTooLong)
	}

	category, err = s.storage.RenameCategory(ctx, id, name)
	switch {
	case errors.Is(err, customerr.ErrNotFound):
		return budget.Category{}, notFound(msgCategoryNotFound)
	case errors.Is(err, customerr.ErrDuplicate):
		return budget.Category{}, validation(msgCategoryExists)
	case err != nil:
		return budget.Category{}, errors.Wrap(err, "update category")
	}

	s.invalidateReports()
	return category, nil
}

// DeleteCategory removes an unused category and returns the remaining list.
func (s *Service) DeleteCategory(ctx context.Context, id int64) (categories []budget.Category, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "deleteCategory")
	defer finishSpan(span, &err)
	span.SetTag("categoryID", id)

	err = s.storage.DeleteCategory(ctx, id)
	switch {
	case errors.Is(err, customerr.ErrNotFound):
		return nil, notFound(msgCategoryNotFound)
	case errors.Is(err, customerr.ErrInUse):
		return nil, conflict(msgCategoryInUse)
	case err != nil:
		return nil, errors.Wrap(err, "delete category")
	}
	logger.Info("category deleted", zap.Int64("categoryID", id))

	return s.ListCategories(ctx)
}
