package repository

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"

	"catalog_service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListCategories(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Bebidas").
			AddRow(2, "Limpeza"))

	categories, err := repo.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: 1, Name: "Bebidas"}, {ID: 2, Name: "Limpeza"}}, categories)
}

func TestCategoryRepository_ListCategories_EmptyIsNotNil(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(`SELECT id, name FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	categories, err := repo.ListCategories(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestCategoryRepository_ListCategories_RetriesTransientFailure(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(`SELECT id, name FROM categories`).
		WillReturnError(&pq.Error{Code: "08006"})
	mock.ExpectQuery(`SELECT id, name FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Bebidas"))

	categories, err := repo.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestCategoryRepository_GetCategoryByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories WHERE id = $1`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Bebidas"))

		category, err := repo.GetCategoryByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, &domain.Category{ID: 1, Name: "Bebidas"}, category)
	})

	t.Run("not_found", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories WHERE id = $1`)).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		category, err := repo.GetCategoryByID(context.Background(), 42)

		assert.Nil(t, category)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("permanent_failure", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		boom := errors.New("boom")
		mock.ExpectQuery(`SELECT id, name FROM categories`).WithArgs(1).WillReturnError(boom)

		_, err := repo.GetCategoryByID(context.Background(), 1)

		assert.ErrorIs(t, err, boom)
		assert.False(t, domain.IsNotFound(err))
	})
}

func TestCategoryRepository_GetCategoryWithProducts(t *testing.T) {
	columns := []string{"c.id", "c.name", "p.id", "p.name", "p.price", "p.stock"}

	t.Run("with_products", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(`FROM categories c\s+LEFT JOIN products p`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "Bebidas", 1, "Água", "2.50", 100).
				AddRow(1, "Bebidas", 2, "Suco", "7.90", 12))

		category, err := repo.GetCategoryWithProducts(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 1, category.ID)
		require.Len(t, category.Products, 2)
		assert.Equal(t, "Água", category.Products[0].Name)
		assert.True(t, decimal.RequireFromString("2.50").Equal(category.Products[0].Price))
		assert.Equal(t, 100, category.Products[0].Stock)
		assert.Equal(t, 1, category.Products[1].CategoryID)
		require.NotNil(t, category.Products[1].Category)
		assert.Equal(t, "Bebidas", category.Products[1].Category.Name)
	})

	t.Run("without_products", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(`LEFT JOIN products`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "Vazia", nil, nil, nil, nil))

		category, err := repo.GetCategoryWithProducts(context.Background(), 3)

		require.NoError(t, err)
		assert.NotNil(t, category.Products)
		assert.Empty(t, category.Products)
	})

	t.Run("missing_category", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(`LEFT JOIN products`).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetCategoryWithProducts(context.Background(), 9)

		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestCategoryRepository_CategoryExists(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`)).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.CategoryExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CategoryExists(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_CreateCategory(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (name) VALUES ($1) RETURNING id`)).
		WithArgs("Bebidas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	created, err := repo.CreateCategory(context.Background(), &domain.Category{Name: "Bebidas"})

	require.NoError(t, err)
	assert.Equal(t, &domain.Category{ID: 7, Name: "Bebidas"}, created)
}

func TestCategoryRepository_CreateCategory_AmbiguousFailureNotRetried(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Bebidas").
		WillReturnError(io.ErrUnexpectedEOF)

	_, err := repo.CreateCategory(context.Background(), &domain.Category{Name: "Bebidas"})

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCategoryRepository_CreateCategory_RetriesRejectedConnection(t *testing.T) {
	database, mock, logger := newMockDB(t)
	repo := NewPostgresCategoryRepository(database, testPolicy, logger)

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Bebidas").
		WillReturnError(&pq.Error{Code: "08001"})
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Bebidas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	created, err := repo.CreateCategory(context.Background(), &domain.Category{Name: "Bebidas"})

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestCategoryRepository_UpdateCategory(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE categories SET name = $1 WHERE id = $2 RETURNING id, name`)).
			WithArgs("Refrigerantes", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Refrigerantes"))

		updated, err := repo.UpdateCategory(context.Background(), &domain.Category{ID: 1, Name: "Refrigerantes"})

		require.NoError(t, err)
		assert.Equal(t, &domain.Category{ID: 1, Name: "Refrigerantes"}, updated)
	})

	t.Run("not_found", func(t *testing.T) {
		database, mock, logger := newMockDB(t)
		repo := NewPostgresCategoryRepository(database, testPolicy, logger)

		mock.ExpectQuery(`UPDATE categories`).
			WithArgs("X", 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.UpdateCategory(context.Background(), &domain.Category{ID: 5, Name: "X"})

		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestCategoryRepository_DeleteCategory(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not_found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM categories`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrCategoryNotFound,
		},
		{
			name: "still_referenced",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM categories`).
					WithArgs(1).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: domain.ErrCategoryInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database, mock, logger := newMockDB(t)
			repo := NewPostgresCategoryRepository(database, testPolicy, logger)
			tt.setup(mock)

			err := repo.DeleteCategory(context.Background(), 1)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
