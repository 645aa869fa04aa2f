package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog_service/internal/domain"
	"catalog_service/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type postgresCategoryRepository struct {
	db    *sql.DB
	retry db.RetryPolicy
	log   *logrus.Logger
}

func NewPostgresCategoryRepository(database *sql.DB, policy db.RetryPolicy, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:    database,
		retry: policy,
		log:   logger,
	}
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id ASC`

	var categories []domain.Category
	err := r.retry.Do(ctx, r.log, "list categories", func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		categories = []domain.Category{}
		for rows.Next() {
			var category domain.Category
			if err := rows.Scan(&category.ID, &category.Name); err != nil {
				return fmt.Errorf("error scanning category row: %w", err)
			}
			categories = append(categories, category)
		}
		return rows.Err()
	})
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}

	r.log.Debugf("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`
	category := &domain.Category{}
	err := r.retry.Do(ctx, r.log, "get category", func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %d not found", id)
			return nil, fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
		}
		r.log.Errorf("Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryWithProducts(ctx context.Context, id int) (*domain.Category, error) {
	query := `
        SELECT c.id, c.name, p.id, p.name, p.price, p.stock
        FROM categories c
        LEFT JOIN products p ON p.category_id = c.id
        WHERE c.id = $1
        ORDER BY p.id ASC`

	var category *domain.Category
	err := r.retry.Do(ctx, r.log, "get category with products", func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		category = nil
		for rows.Next() {
			var (
				catID       int
				catName     string
				productID   sql.NullInt64
				productName sql.NullString
				price       decimal.NullDecimal
				stock       sql.NullInt64
			)
			if err := rows.Scan(&catID, &catName, &productID, &productName, &price, &stock); err != nil {
				return fmt.Errorf("error scanning category product row: %w", err)
			}
			if category == nil {
				category = &domain.Category{ID: catID, Name: catName, Products: []domain.Product{}}
			}
			if !productID.Valid {
				continue
			}
			category.Products = append(category.Products, domain.Product{
				ID:         int(productID.Int64),
				Name:       productName.String,
				Price:      price.Decimal,
				Stock:      int(stock.Int64),
				CategoryID: catID,
			})
		}
		return rows.Err()
	})
	if err != nil {
		r.log.Errorf("Failed to get category %d with products: %v", id, err)
		return nil, fmt.Errorf("could not get category with products: %w", err)
	}
	if category == nil {
		r.log.Warnf("Category with ID %d not found", id)
		return nil, fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}

	owner := &domain.Category{ID: category.ID, Name: category.Name}
	for i := range category.Products {
		category.Products[i].Category = owner
	}
	return category, nil
}

func (r *postgresCategoryRepository) CategoryExists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`
	var exists bool
	err := r.retry.Do(ctx, r.log, "check category exists", func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	})
	if err != nil {
		r.log.Errorf("Failed to check category ID %d exists: %v", id, err)
		return false, fmt.Errorf("could not check category existence: %w", err)
	}
	return exists, nil
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	err := r.retry.DoWrite(ctx, r.log, "create category", func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, category.Name).Scan(&category.ID)
	})
	if err != nil {
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Category created successfully with ID: %d, Name: %s", category.ID, category.Name)
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `UPDATE categories SET name = $1 WHERE id = $2 RETURNING id, name`
	updated := &domain.Category{}
	err := r.retry.DoWrite(ctx, r.log, "update category", func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, category.Name, category.ID).Scan(&updated.ID, &updated.Name)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %d not found for update", category.ID)
			return nil, fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, category.ID)
		}
		r.log.Errorf("Failed to update category ID %d: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	r.log.Infof("Category updated successfully with ID: %d", updated.ID)
	return updated, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	query := `DELETE FROM categories WHERE id = $1`
	var rowsAffected int64
	err := r.retry.DoWrite(ctx, r.log, "delete category", func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		rowsAffected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Category ID %d still referenced by products", id)
			return fmt.Errorf("%w: id %d", domain.ErrCategoryInUse, id)
		}
		r.log.Errorf("Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}

	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %d", id)
		return fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}

	r.log.Infof("Category deleted successfully with ID: %d", id)
	return nil
}
