package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog_service/internal/domain"
	"catalog_service/pkg/db"

	"github.com/sirupsen/logrus"
)

// productColumns selects a product joined with its category; pair it with scanProduct.
const productColumns = `p.id, p.name, p.price, p.stock, p.category_id, c.id, c.name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var product domain.Product
	category := &domain.Category{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CategoryID,
		&category.ID,
		&category.Name,
	)
	product.Category = category
	return product, err
}

type postgresProductRepository struct {
	db    *sql.DB
	retry db.RetryPolicy
	log   *logrus.Logger
}

func NewPostgresProductRepository(database *sql.DB, policy db.RetryPolicy, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:    database,
		retry: policy,
		log:   logger,
	}
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM products p
        JOIN categories c ON c.id = p.category_id
        ORDER BY p.id ASC`

	var products []domain.Product
	err := r.retry.Do(ctx, r.log, "list products", func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		products = []domain.Product{}
		for rows.Next() {
			product, err := scanProduct(rows)
			if err != nil {
				return fmt.Errorf("error scanning product data: %w", err)
			}
			products = append(products, product)
		}
		return rows.Err()
	})
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.id = $1`

	var product domain.Product
	err := r.retry.Do(ctx, r.log, "get product", func(ctx context.Context) error {
		var err error
		product, err = scanProduct(r.db.QueryRowContext(ctx, query, id))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found", id)
			return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return &product, nil
}

func (r *postgresProductRepository) HasProductsInCategory(ctx context.Context, categoryID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1)`
	var exists bool
	err := r.retry.Do(ctx, r.log, "check category products", func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, categoryID).Scan(&exists)
	})
	if err != nil {
		r.log.Errorf("Failed to check products for category %d: %v", categoryID, err)
		return false, fmt.Errorf("could not check products for category: %w", err)
	}
	return exists, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        WITH p AS (
            INSERT INTO products (name, price, stock, category_id)
            VALUES ($1, $2, $3, $4)
            RETURNING id, name, price, stock, category_id
        )
        SELECT ` + productColumns + `
        FROM p
        JOIN categories c ON c.id = p.category_id`

	var created domain.Product
	err := r.retry.DoWrite(ctx, r.log, "create product", func(ctx context.Context) error {
		var err error
		created, err = scanProduct(r.db.QueryRowContext(ctx, query,
			product.Name, product.Price, product.Stock, product.CategoryID))
		return err
	})
	if err != nil {
		return nil, r.mapWriteError(err, "create", product)
	}
	r.log.Infof("Product created successfully with ID: %d, Name: %s", created.ID, created.Name)
	return &created, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        WITH p AS (
            UPDATE products
            SET name = $1, price = $2, stock = $3, category_id = $4
            WHERE id = $5
            RETURNING id, name, price, stock, category_id
        )
        SELECT ` + productColumns + `
        FROM p
        JOIN categories c ON c.id = p.category_id`

	var updated domain.Product
	err := r.retry.DoWrite(ctx, r.log, "update product", func(ctx context.Context) error {
		var err error
		updated, err = scanProduct(r.db.QueryRowContext(ctx, query,
			product.Name, product.Price, product.Stock, product.CategoryID, product.ID))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found for update", product.ID)
			return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, product.ID)
		}
		return nil, r.mapWriteError(err, "update", product)
	}
	r.log.Infof("Product updated successfully with ID: %d", updated.ID)
	return &updated, nil
}

func (r *postgresProductRepository) mapWriteError(err error, op string, product *domain.Product) error {
	if isForeignKeyViolation(err) {
		r.log.Warnf("Attempted to %s product with non-existent category ID: %d", op, product.CategoryID)
		return fmt.Errorf("%w: id %d", domain.ErrInvalidCategory, product.CategoryID)
	}
	if isValueRejected(err) {
		r.log.Warnf("Store rejected values for product '%s': %v", product.Name, err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidProduct, err)
	}
	r.log.Errorf("Failed to %s product '%s': %v", op, product.Name, err)
	return fmt.Errorf("could not %s product: %w", op, err)
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	var rowsAffected int64
	err := r.retry.DoWrite(ctx, r.log, "delete product", func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		rowsAffected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		r.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	r.log.Infof("Product deleted successfully with ID: %d", id)
	return nil
}
