package domain

import "context"

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id int) (*Category, error)
	// GetCategoryWithProducts loads the category and its products in one joined query.
	GetCategoryWithProducts(ctx context.Context, id int) (*Category, error)
	CategoryExists(ctx context.Context, id int) (bool, error)
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id int) error
}
