package usecase

import (
	"context"

	"catalog_service/internal/domain"
)

type mockCategoryRepo struct {
	ListCategoriesFn          func(ctx context.Context) ([]domain.Category, error)
	GetCategoryByIDFn         func(ctx context.Context, id int) (*domain.Category, error)
	GetCategoryWithProductsFn func(ctx context.Context, id int) (*domain.Category, error)
	CategoryExistsFn          func(ctx context.Context, id int) (bool, error)
	CreateCategoryFn          func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategoryFn          func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategoryFn          func(ctx context.Context, id int) error
}

func (m *mockCategoryRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.ListCategoriesFn(ctx)
}

func (m *mockCategoryRepo) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	return m.GetCategoryByIDFn(ctx, id)
}

func (m *mockCategoryRepo) GetCategoryWithProducts(ctx context.Context, id int) (*domain.Category, error) {
	return m.GetCategoryWithProductsFn(ctx, id)
}

func (m *mockCategoryRepo) CategoryExists(ctx context.Context, id int) (bool, error) {
	return m.CategoryExistsFn(ctx, id)
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return m.CreateCategoryFn(ctx, category)
}

func (m *mockCategoryRepo) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return m.UpdateCategoryFn(ctx, category)
}

func (m *mockCategoryRepo) DeleteCategory(ctx context.Context, id int) error {
	return m.DeleteCategoryFn(ctx, id)
}

type mockProductRepo struct {
	ListProductsFn          func(ctx context.Context) ([]domain.Product, error)
	GetProductByIDFn        func(ctx context.Context, id int) (*domain.Product, error)
	HasProductsInCategoryFn func(ctx context.Context, categoryID int) (bool, error)
	CreateProductFn         func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProductFn         func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProductFn         func(ctx context.Context, id int) error
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.ListProductsFn(ctx)
}

func (m *mockProductRepo) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.GetProductByIDFn(ctx, id)
}

func (m *mockProductRepo) HasProductsInCategory(ctx context.Context, categoryID int) (bool, error) {
	return m.HasProductsInCategoryFn(ctx, categoryID)
}

func (m *mockProductRepo) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return m.CreateProductFn(ctx, product)
}

func (m *mockProductRepo) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return m.UpdateProductFn(ctx, product)
}

func (m *mockProductRepo) DeleteProduct(ctx context.Context, id int) error {
	return m.DeleteProductFn(ctx, id)
}
