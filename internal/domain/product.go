package domain

import "context"

// ProductRepository returns products with Category resolved on every read and write.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id int) (*Product, error)
	HasProductsInCategory(ctx context.Context, categoryID int) (bool, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error
}
