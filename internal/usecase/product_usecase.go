package usecase

import (
	"context"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	exists, err := uc.categoryRepo.CategoryExists(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		uc.log.WithField("categoria_id", product.CategoryID).
			Error("Use Case: Attempted to create product with invalid category ID")
		return nil, fmt.Errorf("%w: id %d", domain.ErrInvalidCategory, product.CategoryID)
	}

	product.ID = 0
	product.Category = nil
	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.WithField("nome", created.Name).Info("Use Case: Product created")
	return created, nil
}

// UpdateProduct checks the product first, so a missing product wins over a bad category.
func (uc *productUseCase) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if _, err := uc.productRepo.GetProductByID(ctx, product.ID); err != nil {
		uc.log.Warnf("Use Case: Product ID %d not found for update: %v", product.ID, err)
		return nil, err
	}

	exists, err := uc.categoryRepo.CategoryExists(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		uc.log.WithFields(logrus.Fields{
			"produto_id":   product.ID,
			"categoria_id": product.CategoryID,
		}).Error("Use Case: Attempted to update product with invalid category ID")
		return nil, fmt.Errorf("%w: id %d", domain.ErrInvalidCategory, product.CategoryID)
	}

	product.Category = nil
	updated, err := uc.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product ID %d: %v", product.ID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Product updated successfully for ID %d", updated.ID)
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int) error {
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return err
	}
	return nil
}
