package usecase

import (
	"context"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*domain.Category, error)
	ListCategoryProducts(ctx context.Context, id int) ([]domain.Product, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		log:          logger,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) ListCategoryProducts(ctx context.Context, id int) ([]domain.Product, error) {
	category, err := uc.categoryRepo.GetCategoryWithProducts(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not load products of category ID %d: %v", id, err)
		return nil, err
	}
	if category.Products == nil {
		return []domain.Product{}, nil
	}
	uc.log.Infof("Use Case: Retrieved %d products for category %d", len(category.Products), id)
	return category.Products, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.ID = 0
	uc.log.Infof("Use Case: Attempting to create category with name '%s'", category.Name)
	created, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}
	return created, nil
}

// UpdateCategory overwrites only the name; everything else on the payload is ignored.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	uc.log.Infof("Use Case: Attempting to update category ID %d", category.ID)
	updated, err := uc.categoryRepo.UpdateCategory(ctx, &domain.Category{ID: category.ID, Name: category.Name})
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update category ID %d: %v", category.ID, err)
		return nil, err
	}
	return updated, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int) error {
	exists, err := uc.categoryRepo.CategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		uc.log.Warnf("Use Case: Attempted delete of non-existent category ID %d", id)
		return fmt.Errorf("%w: id %d", domain.ErrCategoryNotFound, id)
	}

	inUse, err := uc.productRepo.HasProductsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		uc.log.Warnf("Use Case: Refusing to delete category ID %d, products still reference it", id)
		return fmt.Errorf("%w: id %d", domain.ErrCategoryInUse, id)
	}

	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}
