package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the root of every "no such row" error.
	ErrNotFound = errors.New("not found")

	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)

	// ErrInvalidCategory is returned when a product points at a category that does not exist.
	ErrInvalidCategory = errors.New("category id does not reference an existing category")

	// ErrInvalidProduct is returned when the store rejects product values, e.g. out of range.
	ErrInvalidProduct = errors.New("product data rejected by the store")

	// ErrCategoryInUse is returned when deleting a category that still owns products.
	ErrCategoryInUse = errors.New("category still has products")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
