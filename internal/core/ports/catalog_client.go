package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// CatalogItem is the catalog's view of a product at lookup time.
type CatalogItem struct {
	ID    string
	Name  string
	Price kernel.Money
}

// CatalogClient resolves product identifiers against the external catalog.
type CatalogClient interface {
	// GetItem returns the item and true when the catalog knows productID,
	// and false with a nil error when it does not. A catalog that cannot be
	// reached or does not answer in time yields an
	// errs.DependencyIsUnavailableError.
	GetItem(ctx context.Context, productID string) (CatalogItem, bool, error)
}
