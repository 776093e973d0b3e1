package repository

import (
	"context"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia para el catálogo de SKUs (DIP).
type CatalogRepository interface {
	// Create inserta la entrada; domain.ErrDuplicate si el SKU ya existe.
	Create(ctx context.Context, entry *entity.CatalogEntry) error
	// Delete elimina por SKU; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, sku string) error
	List(ctx context.Context) ([]*entity.CatalogEntry, error)
}
