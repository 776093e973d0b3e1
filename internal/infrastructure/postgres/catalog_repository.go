package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste una entrada; el SKU es llave primaria.
func (r *CatalogRepo) Create(ctx context.Context, e *entity.CatalogEntry) error {
	query := `
		INSERT INTO catalog (sku, category, brand, name, color, size, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.SKU, e.Category, e.Brand, e.Name, e.Color, e.Size, e.Quantity, e.UnitPrice, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %s: %w", e.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert catalog: %w", err)
	}
	return nil
}

// Delete elimina una entrada por SKU.
func (r *CatalogRepo) Delete(ctx context.Context, sku string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM catalog WHERE sku = $1`, sku)
	if err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("sku no encontrado en el catálogo")
	}
	return nil
}

// List devuelve el catálogo en orden de alta.
func (r *CatalogRepo) List(ctx context.Context) ([]*entity.CatalogEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sku, category, brand, name, color, size, quantity, unit_price, created_at
		FROM catalog ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CatalogEntry, 0)
	for rows.Next() {
		var e entity.CatalogEntry
		if err := rows.Scan(&e.SKU, &e.Category, &e.Brand, &e.Name, &e.Color, &e.Size,
			&e.Quantity, &e.UnitPrice, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
