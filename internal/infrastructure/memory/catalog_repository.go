package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var (
	_ repository.CatalogRepository      = (*CatalogRepo)(nil)
	_ repository.SalesSummaryRepository = (*SalesSummaryRepo)(nil)
)

// CatalogRepo catálogo en memoria, único por SKU.
type CatalogRepo struct {
	s *Store
}

// Create inserta la entrada; ErrDuplicate si el SKU ya existe.
func (r *CatalogRepo) Create(ctx context.Context, entry *entity.CatalogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCatalogCreate); err != nil {
		return err
	}
	if _, ok := r.s.catalog[entry.SKU]; ok {
		return fmt.Errorf("sku %s: %w", entry.SKU, domain.ErrDuplicate)
	}
	c := *entry
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.s.now()
	}
	r.s.catalog[entry.SKU] = &c
	r.s.catSeq++
	r.s.catOrder[entry.SKU] = r.s.catSeq
	return nil
}

// Delete elimina por SKU.
func (r *CatalogRepo) Delete(ctx context.Context, sku string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCatalogDelete); err != nil {
		return err
	}
	if _, ok := r.s.catalog[sku]; !ok {
		return domain.NotFound("sku no encontrado en el catálogo")
	}
	delete(r.s.catalog, sku)
	delete(r.s.catOrder, sku)
	return nil
}

// List devuelve el catálogo en orden de alta.
func (r *CatalogRepo) List(ctx context.Context) ([]*entity.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpCatalogList); err != nil {
		return nil, err
	}
	list := make([]*entity.CatalogEntry, 0, len(r.s.catalog))
	for _, e := range r.s.catalog {
		c := *e
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return r.s.catOrder[list[i].SKU] < r.s.catOrder[list[j].SKU] })
	return list, nil
}

// SalesSummaryRepo calcula la vista sales_summary sobre saldos y catálogo.
type SalesSummaryRepo struct {
	s *Store
}

// List une saldos con el precio del catálogo; orden: más vendido primero, luego nombre.
func (r *SalesSummaryRepo) List(ctx context.Context) ([]*entity.SalesSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpSummaryList); err != nil {
		return nil, err
	}
	list := make([]*entity.SalesSummary, 0, len(r.s.balances))
	for sku, b := range r.s.balances {
		row := &entity.SalesSummary{
			Name:         b.Name,
			Category:     b.Category,
			SoldQty:      b.SoldQty,
			CurrentStock: b.CurrentStock,
		}
		if e, ok := r.s.catalog[sku]; ok {
			row.Revenue = e.UnitPrice.Mul(decimal.NewFromInt(b.SoldQty))
		}
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SoldQty != list[j].SoldQty {
			return list[i].SoldQty > list[j].SoldQty
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}
