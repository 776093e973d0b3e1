package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ repository.SalesSummaryRepository = (*SalesSummaryRepo)(nil)

// SalesSummaryRepo lee la vista sales_summary.
type SalesSummaryRepo struct {
	q Querier
}

// NewSalesSummaryRepository construye el adaptador.
func NewSalesSummaryRepository(q Querier) *SalesSummaryRepo {
	return &SalesSummaryRepo{q: q}
}

// List devuelve el resumen, más vendido primero.
func (r *SalesSummaryRepo) List(ctx context.Context) ([]*entity.SalesSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT name, category, sold_qty, current_stock, revenue
		FROM sales_summary
		ORDER BY sold_qty DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list sales summary: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SalesSummary, 0)
	for rows.Next() {
		var s entity.SalesSummary
		if err := rows.Scan(&s.Name, &s.Category, &s.SoldQty, &s.CurrentStock, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan sales summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
