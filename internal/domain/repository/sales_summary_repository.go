package repository

import (
	"context"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// SalesSummaryRepository lee la vista agregada de ventas. Solo lectura.
type SalesSummaryRepository interface {
	List(ctx context.Context) ([]*entity.SalesSummary, error)
}
