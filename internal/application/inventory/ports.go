package inventory

import (
	"context"

	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Se usa en el ciclo de vida del SKU: alta/baja en catálogo junto con su fila de saldo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catalogRepo repository.CatalogRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
