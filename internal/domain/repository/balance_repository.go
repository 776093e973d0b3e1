package repository

import (
	"context"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// BalanceRepository define el puerto para el saldo materializado por SKU.
// Las escrituras de cantidades pasan por CompareAndSwap; nunca hay lectura-escritura sin condición.
type BalanceRepository interface {
	// Get devuelve el saldo con su versión; domain.ErrNotFound si el SKU no tiene fila.
	Get(ctx context.Context, sku string) (*entity.SkuBalance, error)
	// Ensure crea una fila en cero si no existe. Idempotente.
	Ensure(ctx context.Context, sku string) error
	// CompareAndSwap escribe next solo si la versión almacenada sigue siendo expectedVersion.
	// Devuelve false (sin error) si otro escritor ganó la carrera.
	CompareAndSwap(ctx context.Context, next *entity.SkuBalance, expectedVersion int64) (bool, error)
	// Upsert inserta la fila (alta de SKU desde el catálogo). Si ya existe, reemplaza atributos y
	// stock inicial pero conserva compras y ventas; current_stock se recalcula.
	Upsert(ctx context.Context, balance *entity.SkuBalance) error
	// Delete elimina la fila; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, sku string) error
	List(ctx context.Context) ([]*entity.SkuBalance, error)
}
