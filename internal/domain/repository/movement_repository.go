package repository

import (
	"context"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (append-only).
// Entradas y salidas viven en tablas separadas; el ID es único entre ambas.
type MovementRepository interface {
	// Append inserta el movimiento y devuelve el ID asignado. No deduplica.
	Append(ctx context.Context, movement *entity.StockMovement) (string, error)
	// Remove borra por ID y devuelve la fila eliminada; domain.ErrNotFound si no existe.
	Remove(ctx context.Context, id string) (*entity.StockMovement, error)
	// List devuelve los movimientos de una dirección en orden de inserción.
	List(ctx context.Context, direction entity.Direction) ([]*entity.StockMovement, error)
	// SumBySKU suma las cantidades sobrevivientes de entradas y salidas de un SKU.
	SumBySKU(ctx context.Context, sku string) (in, out int64, err error)
}
