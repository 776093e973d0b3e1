package entity

import "time"

// Direction indica si un movimiento es entrada (IN) o salida (OUT) de stock.
type Direction string

// Direcciones de movimiento.
const (
	DirectionIn  Direction = "IN"  // entrada (入库)
	DirectionOut Direction = "OUT" // salida (出库)
)

// Valid indica si la dirección es una de las conocidas.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// StockMovement representa un movimiento inmutable del libro de inventario.
// Solo se elimina completo, por ID.
type StockMovement struct {
	ID        string // opaco, asignado al insertar
	Seq       int64  // orden de inserción dentro de su tabla
	Direction Direction
	Date      time.Time
	SKU       string
	Name      string
	Quantity  int64 // siempre positivo; la dirección da el signo
	Note      string
	Color     string
	Size      string
	CreatedAt time.Time
}
