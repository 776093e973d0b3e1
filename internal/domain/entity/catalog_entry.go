package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogEntry representa un SKU registrado en el catálogo (货物编码) con sus atributos descriptivos.
// Quantity es el stock inicial con el que se da de alta; no hay llave foránea hacia los movimientos.
type CatalogEntry struct {
	SKU       string
	Category  string
	Brand     string
	Name      string
	Color     string
	Size      string
	Quantity  int64
	UnitPrice decimal.Decimal // precio de venta, alimenta el resumen de ventas
	CreatedAt time.Time
}
