package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddSkuRequest entrada para dar de alta un SKU en el catálogo.
// Quantity es el stock inicial; el saldo nace con initial = current = quantity.
type AddSkuRequest struct {
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Brand     string          `json:"brand"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CatalogEntryResponse salida de una entrada del catálogo.
type CatalogEntryResponse struct {
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Brand     string          `json:"brand"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}
