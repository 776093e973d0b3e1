package entity

import "time"

// SkuBalance es el saldo materializado por SKU (tabla balances).
// Se deriva del libro de movimientos pero se persiste aparte para lecturas rápidas.
// Invariante: CurrentStock == InitialStock + PurchasedQty - SoldQty.
type SkuBalance struct {
	SKU          string
	Category     string
	Brand        string
	Color        string
	Size         string
	Name         string
	InitialStock int64
	PurchasedQty int64
	SoldQty      int64
	CurrentStock int64
	Version      int64 // token de concurrencia optimista; cambia en cada escritura
	UpdatedAt    time.Time
}

// Consistent indica si el saldo cumple la invariante.
func (b *SkuBalance) Consistent() bool {
	return b.CurrentStock == b.InitialStock+b.PurchasedQty-b.SoldQty
}
