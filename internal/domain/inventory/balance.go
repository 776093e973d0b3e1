// Package inventory contiene la aritmética pura del saldo (servicio de dominio, sin E/S).
package inventory

import (
	"errors"
	"math"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// MaxQuantity tope de cantidad por movimiento y de stock inicial.
const MaxQuantity int64 = 1_000_000_000

// ErrOverflow el delta desbordaría compras, ventas o saldo.
var ErrOverflow = errors.New("el ajuste desborda el saldo")

// BalanceDelta es el efecto de uno o más movimientos sobre un saldo.
// Purchased suma a purchased_qty, Sold suma a sold_qty; ambos pueden ser negativos (reversión).
type BalanceDelta struct {
	Purchased int64
	Sold      int64
}

// Net es la variación de current_stock.
func (d BalanceDelta) Net() int64 {
	return d.Purchased - d.Sold
}

// Neg devuelve el delta inverso.
func (d BalanceDelta) Neg() BalanceDelta {
	return BalanceDelta{Purchased: -d.Purchased, Sold: -d.Sold}
}

// DeltaFor traduce un movimiento a su efecto sobre el saldo.
// IN suma a compras, OUT suma a ventas. No hay piso: el saldo puede quedar negativo.
func DeltaFor(direction entity.Direction, quantity int64) BalanceDelta {
	if direction == entity.DirectionOut {
		return BalanceDelta{Sold: quantity}
	}
	return BalanceDelta{Purchased: quantity}
}

// Apply devuelve una copia de b con el delta aplicado y current_stock recalculado
// (current = initial + purchased - sold), de modo que la invariante siempre se conserva.
// ErrOverflow si algún campo saldría del rango de int64; b no cambia.
func Apply(b entity.SkuBalance, d BalanceDelta) (entity.SkuBalance, error) {
	purchased, ok := add(b.PurchasedQty, d.Purchased)
	if !ok {
		return b, ErrOverflow
	}
	sold, ok := add(b.SoldQty, d.Sold)
	if !ok {
		return b, ErrOverflow
	}
	if sold == math.MinInt64 {
		return b, ErrOverflow
	}
	current, ok := add(b.InitialStock, purchased)
	if ok {
		current, ok = add(current, -sold)
	}
	if !ok {
		return b, ErrOverflow
	}
	b.PurchasedQty = purchased
	b.SoldQty = sold
	b.CurrentStock = current
	return b, nil
}

func add(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// Recompute reemplaza compras y ventas por las sumas del libro, conservando el stock inicial.
func Recompute(b entity.SkuBalance, sumIn, sumOut int64) entity.SkuBalance {
	b.PurchasedQty = sumIn
	b.SoldQty = sumOut
	b.CurrentStock = b.InitialStock + sumIn - sumOut
	return b
}
