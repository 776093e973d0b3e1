package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/inventory"
)

func mustApply(t *testing.T, b entity.SkuBalance, d inventory.BalanceDelta) entity.SkuBalance {
	t.Helper()
	got, err := inventory.Apply(b, d)
	require.NoError(t, err)
	return got
}

func TestApply_EntradaYSalida(t *testing.T) {
	b := entity.SkuBalance{SKU: "A1", InitialStock: 10, CurrentStock: 10}

	b = mustApply(t, b, inventory.DeltaFor(entity.DirectionIn, 5))
	b = mustApply(t, b, inventory.DeltaFor(entity.DirectionOut, 2))

	assert.Equal(t, int64(5), b.PurchasedQty)
	assert.Equal(t, int64(2), b.SoldQty)
	assert.Equal(t, int64(13), b.CurrentStock)
	assert.True(t, b.Consistent())
}

func TestApply_PermiteSaldoNegativo(t *testing.T) {
	b := mustApply(t, entity.SkuBalance{SKU: "A1"}, inventory.DeltaFor(entity.DirectionOut, 3))

	assert.Equal(t, int64(-3), b.CurrentStock)
	assert.True(t, b.Consistent())
}

func TestApply_ReversionDejaElSaldoComoAntes(t *testing.T) {
	orig := entity.SkuBalance{SKU: "A1", InitialStock: 4, PurchasedQty: 1, CurrentStock: 5}
	d := inventory.DeltaFor(entity.DirectionIn, 7)

	got := mustApply(t, mustApply(t, orig, d), d.Neg())

	assert.Equal(t, orig, got)
}

func TestApply_DesbordeNoModificaElSaldo(t *testing.T) {
	near := entity.SkuBalance{SKU: "A1", PurchasedQty: math.MaxInt64 - 1, CurrentStock: math.MaxInt64 - 1}

	got, err := inventory.Apply(near, inventory.DeltaFor(entity.DirectionIn, 5))
	assert.ErrorIs(t, err, inventory.ErrOverflow)
	assert.Equal(t, near, got)

	sold := entity.SkuBalance{SKU: "A1", SoldQty: math.MaxInt64 - 1, CurrentStock: -(math.MaxInt64 - 1)}
	_, err = inventory.Apply(sold, inventory.DeltaFor(entity.DirectionOut, 5))
	assert.ErrorIs(t, err, inventory.ErrOverflow)

	// current = initial + purchased - sold también puede desbordar aunque cada campo quepa.
	mixed := entity.SkuBalance{SKU: "A1", InitialStock: math.MaxInt64 - 10, CurrentStock: math.MaxInt64 - 10}
	_, err = inventory.Apply(mixed, inventory.DeltaFor(entity.DirectionIn, 20))
	assert.ErrorIs(t, err, inventory.ErrOverflow)
}

func TestRecompute_ConservaStockInicial(t *testing.T) {
	b := entity.SkuBalance{SKU: "A1", InitialStock: 3, PurchasedQty: 99, SoldQty: 1, CurrentStock: 101}

	got := inventory.Recompute(b, 5, 2)

	assert.Equal(t, int64(6), got.CurrentStock)
	assert.Equal(t, int64(3), got.InitialStock)
	assert.True(t, got.Consistent())
}

func TestDelta_Net(t *testing.T) {
	assert.Equal(t, int64(4), inventory.BalanceDelta{Purchased: 6, Sold: 2}.Net())
	assert.Equal(t, int64(-6), inventory.DeltaFor(entity.DirectionOut, 6).Net())
}
