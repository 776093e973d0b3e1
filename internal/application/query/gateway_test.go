package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/memory"
)

type failures struct{ projections []string }

func (f *failures) ReadFailure(p string) { f.projections = append(f.projections, p) }

func newGateway(store *memory.Store, rec query.Recorder) *query.Gateway {
	return query.NewGateway(store.Movements(), store.Balances(), store.SalesSummary(), store.Catalog(),
		time.Second, rec, zerolog.Nop())
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	for _, m := range []entity.StockMovement{
		{Direction: entity.DirectionIn, SKU: "A1", Name: "Camiseta Roja", Color: "Rojo", Quantity: 5},
		{Direction: entity.DirectionIn, SKU: "B2", Name: "Pantalón", Color: "AZUL", Quantity: 2},
		{Direction: entity.DirectionOut, SKU: "A1", Name: "Camiseta Roja", Color: "Rojo", Quantity: 1},
	} {
		m := m
		_, err := store.Movements().Append(ctx, &m)
		require.NoError(t, err)
	}
}

func TestGateway_ListaEnOrdenDeInsercion(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	g := newGateway(store, nil)

	list := g.ListMovements(context.Background(), entity.DirectionIn, nil)
	require.Len(t, list, 2)
	assert.Equal(t, "A1", list[0].SKU)
	assert.Equal(t, "B2", list[1].SKU)
	assert.Less(t, list[0].Seq, list[1].Seq)
}

func TestGateway_FiltroSinDistinguirMayusculas(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	g := newGateway(store, nil)
	ctx := context.Background()

	list := g.ListMovements(ctx, entity.DirectionIn, query.Filter{"color": "azul"})
	require.Len(t, list, 1)
	assert.Equal(t, "B2", list[0].SKU)

	list = g.ListMovements(ctx, entity.DirectionIn, query.Filter{"name": "CAMISETA", "color": "ro"})
	require.Len(t, list, 1)
	assert.Equal(t, "A1", list[0].SKU)

	list = g.ListMovements(ctx, entity.DirectionIn, query.Filter{"name": "camiseta", "color": "azul"})
	assert.Empty(t, list)

	list = g.ListMovements(ctx, entity.DirectionIn, query.Filter{"desconocido": "x", "sku": ""})
	assert.Len(t, list, 2)
}

func TestGateway_FallaDevuelveListaVacia(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	rec := &failures{}
	g := newGateway(store, rec)
	ctx := context.Background()
	boom := errors.New("tabla no existe")

	store.Fail(memory.OpMovementList, boom, -1)
	store.Fail(memory.OpBalanceList, boom, -1)
	store.Fail(memory.OpSummaryList, boom, -1)
	store.Fail(memory.OpCatalogList, boom, -1)

	movs := g.ListMovements(ctx, entity.DirectionOut, nil)
	assert.NotNil(t, movs)
	assert.Empty(t, movs)
	assert.NotNil(t, g.ListBalances(ctx, nil))
	assert.Empty(t, g.ListBalances(ctx, nil))
	assert.NotNil(t, g.ListSalesSummary(ctx, nil))
	assert.NotNil(t, g.ListSkus(ctx, nil))

	assert.Contains(t, rec.projections, "movements_out")
	assert.Contains(t, rec.projections, "balances")
	assert.Contains(t, rec.projections, "sales_summary")
	assert.Contains(t, rec.projections, "catalog")
}

func TestGateway_ResumenDeVentas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Catalog().Create(ctx, &entity.CatalogEntry{
		SKU: "A1", Name: "Camiseta", Category: "Ropa", UnitPrice: decimal.RequireFromString("12.50"),
	}))
	require.NoError(t, store.Balances().Upsert(ctx, &entity.SkuBalance{
		SKU: "A1", Name: "Camiseta", Category: "Ropa", InitialStock: 10, SoldQty: 4, CurrentStock: 6,
	}))
	require.NoError(t, store.Balances().Upsert(ctx, &entity.SkuBalance{
		SKU: "Z9", Name: "Gorra", Category: "Accesorios", SoldQty: 1, CurrentStock: -1,
	}))

	g := newGateway(store, nil)
	rows := g.ListSalesSummary(ctx, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "Camiseta", rows[0].Name)
	assert.True(t, rows[0].Revenue.Equal(decimal.RequireFromString("50")))
	assert.True(t, rows[1].Revenue.IsZero())

	rows = g.ListSalesSummary(ctx, query.Filter{"category": "acces"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Gorra", rows[0].Name)
}
