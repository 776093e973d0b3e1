package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

func sampleBalances() []*entity.SkuBalance {
	return []*entity.SkuBalance{
		{SKU: "A1", Name: "Camiseta", Category: "Ropa", InitialStock: 10, PurchasedQty: 5, SoldQty: 2, CurrentStock: 13},
		{SKU: "B2", Name: "Gorra", SoldQty: 3, CurrentStock: -3},
	}
}

func TestBalancesXLSX(t *testing.T) {
	data, err := BalancesXLSX(sampleBalances())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Saldos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "SKU", rows[0][0])
	assert.Equal(t, "A1", rows[1][0])
	assert.Equal(t, "13", rows[1][9])
	assert.Equal(t, "-3", rows[2][9])
}

func TestSalesSummaryXLSX(t *testing.T) {
	data, err := SalesSummaryXLSX([]*entity.SalesSummary{
		{Name: "Camiseta", Category: "Ropa", SoldQty: 4, CurrentStock: 6, Revenue: decimal.RequireFromString("50")},
		{Name: "Abrigo", Category: "Ropa", SoldQty: 3, CurrentStock: 1, Revenue: decimal.RequireFromString("90071992547409.93")},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Camiseta", "Ropa", "4", "6", "50.00"}, rows[1])
	assert.Equal(t, "90071992547409.93", rows[2][4])
}

func TestBalancePDF(t *testing.T) {
	data, err := BalancePDF("Saldos de inventario", sampleBalances(), time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "25.000", formatThousands(25000))
	assert.Equal(t, "1.000.000", formatThousands(1000000))
	assert.Equal(t, "-1.500", formatThousands(-1500))
}
