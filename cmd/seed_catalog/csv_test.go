package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestParseCatalogCSV_EncabezadosEnIngles(t *testing.T) {
	in := "sku,category,brand,name,color,size,quantity,unit_price\n" +
		"A1,Ropa,Acme,Camiseta,Rojo,M,10,12.50\n" +
		",,,,,,,\n" +
		"B2,Calzado,,Tenis,,42,,\n"

	rows, err := parseCatalogCSV(strings.NewReader(in), "utf8")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A1", rows[0].SKU)
	assert.Equal(t, int64(10), rows[0].Quantity)
	assert.Equal(t, "12.5", rows[0].UnitPrice.String())
	assert.Equal(t, "B2", rows[1].SKU)
	assert.Equal(t, int64(0), rows[1].Quantity)
}

func TestParseCatalogCSV_GBK(t *testing.T) {
	utf8 := "货物编码,货物种类,商标,货物名称,颜色,尺码,数量\nC3,上衣,牌子,衬衫,红色,L,5\n"
	gbk, err := simplifiedchinese.GBK.NewEncoder().String(utf8)
	require.NoError(t, err)
	require.NotEqual(t, utf8, gbk)

	rows, err := parseCatalogCSV(strings.NewReader(gbk), "gbk")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "C3", rows[0].SKU)
	assert.Equal(t, "衬衫", rows[0].Name)
	assert.Equal(t, "红色", rows[0].Color)
	assert.Equal(t, int64(5), rows[0].Quantity)
}

func TestParseCatalogCSV_Errores(t *testing.T) {
	_, err := parseCatalogCSV(strings.NewReader("name,color\nx,y\n"), "utf8")
	assert.Error(t, err)

	_, err = parseCatalogCSV(strings.NewReader("sku,quantity\nA1,muchos\n"), "utf8")
	assert.Error(t, err)

	_, err = parseCatalogCSV(strings.NewReader("sku\nA1\n"), "ebcdic")
	assert.Error(t, err)
}
