package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
)

// headerAliases encabezado normalizado -> campo.
var headerAliases = map[string]string{
	"sku": "sku", "货物编码": "sku",
	"category": "category", "货物种类": "category",
	"brand": "brand", "商标": "brand",
	"name": "name", "货物名称": "name",
	"color": "color", "颜色": "color",
	"size": "size", "尺码": "size",
	"quantity": "quantity", "数量": "quantity",
	"unit_price": "unit_price", "单价": "unit_price",
}

// decoder envuelve r según la codificación del archivo (las hojas de cálculo chinas suelen exportar GBK).
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return r, nil
	case "gbk", "gb18030":
		return transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder()), nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// parseCatalogCSV convierte el CSV en solicitudes de alta. Las filas sin sku se ignoran.
func parseCatalogCSV(r io.Reader, encoding string) ([]dto.AddSkuRequest, error) {
	in, err := decoder(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
		if field, ok := headerAliases[strings.ToLower(h)]; ok {
			cols[field] = i
		}
	}
	if _, ok := cols["sku"]; !ok {
		return nil, fmt.Errorf("falta la columna sku (货物编码)")
	}

	var out []dto.AddSkuRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(field string) string {
			i, ok := cols[field]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("sku") == "" {
			continue
		}
		row := dto.AddSkuRequest{
			SKU:      get("sku"),
			Category: get("category"),
			Brand:    get("brand"),
			Name:     get("name"),
			Color:    get("color"),
			Size:     get("size"),
		}
		if q := get("quantity"); q != "" {
			n, err := strconv.ParseInt(q, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, q)
			}
			row.Quantity = n
		}
		if p := get("unit_price"); p != "" {
			d, err := decimal.NewFromString(p)
			if err != nil {
				return nil, fmt.Errorf("línea %d: precio inválido %q", line, p)
			}
			row.UnitPrice = d
		}
		out = append(out, row)
	}
	return out, nil
}
