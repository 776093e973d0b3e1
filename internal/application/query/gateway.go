// Package query expone las lecturas tolerantes a fallas para la capa de vista.
// Ninguna lectura devuelve error: ante una falla del almacenamiento se registra un warn,
// se cuenta en métricas y se entrega una lista vacía.
package query

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

// Filter campo -> subcadena buscada (sin distinguir mayúsculas). Todos los campos deben coincidir;
// los valores vacíos y los campos desconocidos se ignoran.
type Filter map[string]string

// Recorder recibe las lecturas fallidas (implementado por metrics.Metrics).
type Recorder interface {
	ReadFailure(projection string)
}

type nopRecorder struct{}

func (nopRecorder) ReadFailure(string) {}

// Gateway lecturas de movimientos, saldos, resumen de ventas y catálogo.
type Gateway struct {
	movements repository.MovementRepository
	balances  repository.BalanceRepository
	summary   repository.SalesSummaryRepository
	catalog   repository.CatalogRepository
	timeout   time.Duration
	rec       Recorder
	log       zerolog.Logger
}

// NewGateway construye el gateway. rec puede ser nil.
func NewGateway(
	movements repository.MovementRepository,
	balances repository.BalanceRepository,
	summary repository.SalesSummaryRepository,
	catalog repository.CatalogRepository,
	timeout time.Duration,
	rec Recorder,
	log zerolog.Logger,
) *Gateway {
	if rec == nil {
		rec = nopRecorder{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Gateway{
		movements: movements,
		balances:  balances,
		summary:   summary,
		catalog:   catalog,
		timeout:   timeout,
		rec:       rec,
		log:       log,
	}
}

var movementFields = map[string]func(*entity.StockMovement) string{
	"sku":   func(m *entity.StockMovement) string { return m.SKU },
	"name":  func(m *entity.StockMovement) string { return m.Name },
	"color": func(m *entity.StockMovement) string { return m.Color },
	"size":  func(m *entity.StockMovement) string { return m.Size },
	"note":  func(m *entity.StockMovement) string { return m.Note },
	"date":  func(m *entity.StockMovement) string { return m.Date.Format("2006-01-02") },
}

var balanceFields = map[string]func(*entity.SkuBalance) string{
	"sku":      func(b *entity.SkuBalance) string { return b.SKU },
	"name":     func(b *entity.SkuBalance) string { return b.Name },
	"category": func(b *entity.SkuBalance) string { return b.Category },
	"brand":    func(b *entity.SkuBalance) string { return b.Brand },
	"color":    func(b *entity.SkuBalance) string { return b.Color },
	"size":     func(b *entity.SkuBalance) string { return b.Size },
}

var summaryFields = map[string]func(*entity.SalesSummary) string{
	"name":     func(s *entity.SalesSummary) string { return s.Name },
	"category": func(s *entity.SalesSummary) string { return s.Category },
}

var catalogFields = map[string]func(*entity.CatalogEntry) string{
	"sku":      func(e *entity.CatalogEntry) string { return e.SKU },
	"name":     func(e *entity.CatalogEntry) string { return e.Name },
	"category": func(e *entity.CatalogEntry) string { return e.Category },
	"brand":    func(e *entity.CatalogEntry) string { return e.Brand },
	"color":    func(e *entity.CatalogEntry) string { return e.Color },
	"size":     func(e *entity.CatalogEntry) string { return e.Size },
}

// ListMovements movimientos de una dirección en orden de inserción.
func (g *Gateway) ListMovements(ctx context.Context, direction entity.Direction, filter Filter) []*entity.StockMovement {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	list, err := g.movements.List(ctx, direction)
	if err != nil {
		g.failed(err, "movements_"+strings.ToLower(string(direction)))
		return []*entity.StockMovement{}
	}
	return apply(list, filter, movementFields)
}

// ListBalances saldos por SKU.
func (g *Gateway) ListBalances(ctx context.Context, filter Filter) []*entity.SkuBalance {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	list, err := g.balances.List(ctx)
	if err != nil {
		g.failed(err, "balances")
		return []*entity.SkuBalance{}
	}
	return apply(list, filter, balanceFields)
}

// ListSalesSummary filas de la vista sales_summary.
func (g *Gateway) ListSalesSummary(ctx context.Context, filter Filter) []*entity.SalesSummary {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	list, err := g.summary.List(ctx)
	if err != nil {
		g.failed(err, "sales_summary")
		return []*entity.SalesSummary{}
	}
	return apply(list, filter, summaryFields)
}

// ListSkus entradas del catálogo en orden de alta.
func (g *Gateway) ListSkus(ctx context.Context, filter Filter) []*entity.CatalogEntry {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	list, err := g.catalog.List(ctx)
	if err != nil {
		g.failed(err, "catalog")
		return []*entity.CatalogEntry{}
	}
	return apply(list, filter, catalogFields)
}

func (g *Gateway) failed(err error, projection string) {
	g.rec.ReadFailure(projection)
	g.log.Warn().Err(err).Str("projection", projection).Msg("lectura fallida, se devuelve lista vacía")
}

func apply[T any](list []*T, filter Filter, fields map[string]func(*T) string) []*T {
	if list == nil {
		return []*T{}
	}
	fold := cases.Fold()
	type term struct {
		get    func(*T) string
		needle string
	}
	var terms []term
	for field, value := range filter {
		get, ok := fields[strings.ToLower(strings.TrimSpace(field))]
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		terms = append(terms, term{get: get, needle: fold.String(value)})
	}
	if len(terms) == 0 {
		return list
	}

	out := make([]*T, 0, len(list))
	for _, item := range list {
		match := true
		for _, t := range terms {
			if !strings.Contains(fold.String(t.get(item)), t.needle) {
				match = false
				break
			}
		}
		if match {
			out = append(out, item)
		}
	}
	return out
}
