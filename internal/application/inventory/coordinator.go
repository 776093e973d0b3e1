package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/inventory"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

// MovementInput entrada para registrar una entrada o salida de stock.
// SKU y Quantity son obligatorios; Date vacía se toma como el día actual.
type MovementInput struct {
	Date     time.Time
	SKU      string
	Name     string
	Quantity int64
	Note     string
	Color    string
	Size     string
}

// Coordinator orquesta "escribir el movimiento en el libro y luego ajustar el saldo".
//
// Contrato de consistencia:
//   - validación antes de cualquier efecto (domain.ErrInvalidInput);
//   - si falla el libro, no se toca el saldo;
//   - si falla el saldo después de escribir el libro, se devuelve domain.ErrPartialFailure con el ID
//     del movimiento y el movimiento NO se borra: RepairBalance lo reconcilia.
//
// Políticas: eliminar un movimiento revierte su efecto sobre el saldo, y el saldo puede quedar negativo
// (ni las salidas ni las reversiones aplican piso).
type Coordinator struct {
	ledger   repository.MovementRepository
	balances *BalanceStore
	timeout  time.Duration
	rec      Recorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewCoordinator construye el coordinador. timeout limita cada llamada al libro; rec puede ser nil.
func NewCoordinator(
	ledger repository.MovementRepository,
	balances *BalanceStore,
	timeout time.Duration,
	rec Recorder,
	log zerolog.Logger,
) *Coordinator {
	if rec == nil {
		rec = NopRecorder{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Coordinator{
		ledger:   ledger,
		balances: balances,
		timeout:  timeout,
		rec:      rec,
		log:      log,
		now:      time.Now,
	}
}

// StockIn registra una entrada (+quantity a compras y al saldo).
func (c *Coordinator) StockIn(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	return c.record(ctx, entity.DirectionIn, in)
}

// StockOut registra una salida (+quantity a ventas, -quantity al saldo).
func (c *Coordinator) StockOut(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	return c.record(ctx, entity.DirectionOut, in)
}

// RecordMovement despacha por dirección. Punto de entrada de la capa de vista.
func (c *Coordinator) RecordMovement(ctx context.Context, direction entity.Direction, in MovementInput) (*entity.StockMovement, error) {
	if !direction.Valid() {
		return nil, domain.Validation("dirección inválida: use IN u OUT")
	}
	return c.record(ctx, direction, in)
}

func (c *Coordinator) record(ctx context.Context, direction entity.Direction, in MovementInput) (*entity.StockMovement, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		c.rec.MovementRecorded(string(direction), "invalid")
		return nil, domain.Validation("sku es requerido")
	}
	if in.Quantity <= 0 {
		c.rec.MovementRecorded(string(direction), "invalid")
		return nil, domain.Validation("quantity debe ser mayor que cero")
	}
	if in.Quantity > inventory.MaxQuantity {
		c.rec.MovementRecorded(string(direction), "invalid")
		return nil, domain.Validation(fmt.Sprintf("quantity no puede superar %d", inventory.MaxQuantity))
	}

	now := c.now()
	date := in.Date
	if date.IsZero() {
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	mov := &entity.StockMovement{
		Direction: direction,
		Date:      date,
		SKU:       sku,
		Name:      strings.TrimSpace(in.Name),
		Quantity:  in.Quantity,
		Note:      in.Note,
		Color:     strings.TrimSpace(in.Color),
		Size:      strings.TrimSpace(in.Size),
		CreatedAt: now,
	}

	// 1. Libro: si falla, nada cambió.
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	id, err := c.ledger.Append(cctx, mov)
	cancel()
	if err != nil {
		c.rec.MovementRecorded(string(direction), "failed")
		return nil, classify("registrar movimiento", err)
	}
	mov.ID = id

	// 2. Saldo: si falla, el movimiento queda y se informa para reparación.
	current, err := c.balances.Adjust(ctx, sku, inventory.DeltaFor(direction, in.Quantity))
	if err != nil {
		c.rec.MovementRecorded(string(direction), "partial")
		c.rec.PartialFailure(operationName(direction))
		c.log.Error().Err(err).
			Str("movement_id", id).
			Str("sku", sku).
			Str("direction", string(direction)).
			Int64("quantity", in.Quantity).
			Msg("movimiento registrado pero el saldo no se actualizó")
		return mov, domain.PartialFailure(id, err)
	}

	c.rec.MovementRecorded(string(direction), "ok")
	c.log.Info().
		Str("movement_id", id).
		Str("sku", sku).
		Str("direction", string(direction)).
		Int64("quantity", in.Quantity).
		Int64("current_stock", current).
		Msg("movimiento registrado")
	return mov, nil
}

// DeleteMovement elimina el movimiento y revierte su efecto sobre el saldo.
// Un segundo intento con el mismo ID devuelve domain.ErrNotFound sin efectos.
func (c *Coordinator) DeleteMovement(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Validation("id es requerido")
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	removed, err := c.ledger.Remove(cctx, id)
	cancel()
	if err != nil {
		c.rec.MovementDeleted("failed")
		return classify("eliminar movimiento", err)
	}

	reverse := inventory.DeltaFor(removed.Direction, removed.Quantity).Neg()
	if _, err := c.balances.Adjust(ctx, removed.SKU, reverse); err != nil {
		c.rec.MovementDeleted("partial")
		c.rec.PartialFailure("delete_movement")
		c.log.Error().Err(err).
			Str("movement_id", id).
			Str("sku", removed.SKU).
			Msg("movimiento eliminado pero el saldo no se revirtió")
		return domain.PartialFailure(id, err)
	}

	c.rec.MovementDeleted("ok")
	c.log.Info().Str("movement_id", id).Str("sku", removed.SKU).Msg("movimiento eliminado")
	return nil
}

// RepairBalance recalcula compras, ventas y saldo de un SKU a partir de los movimientos sobrevivientes.
// Resuelve ErrPartialFailure y cualquier deriva; el stock inicial se conserva.
// Un movimiento escrito en el libro cuyo ajuste aún no terminó puede contarse dos veces:
// reparar cuando el SKU no tiene escrituras en curso.
func (c *Coordinator) RepairBalance(ctx context.Context, sku string) (*entity.SkuBalance, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.Validation("sku es requerido")
	}

	b, err := c.balances.Rebuild(ctx, sku, c.ledger.SumBySKU)
	if err != nil {
		return nil, err
	}
	c.log.Info().
		Str("sku", sku).
		Int64("purchased_qty", b.PurchasedQty).
		Int64("sold_qty", b.SoldQty).
		Int64("current_stock", b.CurrentStock).
		Msg("saldo reparado desde el libro")
	return b, nil
}

// DeleteBalance elimina la fila de saldo del SKU (库存记录). El libro y el catálogo no se tocan;
// un movimiento posterior vuelve a crear la fila en cero y RepairBalance la reconstruye.
func (c *Coordinator) DeleteBalance(ctx context.Context, sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return domain.Validation("sku es requerido")
	}
	if err := c.balances.Remove(ctx, sku); err != nil {
		return err
	}
	c.log.Info().Str("sku", sku).Msg("fila de saldo eliminada")
	return nil
}

// Balance expone la lectura puntual del saldo (Balance.get).
func (c *Coordinator) Balance(ctx context.Context, sku string) (*entity.SkuBalance, error) {
	return c.balances.Balance(ctx, sku)
}

func operationName(d entity.Direction) string {
	if d == entity.DirectionOut {
		return "stock_out"
	}
	return "stock_in"
}
