package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// DateLayout formato de fecha de los movimientos (día calendario).
const DateLayout = "2006-01-02"

// RecordMovementFromRequest adapta el request HTTP a RecordMovement(ctx, direction, MovementInput).
// direction llega tal cual de la ruta ("in", "out", "IN", "OUT").
func (c *Coordinator) RecordMovementFromRequest(ctx context.Context, direction string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	dir := entity.Direction(strings.ToUpper(strings.TrimSpace(direction)))
	input := MovementInput{
		SKU:      in.SKU,
		Name:     in.Name,
		Quantity: in.Quantity,
		Note:     in.Note,
		Color:    in.Color,
		Size:     in.Size,
	}
	if d := strings.TrimSpace(in.Date); d != "" {
		parsed, err := time.Parse(DateLayout, d)
		if err != nil {
			return nil, domain.Validation("date debe tener formato YYYY-MM-DD")
		}
		input.Date = parsed
	}
	mov, err := c.RecordMovement(ctx, dir, input)
	if mov == nil {
		return nil, err
	}
	// En ErrPartialFailure el movimiento existe: se devuelve junto con el error.
	return ToMovementResponse(mov), err
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		Seq:       m.Seq,
		Direction: string(m.Direction),
		Date:      m.Date.Format(DateLayout),
		SKU:       m.SKU,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Note:      m.Note,
		Color:     m.Color,
		Size:      m.Size,
		CreatedAt: m.CreatedAt,
	}
}

// ToBalanceResponse convierte el saldo al DTO de salida.
func ToBalanceResponse(b *entity.SkuBalance) *dto.BalanceResponse {
	if b == nil {
		return nil
	}
	return &dto.BalanceResponse{
		SKU:          b.SKU,
		Category:     b.Category,
		Brand:        b.Brand,
		Name:         b.Name,
		Color:        b.Color,
		Size:         b.Size,
		InitialStock: b.InitialStock,
		PurchasedQty: b.PurchasedQty,
		SoldQty:      b.SoldQty,
		CurrentStock: b.CurrentStock,
		UpdatedAt:    b.UpdatedAt,
	}
}
