package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct {
	s *Store
}

// Append inserta una copia del movimiento con ID y secuencia nuevos.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.StockMovement) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpMovementAppend); err != nil {
		return "", err
	}
	if !movement.Direction.Valid() {
		return "", domain.Validation("dirección inválida")
	}
	m := *movement
	m.ID = uuid.New().String()
	r.s.seq[m.Direction]++
	m.Seq = r.s.seq[m.Direction]
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	r.s.movements[m.Direction] = append(r.s.movements[m.Direction], &m)
	movement.Seq = m.Seq
	return m.ID, nil
}

// Remove elimina por ID en cualquiera de las dos direcciones y devuelve la fila.
func (r *MovementRepo) Remove(ctx context.Context, id string) (*entity.StockMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpMovementRemove); err != nil {
		return nil, err
	}
	for _, dir := range []entity.Direction{entity.DirectionIn, entity.DirectionOut} {
		list := r.s.movements[dir]
		for i, m := range list {
			if m.ID == id {
				r.s.movements[dir] = append(list[:i:i], list[i+1:]...)
				out := *m
				return &out, nil
			}
		}
	}
	return nil, domain.NotFound("movimiento no encontrado")
}

// List devuelve copias en orden de inserción.
func (r *MovementRepo) List(ctx context.Context, direction entity.Direction) ([]*entity.StockMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpMovementList); err != nil {
		return nil, err
	}
	list := make([]*entity.StockMovement, 0, len(r.s.movements[direction]))
	for _, m := range r.s.movements[direction] {
		c := *m
		list = append(list, &c)
	}
	return list, nil
}

// SumBySKU suma cantidades sobrevivientes por dirección.
func (r *MovementRepo) SumBySKU(ctx context.Context, sku string) (int64, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpMovementSum); err != nil {
		return 0, 0, err
	}
	var in, out int64
	for _, m := range r.s.movements[entity.DirectionIn] {
		if m.SKU == sku {
			in += m.Quantity
		}
	}
	for _, m := range r.s.movements[entity.DirectionOut] {
		if m.SKU == sku {
			out += m.Quantity
		}
	}
	return in, out, nil
}
