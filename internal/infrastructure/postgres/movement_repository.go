package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// Una tabla por dirección; los nombres nunca vienen del usuario.
var movementTables = map[entity.Direction]string{
	entity.DirectionIn:  "stock_in_movements",
	entity.DirectionOut: "stock_out_movements",
}

const movementColumns = `id::text, seq, date, sku, name, quantity, note, color, size, created_at`

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el movimiento en la tabla de su dirección y devuelve el ID generado.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.StockMovement) (string, error) {
	table, ok := movementTables[movement.Direction]
	if !ok {
		return "", domain.Validation("dirección inválida")
	}
	id := uuid.New().String()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, date, sku, name, quantity, note, color, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`, table)
	var seq int64
	err := r.q.QueryRow(ctx, query,
		id, movement.Date, movement.SKU, movement.Name, movement.Quantity,
		movement.Note, movement.Color, movement.Size, movement.CreatedAt,
	).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}
	movement.Seq = seq
	return id, nil
}

// Remove borra por ID en una sola sentencia sobre ambas tablas y devuelve la fila eliminada.
// Dos borrados concurrentes del mismo ID: solo uno recibe la fila.
func (r *MovementRepo) Remove(ctx context.Context, id string) (*entity.StockMovement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound("movimiento no encontrado")
	}
	query := `
		WITH d_in AS (
			DELETE FROM stock_in_movements WHERE id = $1
			RETURNING 'IN' AS direction, ` + movementColumns + `
		), d_out AS (
			DELETE FROM stock_out_movements WHERE id = $1
			RETURNING 'OUT' AS direction, ` + movementColumns + `
		)
		SELECT * FROM d_in UNION ALL SELECT * FROM d_out`
	var m entity.StockMovement
	var dir string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&dir, &m.ID, &m.Seq, &m.Date, &m.SKU, &m.Name, &m.Quantity, &m.Note, &m.Color, &m.Size, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("movimiento no encontrado")
		}
		return nil, fmt.Errorf("delete movement: %w", err)
	}
	m.Direction = entity.Direction(dir)
	return &m, nil
}

// List devuelve los movimientos de una dirección en orden de inserción.
func (r *MovementRepo) List(ctx context.Context, direction entity.Direction) ([]*entity.StockMovement, error) {
	table, ok := movementTables[direction]
	if !ok {
		return nil, domain.Validation("dirección inválida")
	}
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM `+table+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m := entity.StockMovement{Direction: direction}
		if err := rows.Scan(&m.ID, &m.Seq, &m.Date, &m.SKU, &m.Name, &m.Quantity,
			&m.Note, &m.Color, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumBySKU suma las cantidades de ambas tablas para un SKU (usa los índices por sku).
func (r *MovementRepo) SumBySKU(ctx context.Context, sku string) (int64, int64, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(quantity), 0)::bigint FROM stock_in_movements WHERE sku = $1),
			(SELECT COALESCE(SUM(quantity), 0)::bigint FROM stock_out_movements WHERE sku = $1)`
	var in, out int64
	if err := r.q.QueryRow(ctx, query, sku).Scan(&in, &out); err != nil {
		return 0, 0, fmt.Errorf("sum movements: %w", err)
	}
	return in, out, nil
}
