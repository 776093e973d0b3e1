package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

const balanceColumns = `sku, category, brand, color, size, name,
	initial_stock, purchased_qty, sold_qty, current_stock, version, updated_at`

// BalanceRepo saldos por SKU sobre PostgreSQL (usable con pool o tx).
// Sin SELECT FOR UPDATE: las escrituras de cantidades son UPDATE condicionados a la versión.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

func scanBalance(row pgx.Row) (*entity.SkuBalance, error) {
	var b entity.SkuBalance
	err := row.Scan(&b.SKU, &b.Category, &b.Brand, &b.Color, &b.Size, &b.Name,
		&b.InitialStock, &b.PurchasedQty, &b.SoldQty, &b.CurrentStock, &b.Version, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get obtiene el saldo de un SKU.
func (r *BalanceRepo) Get(ctx context.Context, sku string) (*entity.SkuBalance, error) {
	b, err := scanBalance(r.q.QueryRow(ctx, `SELECT `+balanceColumns+` FROM balances WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("saldo no encontrado")
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// Ensure crea la fila en cero si no existe.
func (r *BalanceRepo) Ensure(ctx context.Context, sku string) error {
	_, err := r.q.Exec(ctx, `INSERT INTO balances (sku) VALUES ($1) ON CONFLICT (sku) DO NOTHING`, sku)
	if err != nil {
		return fmt.Errorf("ensure balance: %w", err)
	}
	return nil
}

// CompareAndSwap actualiza la fila solo si version sigue siendo expectedVersion.
func (r *BalanceRepo) CompareAndSwap(ctx context.Context, next *entity.SkuBalance, expectedVersion int64) (bool, error) {
	query := `
		UPDATE balances SET
			category = $3, brand = $4, color = $5, size = $6, name = $7,
			initial_stock = $8, purchased_qty = $9, sold_qty = $10, current_stock = $11,
			version = version + 1, updated_at = now()
		WHERE sku = $1 AND version = $2
		RETURNING version, updated_at`
	err := r.q.QueryRow(ctx, query,
		next.SKU, expectedVersion,
		next.Category, next.Brand, next.Color, next.Size, next.Name,
		next.InitialStock, next.PurchasedQty, next.SoldQty, next.CurrentStock,
	).Scan(&next.Version, &next.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("cas balance: %w", err)
	}
	return true, nil
}

// Upsert inserta la fila o, si ya existe, reemplaza atributos y stock inicial conservando
// compras y ventas; current_stock se recalcula y la versión avanza.
func (r *BalanceRepo) Upsert(ctx context.Context, b *entity.SkuBalance) error {
	query := `
		INSERT INTO balances (sku, category, brand, color, size, name,
			initial_stock, purchased_qty, sold_qty, current_stock, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $7::bigint + $8::bigint - $9::bigint, 1, now())
		ON CONFLICT (sku) DO UPDATE SET
			category = EXCLUDED.category, brand = EXCLUDED.brand, color = EXCLUDED.color,
			size = EXCLUDED.size, name = EXCLUDED.name,
			initial_stock = EXCLUDED.initial_stock,
			current_stock = EXCLUDED.initial_stock + balances.purchased_qty - balances.sold_qty,
			version = balances.version + 1, updated_at = now()
		RETURNING purchased_qty, sold_qty, current_stock, version, updated_at`
	err := r.q.QueryRow(ctx, query,
		b.SKU, b.Category, b.Brand, b.Color, b.Size, b.Name,
		b.InitialStock, b.PurchasedQty, b.SoldQty,
	).Scan(&b.PurchasedQty, &b.SoldQty, &b.CurrentStock, &b.Version, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// Delete elimina la fila de saldo.
func (r *BalanceRepo) Delete(ctx context.Context, sku string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM balances WHERE sku = $1`, sku)
	if err != nil {
		return fmt.Errorf("delete balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("saldo no encontrado")
	}
	return nil
}

// List devuelve todos los saldos ordenados por SKU.
func (r *BalanceRepo) List(ctx context.Context) ([]*entity.SkuBalance, error) {
	rows, err := r.q.Query(ctx, `SELECT `+balanceColumns+` FROM balances ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SkuBalance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
