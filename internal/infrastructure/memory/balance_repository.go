package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldos en memoria con versión por fila.
type BalanceRepo struct {
	s *Store
}

// Get devuelve una copia del saldo.
func (r *BalanceRepo) Get(ctx context.Context, sku string) (*entity.SkuBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpBalanceGet); err != nil {
		return nil, err
	}
	b, ok := r.s.balances[sku]
	if !ok {
		return nil, domain.NotFound("saldo no encontrado")
	}
	c := *b
	return &c, nil
}

// Ensure crea la fila en cero si no existe.
func (r *BalanceRepo) Ensure(ctx context.Context, sku string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpBalanceEnsure); err != nil {
		return err
	}
	if _, ok := r.s.balances[sku]; !ok {
		r.s.balances[sku] = &entity.SkuBalance{SKU: sku, UpdatedAt: r.s.now()}
	}
	return nil
}

// CompareAndSwap escribe next si la versión almacenada coincide con expectedVersion.
func (r *BalanceRepo) CompareAndSwap(ctx context.Context, next *entity.SkuBalance, expectedVersion int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpBalanceCAS); err != nil {
		return false, err
	}
	cur, ok := r.s.balances[next.SKU]
	if !ok {
		return false, domain.NotFound("saldo no encontrado")
	}
	if cur.Version != expectedVersion {
		return false, nil
	}
	stored := *next
	stored.Version = expectedVersion + 1
	stored.UpdatedAt = r.s.now()
	r.s.balances[next.SKU] = &stored
	next.Version = stored.Version
	next.UpdatedAt = stored.UpdatedAt
	return true, nil
}

// Upsert inserta la fila o, si ya existe, reemplaza atributos y stock inicial conservando
// compras y ventas; la versión siempre avanza.
func (r *BalanceRepo) Upsert(ctx context.Context, balance *entity.SkuBalance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpBalanceUpsert); err != nil {
		return err
	}
	stored := *balance
	stored.Version = 1
	if cur, ok := r.s.balances[balance.SKU]; ok {
		stored.PurchasedQty = cur.PurchasedQty
		stored.SoldQty = cur.SoldQty
		stored.Version = cur.Version + 1
	}
	stored.CurrentStock = stored.InitialStock + stored.PurchasedQty - stored.SoldQty
	stored.UpdatedAt = r.s.now()
	r.s.balances[balance.SKU] = &stored
	*balance = stored
	return nil
}

// Delete elimina la fila.
func (r *BalanceRepo) Delete(ctx context.Context, sku string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpBalanceDelete); err != nil {
		return err
	}
	if _, ok := r.s.balances[sku]; !ok {
		return domain.NotFound("saldo no encontrado")
	}
	delete(r.s.balances, sku)
	return nil
}

// List devuelve copias ordenadas por SKU.
func (r *BalanceRepo) List(ctx context.Context) ([]*entity.SkuBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpBalanceList); err != nil {
		return nil, err
	}
	list := make([]*entity.SkuBalance, 0, len(r.s.balances))
	for _, b := range r.s.balances {
		c := *b
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}
