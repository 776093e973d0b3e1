package memory

import (
	"context"

	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre una copia de catálogo y saldos; si fn no falla, aplica las diferencias.
// Las transacciones se serializan entre sí; las escrituras fuera de una transacción no se bloquean.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repos atados a la copia de trabajo y confirma o descarta.
func (t *TxRunner) Run(ctx context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	before := t.s.snapshot()
	work := before.clone()
	work.parent = t.s

	if err := fn(work.Catalog(), work.Balances()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.commit(before, work)
	return nil
}

// snapshot copia catálogo y saldos bajo el lock.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone()
}

// clone debe llamarse con s.mu tomado (o sobre un Store privado).
func (s *Store) clone() *Store {
	c := NewStore()
	c.now = s.now
	c.catSeq = s.catSeq
	for k, v := range s.balances {
		b := *v
		c.balances[k] = &b
	}
	for k, v := range s.catalog {
		e := *v
		c.catalog[k] = &e
	}
	for k, v := range s.catOrder {
		c.catOrder[k] = v
	}
	return c
}

// commit aplica sobre s solo las filas que la transacción cambió respecto de before.
func (s *Store) commit(before, work *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sku := range union(before.balances, work.balances) {
		old, hadOld := before.balances[sku]
		cur, hasCur := work.balances[sku]
		switch {
		case hasCur && (!hadOld || *old != *cur):
			b := *cur
			s.balances[sku] = &b
		case hadOld && !hasCur:
			delete(s.balances, sku)
		}
	}
	for sku := range union(before.catalog, work.catalog) {
		old, hadOld := before.catalog[sku]
		cur, hasCur := work.catalog[sku]
		switch {
		case hasCur && (!hadOld || *old != *cur):
			e := *cur
			s.catalog[sku] = &e
			if !hadOld {
				s.catSeq++
				s.catOrder[sku] = s.catSeq
			}
		case hadOld && !hasCur:
			delete(s.catalog, sku)
			delete(s.catOrder, sku)
		}
	}
}

func union[V any](a, b map[string]V) map[string]struct{} {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return keys
}

