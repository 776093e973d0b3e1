// Package memory implementa los puertos de persistencia en proceso (driver "memory" y tests).
// El mutex solo hace atómica cada operación individual, igual que una sentencia SQL;
// la lectura-modificación-escritura del saldo sigue pasando por CompareAndSwap.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
)

// Op identifica una operación de repositorio para inyección de fallas.
type Op string

// Operaciones inyectables.
const (
	OpMovementAppend Op = "movements.append"
	OpMovementRemove Op = "movements.remove"
	OpMovementList   Op = "movements.list"
	OpMovementSum    Op = "movements.sum"
	OpBalanceGet     Op = "balances.get"
	OpBalanceEnsure  Op = "balances.ensure"
	OpBalanceCAS     Op = "balances.cas"
	OpBalanceUpsert  Op = "balances.upsert"
	OpBalanceDelete  Op = "balances.delete"
	OpBalanceList    Op = "balances.list"
	OpCatalogCreate  Op = "catalog.create"
	OpCatalogDelete  Op = "catalog.delete"
	OpCatalogList    Op = "catalog.list"
	OpSummaryList    Op = "summary.list"
)

type fault struct {
	err       error
	remaining int // <0: permanente
}

// Store agrupa las tablas en memoria. Usar Movements(), Balances(), Catalog(), SalesSummary().
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex // serializa transacciones del TxRunner

	// parent != nil en la copia de trabajo de una transacción; las fallas se leen del padre.
	parent *Store

	movements map[entity.Direction][]*entity.StockMovement
	seq       map[entity.Direction]int64
	balances  map[string]*entity.SkuBalance
	catalog   map[string]*entity.CatalogEntry
	catSeq    int64
	catOrder  map[string]int64

	faults map[Op]*fault
	now    func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		movements: map[entity.Direction][]*entity.StockMovement{},
		seq:       map[entity.Direction]int64{},
		balances:  map[string]*entity.SkuBalance{},
		catalog:   map[string]*entity.CatalogEntry{},
		catOrder:  map[string]int64{},
		faults:    map[Op]*fault{},
		now:       time.Now,
	}
}

// Fail hace que op devuelva err en sus próximas times llamadas (times < 0: hasta ClearFaults).
func (s *Store) Fail(op Op, err error, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = &fault{err: err, remaining: times}
}

// ClearFaults elimina todas las fallas inyectadas.
func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = map[Op]*fault{}
}

// injected debe llamarse con s.mu tomado.
func (s *Store) injected(op Op) error {
	if s.parent != nil {
		s.parent.mu.Lock()
		defer s.parent.mu.Unlock()
		return s.parent.injected(op)
	}
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	if f.remaining == 0 {
		delete(s.faults, op)
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
	}
	return f.err
}

// Movements devuelve el libro de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Balances devuelve la tabla de saldos.
func (s *Store) Balances() *BalanceRepo { return &BalanceRepo{s: s} }

// Catalog devuelve el catálogo.
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

// SalesSummary devuelve la vista de resumen de ventas.
func (s *Store) SalesSummary() *SalesSummaryRepo { return &SalesSummaryRepo{s: s} }

// TxRunner devuelve el runner transaccional sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }
