package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/domain/inventory"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

var errLostRace = errors.New("la versión del saldo cambió durante la actualización")

// BalanceOptions presupuesto de reintentos y límite de tiempo por llamada al almacenamiento.
type BalanceOptions struct {
	MaxAttempts int           // intentos totales del compare-and-swap (>= 1)
	BaseDelay   time.Duration // espera inicial, se duplica en cada carrera perdida
	MaxDelay    time.Duration // tope de la espera entre intentos
	Timeout     time.Duration // límite por llamada al repositorio
}

func (o BalanceOptions) withDefaults() BalanceOptions {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 8
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = 10 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 500 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	return o
}

// BalanceStore es el saldo materializado por SKU con actualización optimista.
// Cada ajuste lee la fila versionada, calcula el nuevo valor y lo escribe condicionado
// a que la versión no haya cambiado; si otro escritor ganó, reintenta con backoff exponencial.
// Agotado el presupuesto devuelve domain.ErrConflict sin haber escrito nada.
type BalanceStore struct {
	repo repository.BalanceRepository
	opts BalanceOptions
	rec  Recorder
	log  zerolog.Logger
}

// NewBalanceStore construye el store. rec puede ser nil.
func NewBalanceStore(repo repository.BalanceRepository, opts BalanceOptions, rec Recorder, log zerolog.Logger) *BalanceStore {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &BalanceStore{repo: repo, opts: opts.withDefaults(), rec: rec, log: log}
}

// Get devuelve current_stock; domain.ErrNotFound si el SKU no tiene fila de saldo.
func (s *BalanceStore) Get(ctx context.Context, sku string) (int64, error) {
	b, err := s.Balance(ctx, sku)
	if err != nil {
		return 0, err
	}
	return b.CurrentStock, nil
}

// Balance devuelve la fila completa.
func (s *BalanceStore) Balance(ctx context.Context, sku string) (*entity.SkuBalance, error) {
	cctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	b, err := s.repo.Get(cctx, sku)
	if err != nil {
		return nil, classify("leer saldo", err)
	}
	return b, nil
}

// Adjust aplica el delta y devuelve el nuevo current_stock.
func (s *BalanceStore) Adjust(ctx context.Context, sku string, delta inventory.BalanceDelta) (int64, error) {
	b, err := s.update(ctx, sku, func(_ context.Context, cur entity.SkuBalance) (entity.SkuBalance, error) {
		next, err := inventory.Apply(cur, delta)
		if err != nil {
			return cur, &domain.Error{Kind: domain.ErrInvalidInput, Message: "el ajuste desborda el saldo", Err: err}
		}
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	return b.CurrentStock, nil
}

// LedgerSums devuelve las cantidades sobrevivientes de entradas y salidas de un SKU.
type LedgerSums func(ctx context.Context, sku string) (in, out int64, err error)

// Rebuild reemplaza compras y ventas por las sumas del libro (reparación).
// Cada intento lee la versión antes de sumar: si un ajuste concurrente cambia la fila
// entre la suma y el compare-and-swap, el intento se pierde y las sumas se vuelven a leer.
func (s *BalanceStore) Rebuild(ctx context.Context, sku string, sums LedgerSums) (*entity.SkuBalance, error) {
	return s.update(ctx, sku, func(ctx context.Context, cur entity.SkuBalance) (entity.SkuBalance, error) {
		var in, out int64
		if err := s.call(ctx, func(ctx context.Context) error {
			var err error
			in, out, err = sums(ctx, sku)
			return err
		}); err != nil {
			return cur, classify("sumar movimientos", err)
		}
		if err := checkQuantity(in); err != nil {
			return cur, err
		}
		if err := checkQuantity(out); err != nil {
			return cur, err
		}
		return inventory.Recompute(cur, in, out), nil
	})
}

func (s *BalanceStore) update(
	ctx context.Context,
	sku string,
	mutate func(context.Context, entity.SkuBalance) (entity.SkuBalance, error),
) (*entity.SkuBalance, error) {
	start := time.Now()
	defer func() { s.rec.BalanceAdjusted(time.Since(start)) }()

	// Movimientos sobre SKUs sin fila de saldo: la fila nace en cero.
	if err := s.call(ctx, func(ctx context.Context) error { return s.repo.Ensure(ctx, sku) }); err != nil {
		return nil, classify("crear fila de saldo", err)
	}

	var (
		result  entity.SkuBalance
		attempt int
	)
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			s.rec.BalanceRetry()
		}
		var cur *entity.SkuBalance
		if err := s.call(ctx, func(ctx context.Context) error {
			var err error
			cur, err = s.repo.Get(ctx, sku)
			return err
		}); err != nil {
			return err
		}

		next, err := mutate(ctx, *cur)
		if err != nil {
			return err
		}
		var swapped bool
		if err := s.call(ctx, func(ctx context.Context) error {
			var err error
			swapped, err = s.repo.CompareAndSwap(ctx, &next, cur.Version)
			return err
		}); err != nil {
			return err
		}
		if !swapped {
			return retry.RetryableError(errLostRace)
		}
		result = next
		return nil
	})
	if err != nil {
		if errors.Is(err, errLostRace) {
			s.rec.BalanceConflict()
			s.log.Warn().Str("sku", sku).Int("attempts", attempt).Msg("saldo: presupuesto de reintentos agotado")
			return nil, domain.Conflict("el saldo cambió demasiadas veces en paralelo", err)
		}
		return nil, classify("actualizar saldo", err)
	}
	if attempt > 1 {
		s.log.Debug().Str("sku", sku).Int("attempts", attempt).Msg("saldo actualizado tras reintentos")
	}
	return &result, nil
}

// Upsert da de alta la fila de saldo con el stock inicial y los atributos del SKU.
// Si la fila ya existe (movimientos previos al alta) conserva compras y ventas.
func (s *BalanceStore) Upsert(ctx context.Context, balance *entity.SkuBalance) error {
	if err := checkQuantity(balance.InitialStock); err != nil {
		return err
	}
	if err := s.call(ctx, func(ctx context.Context) error { return s.repo.Upsert(ctx, balance) }); err != nil {
		return classify("guardar saldo", err)
	}
	return nil
}

// Remove elimina la fila de saldo; domain.ErrNotFound si no existe. El libro no se toca.
func (s *BalanceStore) Remove(ctx context.Context, sku string) error {
	if err := s.call(ctx, func(ctx context.Context) error { return s.repo.Delete(ctx, sku) }); err != nil {
		return classify("eliminar saldo", err)
	}
	return nil
}

// WithRepo devuelve una copia del store atada a otro repositorio (el de una transacción).
func (s *BalanceStore) WithRepo(repo repository.BalanceRepository) *BalanceStore {
	c := *s
	c.repo = repo
	return &c
}

func checkQuantity(n int64) error {
	if n > inventory.MaxQuantity || n < -inventory.MaxQuantity {
		return domain.Validation(fmt.Sprintf("cantidad fuera de rango (máximo %d)", inventory.MaxQuantity))
	}
	return nil
}

func (s *BalanceStore) backoff() retry.Backoff {
	b := retry.NewExponential(s.opts.BaseDelay)
	b = retry.WithJitterPercent(20, b)
	b = retry.WithCappedDuration(s.opts.MaxDelay, b)
	return retry.WithMaxRetries(uint64(s.opts.MaxAttempts-1), b)
}

func (s *BalanceStore) call(ctx context.Context, fn func(context.Context) error) error {
	cctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return fn(cctx)
}

// classify garantiza que todo error que sale del núcleo tenga un tipo de domain.
func classify(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.Store(op+": operación cancelada o sin respuesta", err)
	}
	return domain.Store(op, err)
}
