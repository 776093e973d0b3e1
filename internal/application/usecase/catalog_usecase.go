package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stockmanager-api/internal/domain/inventory"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
)

// CatalogUseCase ciclo de vida de un SKU: alta y baja en el catálogo junto con su fila de saldo.
// La fila de saldo se escribe con el BalanceStore atado a la transacción.
// Los movimientos del libro nunca se tocan desde aquí.
type CatalogUseCase struct {
	repo     repository.CatalogRepository
	tx       inventory.TxRunner
	balances *inventory.BalanceStore
	timeout  time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewCatalogUseCase construye el caso de uso. repo se usa para lecturas; las escrituras van por tx.
func NewCatalogUseCase(
	repo repository.CatalogRepository,
	tx inventory.TxRunner,
	balances *inventory.BalanceStore,
	timeout time.Duration,
	log zerolog.Logger,
) *CatalogUseCase {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CatalogUseCase{repo: repo, tx: tx, balances: balances, timeout: timeout, log: log, now: time.Now}
}

// AddSku da de alta el SKU y crea su saldo con initial = quantity, en una sola transacción.
// Si el SKU ya tenía movimientos (fila creada en cero), compras y ventas se conservan.
// Un SKU repetido es ErrInvalidInput envolviendo ErrDuplicate.
func (uc *CatalogUseCase) AddSku(ctx context.Context, in dto.AddSkuRequest) (*dto.CatalogEntryResponse, error) {
	entry := &entity.CatalogEntry{
		SKU:       strings.TrimSpace(in.SKU),
		Category:  strings.TrimSpace(in.Category),
		Brand:     strings.TrimSpace(in.Brand),
		Name:      strings.TrimSpace(in.Name),
		Color:     strings.TrimSpace(in.Color),
		Size:      strings.TrimSpace(in.Size),
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		CreatedAt: uc.now(),
	}
	if entry.SKU == "" {
		return nil, domain.Validation("sku es requerido")
	}
	if entry.Quantity < 0 {
		return nil, domain.Validation("quantity no puede ser negativa")
	}
	if entry.Quantity > invdomain.MaxQuantity {
		return nil, domain.Validation(fmt.Sprintf("quantity no puede superar %d", invdomain.MaxQuantity))
	}
	if entry.UnitPrice.IsNegative() {
		return nil, domain.Validation("unit_price no puede ser negativo")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	err := uc.tx.Run(ctx, func(catalogRepo repository.CatalogRepository, balanceRepo repository.BalanceRepository) error {
		if err := catalogRepo.Create(ctx, entry); err != nil {
			return err
		}
		return uc.balances.WithRepo(balanceRepo).Upsert(ctx, &entity.SkuBalance{
			SKU:          entry.SKU,
			Category:     entry.Category,
			Brand:        entry.Brand,
			Color:        entry.Color,
			Size:         entry.Size,
			Name:         entry.Name,
			InitialStock: entry.Quantity,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.Error{Kind: domain.ErrInvalidInput, Message: "el sku ya existe en el catálogo", Err: domain.ErrDuplicate}
		}
		return nil, storeErr("alta de sku", err)
	}

	uc.log.Info().Str("sku", entry.SKU).Int64("quantity", entry.Quantity).Msg("sku dado de alta")
	return ToCatalogEntryResponse(entry), nil
}

// RemoveSku da de baja el SKU y su fila de saldo. ErrNotFound si el SKU no está en el catálogo;
// la ausencia de la fila de saldo se tolera.
func (uc *CatalogUseCase) RemoveSku(ctx context.Context, sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return domain.Validation("sku es requerido")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	err := uc.tx.Run(ctx, func(catalogRepo repository.CatalogRepository, balanceRepo repository.BalanceRepository) error {
		if err := catalogRepo.Delete(ctx, sku); err != nil {
			return err
		}
		if err := uc.balances.WithRepo(balanceRepo).Remove(ctx, sku); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("sku no encontrado en el catálogo")
		}
		return storeErr("baja de sku", err)
	}

	uc.log.Info().Str("sku", sku).Msg("sku dado de baja")
	return nil
}

// ListSkus lista el catálogo en orden de alta. Los errores se propagan; la versión tolerante
// a fallas es query.Gateway.ListSkus.
func (uc *CatalogUseCase) ListSkus(ctx context.Context) ([]dto.CatalogEntryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, storeErr("listar catálogo", err)
	}
	items := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *ToCatalogEntryResponse(e))
	}
	return items, nil
}

// ToCatalogEntryResponse convierte la entidad al DTO de salida.
func ToCatalogEntryResponse(e *entity.CatalogEntry) *dto.CatalogEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.CatalogEntryResponse{
		SKU:       e.SKU,
		Category:  e.Category,
		Brand:     e.Brand,
		Name:      e.Name,
		Color:     e.Color,
		Size:      e.Size,
		Quantity:  e.Quantity,
		UnitPrice: e.UnitPrice,
		CreatedAt: e.CreatedAt,
	}
}

func storeErr(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Store(op, err)
}
