package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// ReadMode cómo se leen los dos libros.
type ReadMode string

const (
	ReadSequential ReadMode = "sequential"
	ReadParallel   ReadMode = "parallel"
	// ReadSnapshot lee ambos libros en una sola transacción REPEATABLE READ; requiere LedgerTxRunner.
	ReadSnapshot ReadMode = "snapshot"
)

// AggregatorConfig opciones del agregador.
type AggregatorConfig struct {
	ReadMode      ReadMode
	FailurePolicy FailurePolicy
	Timeout       time.Duration // 0 = hereda del contexto
}

// StockAggregator combina recepciones y realizaciones de un producto en cantidades netas
// por talla/color. No guarda estado entre llamadas ni escribe en los libros.
type StockAggregator struct {
	receipts     repository.ReceiptRepository
	realizations repository.RealizationRepository
	txRunner     LedgerTxRunner
	cfg          AggregatorConfig
	log          zerolog.Logger
}

var _ StockComputer = (*StockAggregator)(nil)

// NewStockAggregator construye el agregador. txRunner puede ser nil; en ese caso ReadSnapshot
// se degrada a lectura secuencial.
func NewStockAggregator(
	receipts repository.ReceiptRepository,
	realizations repository.RealizationRepository,
	txRunner LedgerTxRunner,
	cfg AggregatorConfig,
	log zerolog.Logger,
) *StockAggregator {
	if cfg.ReadMode == "" {
		cfg.ReadMode = ReadParallel
	}
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = FailEmpty
	}
	if cfg.ReadMode == ReadSnapshot && txRunner == nil {
		cfg.ReadMode = ReadSequential
	}
	return &StockAggregator{
		receipts:     receipts,
		realizations: realizations,
		txRunner:     txRunner,
		cfg:          cfg,
		log:          log.With().Str("component", "stock_aggregator").Logger(),
	}
}

// ComputeStock calcula el snapshot aplicando la política de fallo configurada.
// Con FailEmpty nunca devuelve error.
func (a *StockAggregator) ComputeStock(ctx context.Context, productID int64, sizeCode *string, resolveColorNames bool) (entity.StockSnapshot, error) {
	q := StockQuery{ProductID: productID, SizeCode: sizeCode, ResolveColorNames: resolveColorNames}
	snap, err := a.Compute(ctx, q)
	return a.cfg.FailurePolicy.resolve(a.log, q, snap, err)
}

// Policy devuelve la política de fallo configurada.
func (a *StockAggregator) Policy() FailurePolicy {
	return a.cfg.FailurePolicy
}

// Compute lee ambos libros y los concilia. Devuelve el error de acceso a datos sin ocultarlo.
func (a *StockAggregator) Compute(ctx context.Context, q StockQuery) (entity.StockSnapshot, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	f := repository.MovementFilter{
		ProductID:      q.ProductID,
		SizeCode:       q.SizeCode,
		WithColorNames: q.ResolveColorNames,
	}

	var (
		receipts, realizations []entity.MovementRecord
		err                    error
	)
	switch a.cfg.ReadMode {
	case ReadParallel:
		receipts, realizations, err = a.fetchParallel(ctx, f)
	case ReadSnapshot:
		err = a.txRunner.RunReadOnly(ctx, func(rec repository.ReceiptRepository, rea repository.RealizationRepository) error {
			var ferr error
			receipts, realizations, ferr = fetchSequential(ctx, rec, rea, f)
			return ferr
		})
	default:
		receipts, realizations, err = fetchSequential(ctx, a.receipts, a.realizations, f)
	}
	if err != nil {
		return entity.EmptySnapshot(q.ProductID, sizeLabel(q.SizeCode)), err
	}

	snap := invdomain.Reconcile(q.ProductID, sizeLabel(q.SizeCode), receipts, realizations)
	if snap.OrphanedRealizations > 0 {
		a.log.Warn().
			Int64("product_id", q.ProductID).
			Int("orphaned_realizations", snap.OrphanedRealizations).
			Int64("orphaned_qty", snap.OrphanedQuantity).
			Msg("realizaciones sin recepción para su talla/color")
	}
	return snap, nil
}

func (a *StockAggregator) fetchParallel(ctx context.Context, f repository.MovementFilter) (receipts, realizations []entity.MovementRecord, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		receipts, err = a.receipts.ListReceipts(gctx, f)
		if err != nil {
			return fmt.Errorf("recepciones: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		realizations, err = a.realizations.ListRealizations(gctx, withoutNames(f))
		if err != nil {
			return fmt.Errorf("realizaciones: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return receipts, realizations, nil
}

func fetchSequential(
	ctx context.Context,
	rec repository.ReceiptRepository,
	rea repository.RealizationRepository,
	f repository.MovementFilter,
) ([]entity.MovementRecord, []entity.MovementRecord, error) {
	receipts, err := rec.ListReceipts(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("recepciones: %w", err)
	}
	realizations, err := rea.ListRealizations(ctx, withoutNames(f))
	if err != nil {
		return nil, nil, fmt.Errorf("realizaciones: %w", err)
	}
	return receipts, realizations, nil
}

// withoutNames las realizaciones nunca necesitan nombres de color: los buckets vienen de recepciones.
func withoutNames(f repository.MovementFilter) repository.MovementFilter {
	f.WithColorNames = false
	return f
}
