package inventory_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
)

var errDB = errors.New("conexión rechazada")

var allModes = []inventory.ReadMode{inventory.ReadSequential, inventory.ReadParallel, inventory.ReadSnapshot}

func rec(product int64, size string, color, qty int64) entity.MovementRecord {
	return entity.MovementRecord{ProductID: product, SizeCode: size, ColorID: color, Qty: qty}
}

func ptr[T any](v T) *T { return &v }

// newAggregator agregador sobre un libro en memoria.
func newAggregator(l *memory.Ledger, mode inventory.ReadMode, policy inventory.FailurePolicy) *inventory.StockAggregator {
	return inventory.NewStockAggregator(l, l, l, inventory.AggregatorConfig{ReadMode: mode, FailurePolicy: policy}, zerolog.Nop())
}

// flakyRealizations libro de realizaciones que siempre falla y cuenta llamadas.
type flakyRealizations struct {
	calls atomic.Int32
}

func (f *flakyRealizations) ListRealizations(context.Context, repository.MovementFilter) ([]entity.MovementRecord, error) {
	f.calls.Add(1)
	return nil, errDB
}

// failingComputer StockComputer que siempre falla.
type failingComputer struct{}

func (failingComputer) Compute(context.Context, inventory.StockQuery) (entity.StockSnapshot, error) {
	return entity.StockSnapshot{}, errDB
}

// failingProducts catálogo que no responde.
type failingProducts struct{}

func (failingProducts) GetDisplayName(context.Context, int64) (string, bool, error) {
	return "", false, errDB
}
