package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StockPresence respuesta de HasAnyStock.
type StockPresence struct {
	HasStock      bool
	TotalQuantity int64
	Entries       []entity.NetStockEntry
}

// WarehouseReporter vistas de lectura de bodega construidas sobre el cálculo de stock.
type WarehouseReporter struct {
	stock  StockComputer
	policy FailurePolicy
	log    zerolog.Logger
}

// NewWarehouseReporter construye el reporte con la misma política de fallo del agregador.
func NewWarehouseReporter(stock StockComputer, policy FailurePolicy, log zerolog.Logger) *WarehouseReporter {
	return &WarehouseReporter{
		stock:  stock,
		policy: policy,
		log:    log.With().Str("component", "warehouse_reporter").Logger(),
	}
}

// GetStockSummary stock de todas las tallas con nombres de color, para mostrar en catálogo.
func (r *WarehouseReporter) GetStockSummary(ctx context.Context, productID int64) (entity.StockSnapshot, error) {
	q := StockQuery{ProductID: productID, ResolveColorNames: true}
	snap, err := r.stock.Compute(ctx, q)
	return r.policy.resolve(r.log, q, snap, err)
}

// HasAnyStock indica si el producto tiene alguna unidad. Sirve como precondición de edición en catálogo.
func (r *WarehouseReporter) HasAnyStock(ctx context.Context, productID int64) (StockPresence, error) {
	q := StockQuery{ProductID: productID}
	snap, err := r.stock.Compute(ctx, q)
	snap, err = r.policy.resolve(r.log, q, snap, err)
	if err != nil {
		return StockPresence{Entries: []entity.NetStockEntry{}}, err
	}
	return StockPresence{
		HasStock:      snap.TotalQuantity > 0,
		TotalQuantity: snap.TotalQuantity,
		Entries:       snap.Entries,
	}, nil
}
