package inventory

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// LedgerTxRunner ejecuta fn con lectores de ambos libros atados a una misma transacción
// de solo lectura, para que las dos lecturas vean el mismo estado de la BD.
type LedgerTxRunner interface {
	RunReadOnly(ctx context.Context, fn func(
		receipts repository.ReceiptRepository,
		realizations repository.RealizationRepository,
	) error) error
}

// StockQuery parámetros de una agregación.
type StockQuery struct {
	ProductID         int64
	SizeCode          *string // nil = todas las tallas
	ResolveColorNames bool
}

// StockComputer fuente única del cálculo de stock; el verificador y el reporte dependen de ella.
type StockComputer interface {
	Compute(ctx context.Context, q StockQuery) (entity.StockSnapshot, error)
}
