package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// MovementFilter criterio de lectura de un libro de movimientos.
type MovementFilter struct {
	ProductID      int64
	SizeCode       *string // nil = todas las tallas
	WithColorNames bool    // join con el catálogo de colores
}

// ReceiptRepository acceso de solo lectura al libro de recepciones (entradas).
type ReceiptRepository interface {
	ListReceipts(ctx context.Context, f MovementFilter) ([]entity.MovementRecord, error)
}

// RealizationRepository acceso de solo lectura al libro de realizaciones (salidas).
type RealizationRepository interface {
	ListRealizations(ctx context.Context, f MovementFilter) ([]entity.MovementRecord, error)
}
