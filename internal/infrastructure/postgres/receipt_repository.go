package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo lectura del libro de recepciones sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// ListReceipts lista las líneas de recepción de un producto, opcionalmente de una talla.
// Con WithColorNames hace LEFT JOIN con colors; un color borrado del catálogo deja el nombre vacío.
func (r *ReceiptRepo) ListReceipts(ctx context.Context, f repository.MovementFilter) ([]entity.MovementRecord, error) {
	query, args := movementQuery("receipt_items", f)
	list, err := listMovements(ctx, r.q, query, args, f.WithColorNames)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return list, nil
}
