package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.RealizationRepository = (*RealizationRepo)(nil)

// RealizationRepo lectura del libro de realizaciones (ventas/salidas) sobre PostgreSQL.
type RealizationRepo struct {
	q Querier
}

// NewRealizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRealizationRepository(q Querier) *RealizationRepo {
	return &RealizationRepo{q: q}
}

// ListRealizations lista las líneas de realización de un producto, opcionalmente de una talla.
func (r *RealizationRepo) ListRealizations(ctx context.Context, f repository.MovementFilter) ([]entity.MovementRecord, error) {
	query, args := movementQuery("realization_items", f)
	list, err := listMovements(ctx, r.q, query, args, f.WithColorNames)
	if err != nil {
		return nil, fmt.Errorf("list realizations: %w", err)
	}
	return list, nil
}
