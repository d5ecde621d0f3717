package inventory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// FailurePolicy decide qué ve el llamador cuando falla la lectura de los libros.
type FailurePolicy string

const (
	// FailEmpty devuelve un snapshot en cero sin error (el producto se ve sin stock).
	FailEmpty FailurePolicy = "empty"
	// FailPropagate devuelve domain.ErrStockUnavailable envolviendo la causa.
	FailPropagate FailurePolicy = "propagate"
)

// ParseFailurePolicy traduce el valor de configuración; cualquier otro valor es FailEmpty.
func ParseFailurePolicy(s string) FailurePolicy {
	if FailurePolicy(s) == FailPropagate {
		return FailPropagate
	}
	return FailEmpty
}

func (p FailurePolicy) resolve(log zerolog.Logger, q StockQuery, snap entity.StockSnapshot, err error) (entity.StockSnapshot, error) {
	if err == nil {
		return snap, nil
	}
	log.Error().Err(err).
		Int64("product_id", q.ProductID).
		Str("size_code", sizeLabel(q.SizeCode)).
		Str("policy", string(p)).
		Msg("falló la lectura de los libros de stock")

	empty := entity.EmptySnapshot(q.ProductID, sizeLabel(q.SizeCode))
	if p == FailPropagate {
		return empty, fmt.Errorf("%w: %v", domain.ErrStockUnavailable, err)
	}
	return empty, nil
}

func sizeLabel(size *string) string {
	if size == nil {
		return ""
	}
	return *size
}
