package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// MsgCheckFailed mensaje genérico cuando la verificación no pudo completarse.
const MsgCheckFailed = "check failed"

// AvailabilityChecker responde si hay stock suficiente para una cantidad pedida.
// Ante cualquier error falla cerrado: Available=false.
type AvailabilityChecker struct {
	stock    StockComputer
	products repository.ProductRepository
	log      zerolog.Logger
}

// NewAvailabilityChecker construye el verificador sobre la fuente única de stock.
func NewAvailabilityChecker(stock StockComputer, products repository.ProductRepository, log zerolog.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		stock:    stock,
		products: products,
		log:      log.With().Str("component", "availability_checker").Logger(),
	}
}

// CheckAvailability verifica (producto, talla, color). colorID nil solo es válido si la talla
// tiene una única combinación con stock; con varias devuelve el mensaje de domain.ErrAmbiguousColor.
// La cantidad pedida no se valida aquí: es responsabilidad del llamador.
//
// La respuesta es una foto: dos verificaciones concurrentes pueden aprobar ambas la misma unidad.
func (c *AvailabilityChecker) CheckAvailability(ctx context.Context, productID int64, sizeCode string, requestedQty int64, colorID *int64) entity.AvailabilityResult {
	res := entity.AvailabilityResult{RequestedQty: requestedQty}

	size := sizeCode
	snap, err := c.stock.Compute(ctx, StockQuery{ProductID: productID, SizeCode: &size})
	if err != nil {
		c.log.Error().Err(err).Int64("product_id", productID).Str("size_code", sizeCode).
			Msg("verificación de disponibilidad fallida")
		res.Message = MsgCheckFailed
		return res
	}

	entry, err := selectEntry(snap, sizeCode, colorID)
	if err != nil {
		res.Message = err.Error()
		return res
	}

	res.AvailableQty = entry.Qty
	res.Available = res.AvailableQty >= requestedQty
	if !res.Available {
		res.Message = fmt.Sprintf("stock insuficiente para %s (talla %s): solicitado %d, disponible %d",
			c.productLabel(ctx, productID), sizeCode, requestedQty, res.AvailableQty)
	}
	return res
}

// selectEntry elige la entrada de la talla. Sin entrada → cantidad 0.
func selectEntry(snap entity.StockSnapshot, sizeCode string, colorID *int64) (entity.NetStockEntry, error) {
	if colorID != nil {
		// combinación sin stock: la entrada vacía vale 0 unidades
		e, _ := snap.Find(entity.StockKey{SizeCode: sizeCode, ColorID: *colorID})
		return e, nil
	}
	candidates := snap.EntriesForSize(sizeCode)
	switch len(candidates) {
	case 0:
		return entity.NetStockEntry{}, nil
	case 1:
		return candidates[0], nil
	default:
		return entity.NetStockEntry{}, domain.ErrAmbiguousColor
	}
}

func (c *AvailabilityChecker) productLabel(ctx context.Context, productID int64) string {
	name, ok, err := c.products.GetDisplayName(ctx, productID)
	if err != nil {
		c.log.Warn().Err(err).Int64("product_id", productID).Msg("no se pudo leer el nombre del producto")
	}
	if err != nil || !ok || name == "" {
		return fmt.Sprintf("producto #%d", productID)
	}
	return fmt.Sprintf("%q", name)
}

// OrderLine una línea de pedido o realización a validar.
type OrderLine struct {
	ProductID int64
	SizeCode  string
	ColorID   *int64
	Quantity  int64
}

// LineAvailability resultado de una combinación (producto, talla, color) del lote.
type LineAvailability struct {
	ProductID int64
	SizeCode  string
	ColorID   *int64
	entity.AvailabilityResult
}

// BatchAvailability resultado de validar un pedido completo.
type BatchAvailability struct {
	AllAvailable bool
	Lines        []LineAvailability
}

// CheckOrderLines valida todas las líneas de un pedido. Las líneas de la misma combinación
// se suman antes de verificar, en el orden de su primera aparición. Una suma que desborda int64
// se marca no disponible sin consultar los libros.
func (c *AvailabilityChecker) CheckOrderLines(ctx context.Context, lines []OrderLine) BatchAvailability {
	type lineKey struct {
		productID int64
		size      string
		hasColor  bool
		color     int64
	}
	merged := make(map[lineKey]int, len(lines))
	var grouped []OrderLine
	overflow := make(map[int]bool)
	for _, l := range lines {
		k := lineKey{productID: l.ProductID, size: l.SizeCode}
		if l.ColorID != nil {
			k.hasColor, k.color = true, *l.ColorID
		}
		if i, ok := merged[k]; ok {
			if grouped[i].Quantity > 0 && l.Quantity > math.MaxInt64-grouped[i].Quantity {
				overflow[i] = true
				grouped[i].Quantity = math.MaxInt64
				continue
			}
			grouped[i].Quantity += l.Quantity
			continue
		}
		merged[k] = len(grouped)
		grouped = append(grouped, l)
	}

	out := BatchAvailability{AllAvailable: len(grouped) > 0, Lines: make([]LineAvailability, 0, len(grouped))}
	for i, l := range grouped {
		var r entity.AvailabilityResult
		if overflow[i] {
			c.log.Warn().Int64("product_id", l.ProductID).Str("size_code", l.SizeCode).
				Msg("cantidad total de la línea desborda int64")
			r = entity.AvailabilityResult{
				RequestedQty: l.Quantity,
				Message:      fmt.Sprintf("%v: la cantidad total de la línea excede el máximo", domain.ErrInvalidInput),
			}
		} else {
			r = c.CheckAvailability(ctx, l.ProductID, l.SizeCode, l.Quantity, l.ColorID)
		}
		if !r.Available {
			out.AllAvailable = false
		}
		out.Lines = append(out.Lines, LineAvailability{
			ProductID:          l.ProductID,
			SizeCode:           l.SizeCode,
			ColorID:            l.ColorID,
			AvailabilityResult: r,
		})
	}
	return out
}
