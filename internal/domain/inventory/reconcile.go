package inventory

import "github.com/jhoicas/stock-api/internal/domain/entity"

// Reconcile concilia los dos libros de un producto en cantidades netas por talla/color (servicio de dominio).
//
//	neto(k) = max(0, Σ recepciones(k) - Σ realizaciones(k))
//
// Los buckets se crean solo desde recepciones; una realización sin bucket no descuenta nada y se
// cuenta en OrphanedRealizations. Las entradas salen en el orden en que la talla/color aparece por
// primera vez en recepciones. No modifica los slices recibidos.
func Reconcile(productID int64, sizeCode string, receipts, realizations []entity.MovementRecord) entity.StockSnapshot {
	snap := entity.EmptySnapshot(productID, sizeCode)

	type bucket struct {
		qty       int64
		colorName string
	}
	buckets := make(map[entity.StockKey]*bucket, len(receipts))
	order := make([]entity.StockKey, 0, len(receipts))

	for _, r := range receipts {
		k := r.Key()
		b, ok := buckets[k]
		if !ok {
			b = &bucket{colorName: r.ColorName}
			buckets[k] = b
			order = append(order, k)
		}
		b.qty += r.Qty
	}

	for _, r := range realizations {
		b, ok := buckets[r.Key()]
		if !ok {
			snap.OrphanedRealizations++
			snap.OrphanedQuantity += r.Qty
			continue
		}
		b.qty = floorZero(b.qty - r.Qty)
	}

	for _, k := range order {
		b := buckets[k]
		b.qty = floorZero(b.qty)
		snap.TotalQuantity += b.qty
		if b.qty <= 0 {
			continue
		}
		snap.Entries = append(snap.Entries, entity.NetStockEntry{
			SizeCode:  k.SizeCode,
			ColorID:   k.ColorID,
			ColorName: b.colorName,
			Qty:       b.qty,
		})
	}
	return snap
}

func floorZero(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
