package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// Ledger libros de recepciones y realizaciones en memoria, con catálogo de productos y colores.
// Seguro para uso concurrente.
type Ledger struct {
	mu           sync.RWMutex
	receipts     []entity.MovementRecord
	realizations []entity.MovementRecord
	products     map[int64]string
	colors       map[int64]string
}

var (
	_ repository.ReceiptRepository     = (*Ledger)(nil)
	_ repository.RealizationRepository = (*Ledger)(nil)
	_ repository.ProductRepository     = (*Ledger)(nil)
	_ inventory.LedgerTxRunner         = (*Ledger)(nil)
)

// NewLedger crea libros vacíos.
func NewLedger() *Ledger {
	return &Ledger{
		products: map[int64]string{},
		colors:   map[int64]string{},
	}
}

// AddReceipt agrega líneas al libro de recepciones.
func (l *Ledger) AddReceipt(recs ...entity.MovementRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.receipts = append(l.receipts, recs...)
}

// AddRealization agrega líneas al libro de realizaciones.
func (l *Ledger) AddRealization(recs ...entity.MovementRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.realizations = append(l.realizations, recs...)
}

// AddProduct registra el nombre visible de un producto.
func (l *Ledger) AddProduct(p entity.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products[p.ID] = p.Name
}

// AddColor registra un color del catálogo.
func (l *Ledger) AddColor(c entity.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colors[c.ID] = c.Name
}

func (l *Ledger) ListReceipts(ctx context.Context, f repository.MovementFilter) ([]entity.MovementRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filter(ctx, l.receipts, f)
}

func (l *Ledger) ListRealizations(ctx context.Context, f repository.MovementFilter) ([]entity.MovementRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filter(ctx, l.realizations, f)
}

func (l *Ledger) GetDisplayName(ctx context.Context, productID int64) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	name, ok := l.products[productID]
	return name, ok, nil
}

// RunReadOnly ejecuta fn con una copia congelada de ambos libros, el equivalente en memoria
// de una transacción REPEATABLE READ.
func (l *Ledger) RunReadOnly(ctx context.Context, fn func(
	receipts repository.ReceiptRepository,
	realizations repository.RealizationRepository,
) error) error {
	l.mu.RLock()
	frozen := &Ledger{
		receipts:     append([]entity.MovementRecord(nil), l.receipts...),
		realizations: append([]entity.MovementRecord(nil), l.realizations...),
		products:     maps.Clone(l.products),
		colors:       maps.Clone(l.colors),
	}
	l.mu.RUnlock()
	return fn(frozen, frozen)
}

// filter debe llamarse con el lock de lectura tomado.
func (l *Ledger) filter(ctx context.Context, src []entity.MovementRecord, f repository.MovementFilter) ([]entity.MovementRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []entity.MovementRecord{}
	for _, m := range src {
		if m.ProductID != f.ProductID {
			continue
		}
		if f.SizeCode != nil && m.SizeCode != *f.SizeCode {
			continue
		}
		m.ColorName = ""
		if f.WithColorNames {
			m.ColorName = l.colors[m.ColorID]
		}
		out = append(out, m)
	}
	return out, nil
}
