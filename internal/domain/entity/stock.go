package entity

// NetStockEntry cantidad neta derivada para una combinación talla/color. Nunca se persiste.
type NetStockEntry struct {
	SizeCode  string
	ColorID   int64
	ColorName string
	Qty       int64
}

// StockSnapshot vista agregada de un producto, recalculada en cada consulta.
// TotalQuantity = suma de Entries[].Qty; solo se conservan entradas con Qty > 0.
type StockSnapshot struct {
	ProductID     int64
	SizeCode      string // filtro aplicado; vacío = todas las tallas
	TotalQuantity int64
	Entries       []NetStockEntry

	// Realizaciones que apuntan a una talla/color sin recepciones. No afectan el stock.
	OrphanedRealizations int
	OrphanedQuantity     int64
}

// EmptySnapshot snapshot en cero para productID.
func EmptySnapshot(productID int64, sizeCode string) StockSnapshot {
	return StockSnapshot{ProductID: productID, SizeCode: sizeCode, Entries: []NetStockEntry{}}
}

// Find busca la entrada de la combinación key.
func (s StockSnapshot) Find(key StockKey) (NetStockEntry, bool) {
	for _, e := range s.Entries {
		if e.SizeCode == key.SizeCode && e.ColorID == key.ColorID {
			return e, true
		}
	}
	return NetStockEntry{}, false
}

// EntriesForSize devuelve las entradas de una talla en el orden del snapshot.
func (s StockSnapshot) EntriesForSize(sizeCode string) []NetStockEntry {
	var out []NetStockEntry
	for _, e := range s.Entries {
		if e.SizeCode == sizeCode {
			out = append(out, e)
		}
	}
	return out
}

// AvailabilityResult respuesta del verificador de disponibilidad.
type AvailabilityResult struct {
	Available    bool
	AvailableQty int64
	RequestedQty int64
	Message      string
}
