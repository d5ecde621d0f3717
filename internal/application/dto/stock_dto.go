package dto

import (
	"github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StockEntryResponse cantidad neta de una combinación talla/color.
type StockEntryResponse struct {
	SizeCode  string `json:"size_code"`
	ColorID   int64  `json:"color_id"`
	ColorName string `json:"color_name,omitempty"`
	Qty       int64  `json:"qty"`
}

// StockSnapshotResponse salida de GET /api/stock/products/:id y /summary.
type StockSnapshotResponse struct {
	ProductID            int64                `json:"product_id"`
	SizeCode             string               `json:"size_code,omitempty"`
	TotalQuantity        int64                `json:"total_quantity"`
	Entries              []StockEntryResponse `json:"entries"`
	OrphanedRealizations int                  `json:"orphaned_realizations,omitempty"`
}

// HasStockResponse salida de GET /api/stock/products/:id/has-stock.
type HasStockResponse struct {
	HasStock      bool                 `json:"has_stock"`
	TotalQuantity int64                `json:"total_quantity"`
	Entries       []StockEntryResponse `json:"entries"`
}

// AvailabilityRequest body de POST /api/stock/availability.
type AvailabilityRequest struct {
	ProductID int64  `json:"product_id"`
	SizeCode  string `json:"size_code"`
	ColorID   *int64 `json:"color_id,omitempty"`
	Quantity  int64  `json:"quantity"`
}

// AvailabilityResponse resultado de una verificación.
type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	AvailableQty int64  `json:"available_qty"`
	RequestedQty int64  `json:"requested_qty"`
	Message      string `json:"message,omitempty"`
}

// BatchAvailabilityRequest body de POST /api/stock/availability/batch.
type BatchAvailabilityRequest struct {
	Lines []AvailabilityRequest `json:"lines"`
}

// LineAvailabilityResponse resultado por combinación del lote.
type LineAvailabilityResponse struct {
	ProductID int64  `json:"product_id"`
	SizeCode  string `json:"size_code"`
	ColorID   *int64 `json:"color_id,omitempty"`
	AvailabilityResponse
}

// BatchAvailabilityResponse resultado del lote.
type BatchAvailabilityResponse struct {
	AllAvailable bool                       `json:"all_available"`
	Lines        []LineAvailabilityResponse `json:"lines"`
}

// ToStockSnapshotResponse convierte el snapshot de dominio.
func ToStockSnapshotResponse(s entity.StockSnapshot) StockSnapshotResponse {
	return StockSnapshotResponse{
		ProductID:            s.ProductID,
		SizeCode:             s.SizeCode,
		TotalQuantity:        s.TotalQuantity,
		Entries:              toEntries(s.Entries),
		OrphanedRealizations: s.OrphanedRealizations,
	}
}

// ToHasStockResponse convierte la respuesta de presencia de stock.
func ToHasStockResponse(p inventory.StockPresence) HasStockResponse {
	return HasStockResponse{
		HasStock:      p.HasStock,
		TotalQuantity: p.TotalQuantity,
		Entries:       toEntries(p.Entries),
	}
}

// ToAvailabilityResponse convierte el resultado del verificador.
func ToAvailabilityResponse(r entity.AvailabilityResult) AvailabilityResponse {
	return AvailabilityResponse{
		Available:    r.Available,
		AvailableQty: r.AvailableQty,
		RequestedQty: r.RequestedQty,
		Message:      r.Message,
	}
}

// ToBatchAvailabilityResponse convierte el resultado de un lote.
func ToBatchAvailabilityResponse(b inventory.BatchAvailability) BatchAvailabilityResponse {
	lines := make([]LineAvailabilityResponse, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineAvailabilityResponse{
			ProductID:            l.ProductID,
			SizeCode:             l.SizeCode,
			ColorID:              l.ColorID,
			AvailabilityResponse: ToAvailabilityResponse(l.AvailabilityResult),
		})
	}
	return BatchAvailabilityResponse{AllAvailable: b.AllAvailable, Lines: lines}
}

func toEntries(in []entity.NetStockEntry) []StockEntryResponse {
	out := make([]StockEntryResponse, 0, len(in))
	for _, e := range in {
		out = append(out, StockEntryResponse{
			SizeCode:  e.SizeCode,
			ColorID:   e.ColorID,
			ColorName: e.ColorName,
			Qty:       e.Qty,
		})
	}
	return out
}
