package repository

import "context"

// ProductRepository consulta del catálogo usada por el motor de stock.
type ProductRepository interface {
	// GetDisplayName devuelve el nombre visible del producto; ok=false si no existe.
	GetDisplayName(ctx context.Context, productID int64) (name string, ok bool, err error)
}
