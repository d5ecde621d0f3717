package entity

// Product datos mínimos del catálogo que necesita el motor de stock.
type Product struct {
	ID   int64
	Name string
}
