package entity

// Color color del catálogo; Name se usa solo para mostrar.
type Color struct {
	ID   int64
	Name string
}
