package entity

// MovementRecord una línea de recepción o de realización. Inmutable una vez escrita.
// Qty siempre es positiva; la dirección la da el libro de origen.
type MovementRecord struct {
	ProductID int64
	SizeCode  string
	ColorID   int64
	Qty       int64
	ColorName string // solo se llena si se pidió resolver nombres de color
}

// Key devuelve la identidad (talla, color) con la que se agrupa el movimiento.
func (m MovementRecord) Key() StockKey {
	return StockKey{SizeCode: m.SizeCode, ColorID: m.ColorID}
}

// StockKey identidad compuesta (talla, color) dentro de un producto.
type StockKey struct {
	SizeCode string
	ColorID  int64
}
