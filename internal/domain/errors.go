package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrAmbiguousColor   = errors.New("color requerido: la talla tiene varios colores en stock")
	ErrStockUnavailable = errors.New("no se pudo consultar el stock")
)
