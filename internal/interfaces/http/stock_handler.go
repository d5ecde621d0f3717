package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain"
)

const (
	// maxBatchLines límite de líneas por lote de disponibilidad.
	maxBatchLines   = 200
	// maxLineQuantity tope por línea; con maxBatchLines la suma de un lote no desborda int64.
	maxLineQuantity = 1_000_000_000
)

// StockHandler maneja las consultas de stock y disponibilidad (protegido).
type StockHandler struct {
	aggregator *inventory.StockAggregator
	checker    *inventory.AvailabilityChecker
	reporter   *inventory.WarehouseReporter
}

// NewStockHandler construye el handler.
func NewStockHandler(
	aggregator *inventory.StockAggregator,
	checker *inventory.AvailabilityChecker,
	reporter *inventory.WarehouseReporter,
) *StockHandler {
	return &StockHandler{aggregator: aggregator, checker: checker, reporter: reporter}
}

// GetStock godoc
// @Summary      Stock neto de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   int     true   "ID del producto"
// @Param        size   query  string  false  "Filtrar por talla"
// @Param        names  query  bool    false  "Resolver nombres de color"
// @Success      200  {object}  dto.StockSnapshotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	productID, ok := parseProductID(c)
	if !ok {
		return stockError(c, errInvalidProductID)
	}
	var size *string
	if s := strings.TrimSpace(c.Query("size")); s != "" {
		size = &s
	}
	snap, err := h.aggregator.ComputeStock(c.Context(), productID, size, c.QueryBool("names", false))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.ToStockSnapshotResponse(snap))
}

// GetSummary godoc
// @Summary      Resumen de stock con nombres de color
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.StockSnapshotResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/summary [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	productID, ok := parseProductID(c)
	if !ok {
		return stockError(c, errInvalidProductID)
	}
	snap, err := h.reporter.GetStockSummary(c.Context(), productID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.ToStockSnapshotResponse(snap))
}

// HasStock godoc
// @Summary      ¿El producto tiene stock?
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.HasStockResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/has-stock [get]
func (h *StockHandler) HasStock(c *fiber.Ctx) error {
	productID, ok := parseProductID(c)
	if !ok {
		return stockError(c, errInvalidProductID)
	}
	presence, err := h.reporter.HasAnyStock(c.Context(), productID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.ToHasStockResponse(presence))
}

// CheckAvailability godoc
// @Summary      Verificar disponibilidad
// @Description  Responde 200 también cuando no hay stock suficiente; ver "available".
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "product_id, size_code, quantity, color_id"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/availability [post]
func (h *StockHandler) CheckAvailability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateAvailability(in); err != nil {
		return stockError(c, err)
	}
	res := h.checker.CheckAvailability(c.Context(), in.ProductID, strings.TrimSpace(in.SizeCode), in.Quantity, in.ColorID)
	return c.JSON(dto.ToAvailabilityResponse(res))
}

// CheckBatch godoc
// @Summary      Verificar disponibilidad de un pedido completo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchAvailabilityRequest  true  "líneas del pedido"
// @Success      200   {object}  dto.BatchAvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/availability/batch [post]
func (h *StockHandler) CheckBatch(c *fiber.Ctx) error {
	var in dto.BatchAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 || len(in.Lines) > maxBatchLines {
		return stockError(c, fmt.Errorf("%w: lines debe tener entre 1 y %d elementos", domain.ErrInvalidInput, maxBatchLines))
	}
	lines := make([]inventory.OrderLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := validateAvailability(l); err != nil {
			return stockError(c, fmt.Errorf("línea %d: %w", i+1, err))
		}
		lines = append(lines, inventory.OrderLine{
			ProductID: l.ProductID,
			SizeCode:  strings.TrimSpace(l.SizeCode),
			ColorID:   l.ColorID,
			Quantity:  l.Quantity,
		})
	}
	return c.JSON(dto.ToBatchAvailabilityResponse(h.checker.CheckOrderLines(c.Context(), lines)))
}

var errInvalidProductID = fmt.Errorf("%w: id de producto inválido", domain.ErrInvalidInput)

func validateAvailability(in dto.AvailabilityRequest) error {
	switch {
	case in.ProductID <= 0:
		return fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	case strings.TrimSpace(in.SizeCode) == "":
		return fmt.Errorf("%w: size_code es requerido", domain.ErrInvalidInput)
	case in.Quantity <= 0:
		return fmt.Errorf("%w: quantity debe ser mayor que 0", domain.ErrInvalidInput)
	case in.Quantity > maxLineQuantity:
		return fmt.Errorf("%w: quantity no puede superar %d", domain.ErrInvalidInput, maxLineQuantity)
	}
	return nil
}

func parseProductID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func stockError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrStockUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STOCK_UNAVAILABLE", Message: "no se pudo consultar el stock, intente más tarde"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
