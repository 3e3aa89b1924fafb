package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backend/internal/application/dto"
	"github.com/jhoicas/pos-backend/internal/application/reports"
)

// ReportHandler expone los reportes analíticos de solo lectura (protegido, admin).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseDate interpreta YYYY-MM-DD o RFC3339; zero time si está vacío o mal formado.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func parseDatePtr(s string) *time.Time {
	t := parseDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

// SalesSummary godoc
// @Summary      Resumen de ventas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {array}  repository.DailySalesSummary
// @Router       /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	list, err := h.uc.SalesSummaryByDay(c.Context(), parseDate(c.Query("from")), parseDate(c.Query("to")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "days": list})
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD"
// @Param        limit  query  int     false  "Máximo de filas (default 10)"
// @Success      200  {array}  repository.TopProduct
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	list, err := h.uc.TopSellingProducts(
		c.Context(),
		parseDatePtr(c.Query("from")),
		parseDatePtr(c.Query("to")),
		c.QueryInt("limit", 10),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// CashFlow godoc
// @Summary      Flujo de caja de un día por método de pago
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        day  query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  repository.CashFlow
// @Router       /api/reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *fiber.Ctx) error {
	flow, err := h.uc.DailyCashFlow(c.Context(), parseDate(c.Query("day")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(flow)
}

// StockValue godoc
// @Summary      Valor de inventario (stock × costo) por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/reports/stock-value [get]
func (h *ReportHandler) StockValue(c *fiber.Ctx) error {
	rows, total, err := h.uc.StockValue(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total_value": total, "products": rows})
}

// MovementSummary godoc
// @Summary      Movimientos del ledger agregados por tipo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  repository.MovementTypeSummary
// @Router       /api/reports/movement-summary [get]
func (h *ReportHandler) MovementSummary(c *fiber.Ctx) error {
	list, err := h.uc.MovementSummaryByType(c.Context(), parseDatePtr(c.Query("from")), parseDatePtr(c.Query("to")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "types": list})
}
