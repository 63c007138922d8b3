package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/pkg/money"
)

// ReportHandler reportes financieros. Todos aceptan ?format=json|xlsx|pdf.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// respond envía el DTO como JSON o lo exporta con el renderer del formato pedido.
func (h *ReportHandler) respond(c *fiber.Ctx, companyID, format, name string, out interface{}, build func(*money.Formatter) dto.ReportTable) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == analytics.FormatJSON {
		return c.JSON(out)
	}
	data, contentType, err := h.uc.Export(c.UserContext(), companyID, format, build)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, contentType, name+"."+format)
}

func (h *ReportHandler) query(c *fiber.Ctx) (string, dto.ReportQuery, bool) {
	companyID, ok := tenant(c)
	if !ok {
		return "", dto.ReportQuery{}, false
	}
	var q dto.ReportQuery
	if err := bindQuery(c, &q); err != nil {
		_ = writeError(c, err)
		return "", q, false
	}
	return companyID, q, true
}

// ProfitLoss godoc
// @Summary      Estado de resultados
// @Description  Actividad de asientos contabilizados en el rango, comparada con el período anterior de igual duración.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD), por defecto inicio de mes"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD), por defecto hoy"
// @Param        format  query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.ProfitLossDTO
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	companyID, q, ok := h.query(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ProfitLoss(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, q.Format, "profit-loss", out, func(f *money.Formatter) dto.ReportTable {
		return analytics.ProfitLossTable(out, f)
	})
}

// BalanceSheet godoc
// @Summary      Balance general
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        as_of   query  string  false  "Fecha de corte (YYYY-MM-DD)"
// @Param        format  query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.BalanceSheetDTO
// @Router       /api/reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *fiber.Ctx) error {
	companyID, q, ok := h.query(c)
	if !ok {
		return nil
	}
	out, err := h.uc.BalanceSheet(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, q.Format, "balance-sheet", out, func(f *money.Formatter) dto.ReportTable {
		return analytics.BalanceSheetTable(out, f)
	})
}

// CashFlow godoc
// @Summary      Flujo de caja
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        interval  query  string  false  "week | month"  default(week)
// @Param        format    query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.CashFlowDTO
// @Router       /api/reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *fiber.Ctx) error {
	companyID, q, ok := h.query(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CashFlow(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, q.Format, "cash-flow", out, func(f *money.Formatter) dto.ReportTable {
		return analytics.CashFlowTable(out, f)
	})
}

// Tax godoc
// @Summary      Impuestos generados y descontables por tarifa
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        format  query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.TaxReportDTO
// @Router       /api/reports/tax [get]
func (h *ReportHandler) Tax(c *fiber.Ctx) error {
	companyID, q, ok := h.query(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Tax(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, q.Format, "tax", out, func(f *money.Formatter) dto.ReportTable {
		return analytics.TaxTable(out, f)
	})
}

// Sales godoc
// @Summary      Ventas por cliente y por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        format  query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.SalesReportDTO
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	companyID, q, ok := h.query(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Sales(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, q.Format, "sales", out, func(f *money.Formatter) dto.ReportTable {
		return analytics.SalesTable(out, f)
	})
}

// Inventory godoc
// @Summary      Valoración de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.InventoryReportDTO
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	companyID, q, ok := h.query(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Inventory(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, q.Format, "inventory", out, func(f *money.Formatter) dto.ReportTable {
		return analytics.InventoryTable(out, f)
	})
}
