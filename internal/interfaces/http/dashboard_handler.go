package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
)

// DashboardHandler maneja las peticiones del dashboard (solo lectura, cacheadas por empresa).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics godoc
// @Summary      Métricas del mes
// @Description  Ingresos y gastos del mes, cuentas por cobrar y por pagar, con variación contra el mes anterior.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardMetricsDTO
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Metrics(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChartData godoc
// @Summary      Ingresos vs gastos de los últimos 12 meses
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/dashboard/chart-data [get]
func (h *DashboardHandler) ChartData(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ChartData(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CashFlow godoc
// @Summary      Flujo de caja del mes por semanas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashFlowDTO
// @Router       /api/dashboard/cash-flow [get]
func (h *DashboardHandler) CashFlow(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CashFlow(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecentTransactions godoc
// @Summary      Últimos 10 movimientos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecentTransactionDTO
// @Router       /api/dashboard/recent-transactions [get]
func (h *DashboardHandler) RecentTransactions(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.RecentTransactions(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopAccounts godoc
// @Summary      Top 5 cuentas de ingreso y de gasto
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopAccountsDTO
// @Router       /api/dashboard/top-accounts [get]
func (h *DashboardHandler) TopAccounts(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.TopAccounts(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
