package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/access"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	UserUC        *usecase.UserUseCase
	CustomerUC    *usecase.PartyUseCase
	VendorUC      *usecase.PartyUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	MovementUC    *inventory.RegisterMovementUseCase
	InventoryUC   *inventory.QueryUseCase
	AccountUC     *usecase.AccountUseCase
	JournalUC     *usecase.JournalUseCase
	PaymentUC     *usecase.PaymentUseCase
	TransactionUC *usecase.TransactionUseCase
	Documents     map[entity.DocumentKind]*billing.DocumentUseCase
	PrintUC       *billing.PrintUseCase
	DashboardUC   *analytics.DashboardUseCase
	ReportUC      *analytics.ReportUseCase
	JWTSecret     string
	Revoker       ports.TokenRevoker
	Users         UserLookup // nil: el rol sale solo del token
}

// crud handler con las cinco operaciones estándar de un recurso.
type crud interface {
	Create(*fiber.Ctx) error
	List(*fiber.Ctx) error
	GetByID(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
}

func mount(r fiber.Router, path string, h crud, mw ...fiber.Handler) {
	g := r.Group(path, mw...)
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Públicas
	authHandler := NewAuthHandler(deps.AuthUC)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	authMW := []fiber.Handler{AuthMiddleware(deps.JWTSecret, deps.Revoker)}
	if deps.Users != nil {
		authMW = append(authMW, ActiveUser(deps.Users))
	}
	protected := api.Group("/", authMW...)
	protected.Post("/logout", authHandler.Logout)
	protected.Get("/user", authHandler.Me)

	company := protected.Group("/company", RequirePermission(access.ModuleSettings))
	company.Get("/", companyHandler.Get)
	company.Put("/", companyHandler.Update)

	// Cada grupo con middleware lleva su propio prefijo: Fiber aplica el middleware de un
	// grupo a todo lo que comparta el prefijo.
	mount(protected, "/users", NewUserHandler(deps.UserUC), RequireRole(entity.RoleAdmin))

	// Maestros
	mount(protected, "/customers", NewPartyHandler(deps.CustomerUC), RequirePermission(access.ModuleSales))
	mount(protected, "/vendors", NewPartyHandler(deps.VendorUC), RequirePermission(access.ModulePurchases))
	mount(protected, "/products", NewProductHandler(deps.ProductUC), RequirePermission(access.ModuleInventory))
	mount(protected, "/warehouses", NewWarehouseHandler(deps.WarehouseUC), RequirePermission(access.ModuleInventory))

	inv := protected.Group("/inventory", RequirePermission(access.ModuleInventory))
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.InventoryUC)
	inv.Get("/stock", inventoryHandler.Stock)
	inv.Get("/movements", inventoryHandler.Movements)
	inv.Post("/movements", inventoryHandler.RegisterMovement)

	// Contabilidad
	accounting := RequirePermission(access.ModuleAccounting)
	accountHandler := NewAccountHandler(deps.AccountUC)
	categories := protected.Group("/account-categories", accounting)
	categories.Get("/", accountHandler.ListCategories)
	categories.Post("/", accountHandler.CreateCategory)
	categories.Get("/:id", accountHandler.GetCategory)
	categories.Put("/:id", accountHandler.UpdateCategory)
	categories.Delete("/:id", accountHandler.DeleteCategory)
	accounts := protected.Group("/accounts", accounting)
	accounts.Get("/", accountHandler.ListAccounts)
	accounts.Post("/", accountHandler.CreateAccount)
	accounts.Get("/:id", accountHandler.GetAccount)
	accounts.Put("/:id", accountHandler.UpdateAccount)
	accounts.Delete("/:id", accountHandler.DeleteAccount)
	mount(protected, "/journals", NewJournalHandler(deps.JournalUC), accounting)
	mount(protected, "/payments", NewPaymentHandler(deps.PaymentUC), accounting)
	mount(protected, "/transactions", NewTransactionHandler(deps.TransactionUC), accounting)

	// Ventas y compras
	sales := protected.Group("/sales", RequirePermission(access.ModuleSales))
	printHandler := NewInvoicePrintHandler(deps.PrintUC)
	sales.Get("/invoices/:id/pdf", printHandler.PDF)
	sales.Get("/invoices/:id/xml", printHandler.XML)
	mount(sales, "/quotations", NewDocumentHandler(deps.Documents[entity.KindSalesQuotation]))
	mount(sales, "/orders", NewDocumentHandler(deps.Documents[entity.KindSalesOrder]))
	mount(sales, "/invoices", NewDocumentHandler(deps.Documents[entity.KindSalesInvoice]))

	purchasing := protected.Group("/purchasing", RequirePermission(access.ModulePurchases))
	mount(purchasing, "/orders", NewDocumentHandler(deps.Documents[entity.KindPurchaseOrder]))
	mount(purchasing, "/invoices", NewDocumentHandler(deps.Documents[entity.KindPurchaseInvoice]))

	// Dashboard y reportes
	reports := RequirePermission(access.ModuleReports)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dash := protected.Group("/dashboard", reports)
	dash.Get("/metrics", dashboardHandler.Metrics)
	dash.Get("/chart-data", dashboardHandler.ChartData)
	dash.Get("/cash-flow", dashboardHandler.CashFlow)
	dash.Get("/recent-transactions", dashboardHandler.RecentTransactions)
	dash.Get("/top-accounts", dashboardHandler.TopAccounts)
	reportHandler := NewReportHandler(deps.ReportUC)
	rep := protected.Group("/reports", reports)
	rep.Get("/profit-loss", reportHandler.ProfitLoss)
	rep.Get("/balance-sheet", reportHandler.BalanceSheet)
	rep.Get("/cash-flow", reportHandler.CashFlow)
	rep.Get("/tax", reportHandler.Tax)
	rep.Get("/sales", reportHandler.Sales)
	rep.Get("/inventory", reportHandler.Inventory)
}
