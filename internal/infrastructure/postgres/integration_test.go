package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

var testPool *pgxpool.Pool

// TestMain levanta un PostgreSQL desechable y aplica las migraciones embebidas.
// Solo corre con INTEGRATION_TESTS=1 (requiere Docker).
func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		os.Exit(0)
	}
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("contable_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		panic(err)
	}
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}
	mg, err := postgres.NewMigrator(dsn, logger.Nop())
	if err != nil {
		panic(err)
	}
	if err := mg.Up(); err != nil {
		panic(err)
	}
	_ = mg.Close()

	testPool, err = postgres.NewPoolFromDSN(ctx, dsn, 5)
	if err != nil {
		panic(err)
	}
	code := m.Run()
	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newCompany(t *testing.T) string {
	t.Helper()
	uc := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(testPool), postgres.NewAccountCategoryRepository(testPool))
	c, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Empresa " + t.Name()})
	require.NoError(t, err)
	return c.ID
}

func TestCompany_SiembraCategorias(t *testing.T) {
	companyID := newCompany(t)

	cats, err := postgres.NewAccountCategoryRepository(testPool).List(context.Background(), companyID, repository.ListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, cats, len(entity.AccountTypes))
}

func TestParty_CodigoDuplicadoPorEmpresa(t *testing.T) {
	ctx := context.Background()
	a, b := newCompany(t), newCompany(t)
	uc := usecase.NewPartyUseCase(postgres.NewCustomerRepository(testPool), nil, entity.PaymentTypeCustomer)

	_, err := uc.Create(ctx, a, dto.CreatePartyRequest{Code: "C001", Name: "Acme"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, a, dto.CreatePartyRequest{Code: "C001", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el mismo código en otra empresa es válido
	_, err = uc.Create(ctx, b, dto.CreatePartyRequest{Code: "C001", Name: "Acme B"})
	assert.NoError(t, err)
}

func TestSequence_NumeracionConsecutiva(t *testing.T) {
	ctx := context.Background()
	companyID := newCompany(t)
	seq := postgres.NewSequenceRepository(testPool)

	for want := int64(1); want <= 3; want++ {
		n, err := seq.Next(ctx, companyID, "INV", 2026)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := seq.Next(ctx, companyID, "INV", 2027)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSalesInvoice_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	companyID := newCompany(t)

	customers := postgres.NewCustomerRepository(testPool)
	customer, err := usecase.NewPartyUseCase(customers, postgres.NewPaymentRepository(testPool), entity.PaymentTypeCustomer).Create(ctx, companyID, dto.CreatePartyRequest{Code: "C1", Name: "Acme"})
	require.NoError(t, err)

	invoices := billing.NewDocumentUseCase(billing.DocumentDeps{
		Documents: postgres.NewDocumentRepository(testPool, entity.KindSalesInvoice),
		Sources:   postgres.NewDocumentRepository(testPool, entity.KindSalesOrder),
		Parties:   customers,
		Products:  postgres.NewProductRepository(testPool),
		Sequences: postgres.NewSequenceRepository(testPool),
	})
	date := "2026-04-10"
	inv, err := invoices.Create(ctx, companyID, "", dto.DocumentRequest{
		CustomerID: &customer.ID,
		Date:       &date,
		Items: []dto.DocumentItemRequest{
			{Description: "Consultoría", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), TaxRate: ptrDec(19)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", inv.Number)
	assert.Equal(t, "Acme", inv.CustomerName)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(238)), inv.Total.String())

	paid := entity.StatusPaid
	updated, err := invoices.Update(ctx, companyID, inv.ID, dto.DocumentRequest{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, updated.Status)
	require.Len(t, updated.Items, 1)

	list, err := invoices.List(ctx, companyID, dto.DocumentQuery{Status: entity.StatusPaid})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, invoices.Delete(ctx, companyID, inv.ID))
	_, err = invoices.GetByID(ctx, companyID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventory_MovimientosTransaccionales(t *testing.T) {
	ctx := context.Background()
	companyID := newCompany(t)
	products := postgres.NewProductRepository(testPool)
	warehouses := postgres.NewWarehouseRepository(testPool)

	now := time.Now()
	p := &entity.Product{ID: "11111111-0000-0000-0000-" + companyID[24:], CompanyID: companyID, Code: "P1", Name: "Teclado",
		Type: entity.ProductTypeInventory, Unit: "unit", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, p))
	wh := &entity.Warehouse{ID: "22222222-0000-0000-0000-" + companyID[24:], CompanyID: companyID, Code: "W1", Name: "Principal",
		IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, warehouses.Create(ctx, wh))

	uc := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(testPool), products, warehouses)
	cost := decimal.NewFromInt(10)
	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: p.ID, WarehouseID: wh.ID,
		Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(5), UnitCost: &cost,
	})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: p.ID, WarehouseID: wh.ID,
		Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(9),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err := postgres.NewStockRepository(testPool).Get(ctx, p.ID, wh.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)), stock.Quantity.String())

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Cost.Equal(cost), got.Cost.String())
}

func TestPagos_BloqueanBorradoDeFacturaYCliente(t *testing.T) {
	ctx := context.Background()
	companyID := newCompany(t)
	payments := postgres.NewPaymentRepository(testPool)
	customers := postgres.NewCustomerRepository(testPool)
	sales := postgres.NewDocumentRepository(testPool, entity.KindSalesInvoice)
	sequences := postgres.NewSequenceRepository(testPool)

	parties := usecase.NewPartyUseCase(customers, payments, entity.PaymentTypeCustomer)
	customer, err := parties.Create(ctx, companyID, dto.CreatePartyRequest{Code: "C1", Name: "Acme"})
	require.NoError(t, err)
	invoices := billing.NewDocumentUseCase(billing.DocumentDeps{
		Documents: sales,
		Sources:   postgres.NewDocumentRepository(testPool, entity.KindSalesOrder),
		Parties:   customers,
		Products:  postgres.NewProductRepository(testPool),
		Sequences: sequences,
		Payments:  payments,
	})
	inv, err := invoices.Create(ctx, companyID, "", dto.DocumentRequest{
		CustomerID: &customer.ID,
		Items:      []dto.DocumentItemRequest{{Description: "Servicio", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)

	categories, err := postgres.NewAccountCategoryRepository(testPool).List(ctx, companyID, repository.ListParams{Limit: 50})
	require.NoError(t, err)
	var assetCategory string
	for _, c := range categories {
		if c.Type == entity.AccountTypeAsset {
			assetCategory = c.ID
		}
	}
	accounts := postgres.NewAccountRepository(testPool)
	cash, err := usecase.NewAccountUseCase(postgres.NewAccountCategoryRepository(testPool), accounts).
		CreateAccount(ctx, companyID, dto.CreateAccountRequest{CategoryID: assetCategory, Code: "1105", Name: "Caja"})
	require.NoError(t, err)

	typ, amount := entity.PaymentTypeCustomer, decimal.NewFromInt(40)
	_, err = usecase.NewPaymentUseCase(usecase.PaymentDeps{
		Payments: payments, Accounts: accounts, Customers: customers, Vendors: postgres.NewVendorRepository(testPool),
		SalesInvoices: sales, PurchaseInvoices: postgres.NewDocumentRepository(testPool, entity.KindPurchaseInvoice),
		Sequences: sequences,
	}).Create(ctx, companyID, "", dto.PaymentRequest{
		Type: &typ, AccountID: &cash.ID, PartyID: &customer.ID, Amount: &amount,
		Items: []dto.PaymentItemRequest{{InvoiceID: inv.ID, Amount: amount}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, invoices.Delete(ctx, companyID, inv.ID), domain.ErrConflict)
	assert.ErrorIs(t, parties.Delete(ctx, companyID, customer.ID), domain.ErrConflict)

	got, err := invoices.GetByID(ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.BalanceDue.Equal(decimal.NewFromInt(60)), got.BalanceDue.String())
}

func TestInventory_EntradasConcurrentesSinFilaPrevia(t *testing.T) {
	ctx := context.Background()
	companyID := newCompany(t)
	products := postgres.NewProductRepository(testPool)
	warehouses := postgres.NewWarehouseRepository(testPool)

	now := time.Now()
	p := &entity.Product{ID: "33333333-0000-0000-0000-" + companyID[24:], CompanyID: companyID, Code: "P2", Name: "Mouse",
		Type: entity.ProductTypeInventory, Unit: "unit", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, p))
	wh := &entity.Warehouse{ID: "44444444-0000-0000-0000-" + companyID[24:], CompanyID: companyID, Code: "W2", Name: "Norte",
		IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, warehouses.Create(ctx, wh))

	uc := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(testPool), products, warehouses)
	costs := []int64{10, 20, 30, 40}
	var wg sync.WaitGroup
	errs := make([]error, len(costs))
	for i, c := range costs {
		wg.Add(1)
		go func(i int, c int64) {
			defer wg.Done()
			cost := decimal.NewFromInt(c)
			_, errs[i] = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
				CompanyID: companyID, ProductID: p.ID, WarehouseID: wh.ID,
				Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(5), UnitCost: &cost,
			})
		}(i, c)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	stock, err := postgres.NewStockRepository(testPool).Get(ctx, p.ID, wh.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(20)), stock.Quantity.String())
	// mismas cantidades: el promedio ponderado es la media simple sin importar el orden
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.Cost.InexactFloat64(), 0.001)
}

func ptrDec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
