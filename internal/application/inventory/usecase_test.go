package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

const (
	company = "aaaaaaaa-0000-0000-0000-000000000001"
	product = "dddddddd-0000-0000-0000-000000000001"
	whA     = "eeeeeeee-0000-0000-0000-00000000000a"
	whB     = "eeeeeeee-0000-0000-0000-00000000000b"
)

// memStore guarda stock, productos y movimientos; el runner descarta los cambios si fn falla.
type memStore struct {
	products  map[string]*entity.Product
	stock     map[string]decimal.Decimal
	movements []*entity.InventoryMovement
	locks     []string // orden de los bloqueos dentro de la transacción
}

func key(productID, warehouseID string) string { return productID + "/" + warehouseID }

type txRunner struct{ s *memStore }

func (r txRunner) Run(_ context.Context, fn func(repository.InventoryMovementRepository, repository.StockRepository, repository.ProductRepository) error) error {
	snapStock := map[string]decimal.Decimal{}
	for k, v := range r.s.stock {
		snapStock[k] = v
	}
	snapCost := map[string]decimal.Decimal{}
	for id, p := range r.s.products {
		snapCost[id] = p.Cost
	}
	snapMovs := len(r.s.movements)
	if err := fn(movRepo{r.s}, stockRepo{r.s}, productRepo{r.s}); err != nil {
		r.s.stock = snapStock
		for id, c := range snapCost {
			r.s.products[id].Cost = c
		}
		r.s.movements = r.s.movements[:snapMovs]
		return err
	}
	return nil
}

type movRepo struct{ s *memStore }

func (r movRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r movRepo) List(context.Context, string, repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return r.s.movements, nil
}

type stockRepo struct{ s *memStore }

func (r stockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: r.s.stock[key(productID, warehouseID)]}, nil
}

func (r stockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	r.s.locks = append(r.s.locks, "stock:"+warehouseID)
	return r.Get(ctx, productID, warehouseID)
}

func (r stockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	r.s.stock[key(s.ProductID, s.WarehouseID)] = s.Quantity
	return nil
}

func (r stockRepo) ListLevels(_ context.Context, _, productID, _ string) ([]entity.StockLevel, error) {
	var out []entity.StockLevel
	for _, wh := range []string{whA, whB} {
		if q, ok := r.s.stock[key(productID, wh)]; ok {
			out = append(out, entity.StockLevel{ProductID: productID, WarehouseID: wh, Quantity: q})
		}
	}
	return out, nil
}

type productRepo struct{ s *memStore }

func (r productRepo) Create(context.Context, *entity.Product) error { return nil }
func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.s.locks = append(r.s.locks, "product:"+id)
	return r.GetByID(ctx, id)
}
func (r productRepo) List(context.Context, string, repository.ListParams) ([]*entity.Product, error) {
	return nil, nil
}
func (r productRepo) Update(context.Context, *entity.Product) error { return nil }
func (r productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	r.s.products[id].Cost = cost
	return nil
}
func (r productRepo) Delete(context.Context, string, string) error { return nil }

type warehouseRepo struct{}

func (warehouseRepo) Create(context.Context, *entity.Warehouse) error { return nil }
func (warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if id == whA || id == whB {
		return &entity.Warehouse{ID: id, CompanyID: company}, nil
	}
	return nil, nil
}
func (warehouseRepo) List(context.Context, string, repository.ListParams) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (warehouseRepo) Update(context.Context, *entity.Warehouse) error { return nil }
func (warehouseRepo) Delete(context.Context, string, string) error { return nil }

func newUseCase() (*inventory.RegisterMovementUseCase, *memStore) {
	s := &memStore{
		products: map[string]*entity.Product{
			product: {ID: product, CompanyID: company, Name: "Teclado", Type: entity.ProductTypeInventory},
		},
		stock: map[string]decimal.Decimal{},
	}
	return inventory.NewRegisterMovementUseCase(txRunner{s}, productRepo{s}, warehouseRepo{}), s
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func entrada(wh string, qty, cost int64) inventory.MovementInputDTO {
	c := d(cost)
	return inventory.MovementInputDTO{
		CompanyID: company, UserID: "u1", ProductID: product, WarehouseID: wh,
		Type: entity.MovementTypeIN, Quantity: d(qty), UnitCost: &c,
	}
}

func TestRegisterMovement_EntradasPromedianCosto(t *testing.T) {
	uc, s := newUseCase()
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, entrada(whA, 10, 100))
	require.NoError(t, err)
	movs, err := uc.RegisterMovement(ctx, entrada(whB, 30, 200))
	require.NoError(t, err)

	require.Len(t, movs, 1)
	assert.True(t, movs[0].TotalCost.Equal(d(6000)))
	assert.True(t, s.products[product].Cost.Equal(d(175)), s.products[product].Cost.String())
	assert.True(t, s.stock[key(product, whB)].Equal(d(30)))
}

func TestRegisterMovement_SalidaSinExistencias(t *testing.T) {
	uc, s := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterMovement(ctx, entrada(whA, 5, 10))
	require.NoError(t, err)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: company, ProductID: product, WarehouseID: whA,
		Type: entity.MovementTypeOUT, Quantity: d(6),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.stock[key(product, whA)].Equal(d(5)))
	assert.Len(t, s.movements, 1)
}

func TestRegisterMovement_TrasladoGeneraDosMovimientos(t *testing.T) {
	uc, s := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterMovement(ctx, entrada(whA, 8, 10))
	require.NoError(t, err)

	movs, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: company, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB,
		Type: entity.MovementTypeTRANSFER, Quantity: d(3),
	})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeTransferOut, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(d(-3)))
	assert.Equal(t, entity.MovementTypeTransferIn, movs[1].Type)
	assert.Equal(t, movs[0].TransactionID, movs[1].TransactionID)
	assert.True(t, s.stock[key(product, whA)].Equal(d(5)))
	assert.True(t, s.stock[key(product, whB)].Equal(d(3)))
}

func TestRegisterMovement_AjusteNegativo(t *testing.T) {
	uc, s := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterMovement(ctx, entrada(whA, 4, 10))
	require.NoError(t, err)

	movs, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: company, ProductID: product, WarehouseID: whA,
		Type: entity.MovementTypeADJUSTMENT, Quantity: d(-1),
	})
	require.NoError(t, err)
	assert.True(t, movs[0].Quantity.Equal(d(-1)))
	assert.True(t, s.stock[key(product, whA)].Equal(d(3)))
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    inventory.MovementInputDTO
		field string
	}{
		{"tipo desconocido", inventory.MovementInputDTO{CompanyID: company, ProductID: product, Type: "X", Quantity: d(1)}, "type"},
		{"entrada sin costo", inventory.MovementInputDTO{CompanyID: company, ProductID: product, WarehouseID: whA, Type: entity.MovementTypeIN, Quantity: d(1)}, "unit_cost"},
		{"traslado misma bodega", inventory.MovementInputDTO{CompanyID: company, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whA, Type: entity.MovementTypeTRANSFER, Quantity: d(1)}, "to_warehouse_id"},
		{"bodega ajena", inventory.MovementInputDTO{CompanyID: company, ProductID: product, WarehouseID: "ffffffff-0000-0000-0000-000000000000", Type: entity.MovementTypeOUT, Quantity: d(1)}, "warehouse_id"},
		{"producto ajeno", inventory.MovementInputDTO{CompanyID: "otra", ProductID: product, WarehouseID: whA, Type: entity.MovementTypeOUT, Quantity: d(1)}, "product_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestRegisterMovement_BloqueaProductoAntesQueStock(t *testing.T) {
	uc, s := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterMovement(ctx, entrada(whA, 8, 10))
	require.NoError(t, err)
	s.locks = nil

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: company, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB,
		Type: entity.MovementTypeTRANSFER, Quantity: d(3),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"product:" + product, "stock:" + whA, "stock:" + whB}, s.locks)
}

// staleProducts devuelve el producto con el costo leído antes de otra entrada concurrente.
type staleProducts struct {
	productRepo
	cost decimal.Decimal
}

func (r staleProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.productRepo.GetByID(ctx, id)
	if p != nil {
		p.Cost = r.cost
	}
	return p, err
}

func TestRegisterMovement_CostoSeLeeDentroDeLaTransaccion(t *testing.T) {
	_, s := newUseCase()
	s.products[product].Cost = d(100)
	s.stock[key(product, whA)] = d(10)
	uc := inventory.NewRegisterMovementUseCase(txRunner{s}, staleProducts{productRepo{s}, decimal.Zero}, warehouseRepo{})

	_, err := uc.RegisterMovement(context.Background(), entrada(whA, 10, 200))
	require.NoError(t, err)
	// (10*100 + 10*200) / 20
	assert.True(t, s.products[product].Cost.Equal(d(150)), s.products[product].Cost.String())
	assert.True(t, s.stock[key(product, whA)].Equal(d(20)))
}
