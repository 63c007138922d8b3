package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/inventory"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// Para IN/OUT/ADJUSTMENT: ProductID, WarehouseID, Type, Quantity; UnitCost obligatorio en IN.
// ADJUSTMENT acepta cantidad con signo. Para TRANSFER: FromWarehouseID y ToWarehouseID.
type MovementInputDTO struct {
	CompanyID       string
	UserID          string
	ProductID       string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	Note            string
}

func (in MovementInputDTO) validate() error {
	verr := &domain.ValidationError{}
	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
		if in.WarehouseID == "" {
			verr.Add("warehouse_id", "This field is required")
		}
		if in.Quantity.IsZero() {
			verr.Add("quantity", "Must not be zero")
		}
		if in.Type != entity.MovementTypeADJUSTMENT && in.Quantity.IsNegative() {
			verr.Add("quantity", "Must be greater than 0")
		}
		if in.Type == entity.MovementTypeIN && (in.UnitCost == nil || in.UnitCost.IsNegative()) {
			verr.Add("unit_cost", "This field is required")
		}
	case entity.MovementTypeTRANSFER:
		if in.FromWarehouseID == "" {
			verr.Add("from_warehouse_id", "This field is required")
		}
		if in.ToWarehouseID == "" {
			verr.Add("to_warehouse_id", "This field is required")
		}
		if in.FromWarehouseID != "" && in.FromWarehouseID == in.ToWarehouseID {
			verr.Add("to_warehouse_id", "Must differ from from_warehouse_id")
		}
		if !in.Quantity.IsPositive() {
			verr.Add("quantity", "Must be greater than 0")
		}
	default:
		verr.Add("type", "Must be one of: IN OUT ADJUSTMENT TRANSFER")
	}
	return verr.OrNil()
}

// RegisterMovement valida, inicia una transacción, bloquea el producto y luego las filas de
// inventory_stock (SELECT FOR UPDATE), aplica la lógica según tipo y hace Commit o Rollback.
// El bloqueo del producto va primero en todos los tipos: costo y existencias totales se leen ya bloqueados.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) ([]*entity.InventoryMovement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// producto y bodega(s) deben existir y ser de la empresa
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != input.CompanyID {
		return nil, domain.NewValidationError("product_id", "Referenced record not found")
	}
	if product.Type == entity.ProductTypeService {
		return nil, domain.NewValidationError("product_id", "Services do not carry stock")
	}
	warehouses := map[string]string{"warehouse_id": input.WarehouseID}
	if input.Type == entity.MovementTypeTRANSFER {
		warehouses = map[string]string{"from_warehouse_id": input.FromWarehouseID, "to_warehouse_id": input.ToWarehouseID}
	}
	for field, id := range warehouses {
		wh, err := uc.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if wh == nil || wh.CompanyID != input.CompanyID {
			return nil, domain.NewValidationError(field, "Referenced record not found")
		}
	}

	m := &mover{input: input, product: product, now: time.Now(), txID: uuid.New().String()}

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		m.movRepo, m.stockRepo, m.productRepo = movRepo, stockRepo, productRepo
		locked, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.NewValidationError("product_id", "Referenced record not found")
		}
		m.product = locked
		switch input.Type {
		case entity.MovementTypeIN:
			return m.in(ctx, input.WarehouseID, input.Quantity, *input.UnitCost, entity.MovementTypeIN)
		case entity.MovementTypeOUT:
			return m.out(ctx, input.WarehouseID, input.Quantity, entity.MovementTypeOUT)
		case entity.MovementTypeADJUSTMENT:
			if input.Quantity.IsPositive() {
				unitCost := m.product.Cost
				if input.UnitCost != nil {
					unitCost = *input.UnitCost
				}
				return m.in(ctx, input.WarehouseID, input.Quantity, unitCost, entity.MovementTypeADJUSTMENT)
			}
			return m.out(ctx, input.WarehouseID, input.Quantity.Neg(), entity.MovementTypeADJUSTMENT)
		case entity.MovementTypeTRANSFER:
			return m.transfer(ctx)
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}
	return m.created, nil
}

// mover aplica un movimiento con los repos atados a la transacción.
type mover struct {
	input       MovementInputDTO
	product     *entity.Product
	now         time.Time
	txID        string
	movRepo     repository.InventoryMovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	created     []*entity.InventoryMovement
}

// in bloquea la fila, recalcula el costo promedio ponderado, suma stock y guarda el movimiento.
func (m *mover) in(ctx context.Context, warehouseID string, qty, unitCost decimal.Decimal, movType string) error {
	stock, err := m.stockRepo.GetForUpdate(ctx, m.input.ProductID, warehouseID)
	if err != nil {
		return err
	}
	// el costo promedio es por producto: se usa la existencia total de todas las bodegas
	levels, err := m.stockRepo.ListLevels(ctx, m.input.CompanyID, m.input.ProductID, "")
	if err != nil {
		return err
	}
	totalQty := decimal.Zero
	for _, l := range levels {
		totalQty = totalQty.Add(l.Quantity)
	}
	newCost := inventory.CostCalculator(totalQty, m.product.Cost, qty, unitCost)
	if err := m.productRepo.UpdateCost(ctx, m.input.ProductID, newCost); err != nil {
		return err
	}
	m.product.Cost = newCost

	stock.CompanyID = m.input.CompanyID
	stock.Quantity = stock.Quantity.Add(qty)
	stock.UpdatedAt = m.now
	if err := m.stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}
	return m.record(ctx, warehouseID, movType, qty, unitCost)
}

// out bloquea la fila, verifica existencia suficiente y resta al costo promedio actual.
func (m *mover) out(ctx context.Context, warehouseID string, qty decimal.Decimal, movType string) error {
	stock, err := m.stockRepo.GetForUpdate(ctx, m.input.ProductID, warehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	stock.CompanyID = m.input.CompanyID
	stock.Quantity = stock.Quantity.Sub(qty)
	stock.UpdatedAt = m.now
	if err := m.stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}
	return m.record(ctx, warehouseID, movType, qty.Neg(), m.product.Cost)
}

// transfer resta de la bodega origen y suma en la destino; dos registros con el mismo transaction_id.
func (m *mover) transfer(ctx context.Context) error {
	if err := m.out(ctx, m.input.FromWarehouseID, m.input.Quantity, entity.MovementTypeTransferOut); err != nil {
		return err
	}
	dest, err := m.stockRepo.GetForUpdate(ctx, m.input.ProductID, m.input.ToWarehouseID)
	if err != nil {
		return err
	}
	dest.CompanyID = m.input.CompanyID
	dest.Quantity = dest.Quantity.Add(m.input.Quantity)
	dest.UpdatedAt = m.now
	if err := m.stockRepo.Upsert(ctx, dest); err != nil {
		return err
	}
	return m.record(ctx, m.input.ToWarehouseID, entity.MovementTypeTransferIn, m.input.Quantity, m.product.Cost)
}

func (m *mover) record(ctx context.Context, warehouseID, movType string, qty, unitCost decimal.Decimal) error {
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		CompanyID:     m.input.CompanyID,
		TransactionID: m.txID,
		ProductID:     m.input.ProductID,
		WarehouseID:   warehouseID,
		Type:          movType,
		Quantity:      qty,
		UnitCost:      unitCost,
		TotalCost:     qty.Mul(unitCost).Round(2),
		Note:          m.input.Note,
		Date:          m.now,
		CreatedAt:     m.now,
		CreatedBy:     m.input.UserID,
	}
	if err := m.movRepo.Create(ctx, mov); err != nil {
		return err
	}
	m.created = append(m.created, mov)
	return nil
}
