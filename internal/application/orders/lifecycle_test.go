package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/application/orders"
	"github.com/tu-usuario/distribuidora-pro/internal/application/pricing"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store transaccional falso: estado en memoria con snapshot/rollback, para
// probar el ciclo de vida sin base de datos. El TxRunner clona el estado
// antes de ejecutar el callback y lo restaura si este falla, imitando el
// Rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

var errBoom = errors.New("falla simulada del store")

type memStore struct {
	orders    map[string]*entity.Order
	items     map[string][]*entity.OrderItem
	stocks    map[string]*entity.Stock
	movements []*entity.InventoryMovement
	customers map[string]*entity.Customer
	cash      []*entity.CashMovement

	failOnMovement bool // simula error del store al escribir movimientos
}

func newMemStore() *memStore {
	return &memStore{
		orders:    map[string]*entity.Order{},
		items:     map[string][]*entity.OrderItem{},
		stocks:    map[string]*entity.Stock{},
		customers: map[string]*entity.Customer{},
	}
}

func stockKey(productID, warehouseID string, own entity.OwnershipType) string {
	return productID + "|" + warehouseID + "|" + string(own)
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.failOnMovement = s.failOnMovement
	for k, v := range s.orders {
		o := *v
		c.orders[k] = &o
	}
	for k, list := range s.items {
		for _, it := range list {
			cp := *it
			c.items[k] = append(c.items[k], &cp)
		}
	}
	for k, v := range s.stocks {
		st := *v
		c.stocks[k] = &st
	}
	for k, v := range s.customers {
		cu := *v
		c.customers[k] = &cu
	}
	c.movements = append(c.movements, s.movements...)
	c.cash = append(c.cash, s.cash...)
	return c
}

func (s *memStore) restore(from *memStore) {
	s.orders = from.orders
	s.items = from.items
	s.stocks = from.stocks
	s.customers = from.customers
	s.movements = from.movements
	s.cash = from.cash
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) RunOrder(ctx context.Context, fn func(
	repository.OrderRepository,
	repository.StockRepository,
	repository.InventoryMovementRepository,
	repository.CustomerRepository,
	repository.CashMovementRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(
		&memOrderRepo{r.store},
		&memStockRepo{r.store},
		&memMovementRepo{r.store},
		&memCustomerRepo{r.store},
		&memCashRepo{r.store},
	)
	if err != nil {
		r.store.restore(snapshot)
	}
	return err
}

// ── Repos sobre el store ─────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) CreateItem(it *entity.OrderItem) error {
	cp := *it
	r.s.items[it.OrderID] = append(r.s.items[it.OrderID], &cp)
	return nil
}

func (r *memOrderRepo) get(id string) *entity.Order {
	o, ok := r.s.orders[id]
	if !ok {
		return nil
	}
	cp := *o
	cp.Items = nil
	for _, it := range r.s.items[id] {
		cp.Items = append(cp.Items, *it)
	}
	return &cp
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error)      { return r.get(id), nil }
func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.get(id), nil }

func (r *memOrderRepo) UpdateHeader(o *entity.Order) error {
	cp := *o
	cp.Items = nil
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) UpdateStatus(id string, status entity.OrderStatus) error {
	if o, ok := r.s.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *memOrderRepo) DeleteItems(orderID string) error {
	delete(r.s.items, orderID)
	return nil
}

func (r *memOrderRepo) Delete(id string) error {
	delete(r.s.orders, id)
	return nil
}

func (r *memOrderRepo) List(limit, offset int) ([]*entity.Order, error) { return nil, nil }

func (r *memOrderRepo) LastUnitPrice(customerID, productID string, before time.Time) (*decimal.Decimal, error) {
	return nil, nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(productID, warehouseID string, own entity.OwnershipType) (*entity.Stock, error) {
	return r.GetForUpdate(productID, warehouseID, own)
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string, own entity.OwnershipType) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey(productID, warehouseID, own)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Ownership: own}, nil
}

func (r *memStockRepo) Upsert(st *entity.Stock) error {
	cp := *st
	r.s.stocks[stockKey(st.ProductID, st.WarehouseID, st.Ownership)] = &cp
	return nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	if r.s.failOnMovement {
		return errBoom
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error   { return nil }
func (r *memCustomerRepo) HasOrders(id string) (bool, error) { return false, nil }
func (r *memCustomerRepo) Delete(id string) error            { return nil }

func (r *memCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *memCustomerRepo) AddToBalance(id string, delta decimal.Decimal) error {
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentBalance = c.CurrentBalance.Add(delta)
	return nil
}

type memCashRepo struct{ s *memStore }

func (r *memCashRepo) Create(m *entity.CashMovement) error {
	cp := *m
	r.s.cash = append(r.s.cash, &cp)
	return nil
}

func (r *memCashRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CashMovement, error) {
	return nil, nil
}

func (r *memCashRepo) ListByReference(referenceID string) ([]*entity.CashMovement, error) {
	return nil, nil
}

// ── Dependencias fuera de la transacción ─────────────────────────────────────

type memProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

type memWarehouseRepo struct {
	repository.WarehouseRepository
	warehouses map[string]*entity.Warehouse
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

type fixedResolver struct{ price decimal.Decimal }

func (f *fixedResolver) Resolve(ctx context.Context, customerID, productID string) (decimal.Decimal, pricing.Tier, error) {
	return f.price, pricing.TierBase, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fixture struct {
	store *memStore
	uc    *orders.LifecycleUseCase
	pay   *orders.PaymentUseCase
}

// newFixture: producto 60/60 (0.36 m²/pieza), 4 piezas por caja, 36 cajas por
// estiba; bodega w1 con 2000 piezas propias en mano; cliente c1 sin saldo.
func newFixture(cfg orders.Config) *fixture {
	store := newMemStore()
	store.customers["c1"] = &entity.Customer{ID: "c1", Name: "Constructora Andina"}
	store.stocks[stockKey("p1", "w1", entity.OwnershipOwned)] = &entity.Stock{
		ProductID: "p1", WarehouseID: "w1", Ownership: entity.OwnershipOwned,
		OnHand: d("2000"),
	}
	products := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "CER-6060", Name: "Piso 60x60", Size: "60/60",
			PiecesPerCarton: d("4"), CartonsPerPallet: d("36"), BasePrice: d("12.5")},
	}}
	warehouses := &memWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"w1": {ID: "w1", Name: "Bodega principal"},
	}}
	runner := &memTxRunner{store: store}
	uc := orders.NewLifecycleUseCase(runner, products, &memCustomerRepo{store}, warehouses, &fixedResolver{price: d("12.5")}, cfg)
	return &fixture{store: store, uc: uc, pay: orders.NewPaymentUseCase(runner)}
}

func (f *fixture) reserved(productID string) decimal.Decimal {
	st := f.store.stocks[stockKey(productID, "w1", entity.OwnershipOwned)]
	if st == nil {
		return decimal.Zero
	}
	return st.Reserved
}

func (f *fixture) onHand(productID string) decimal.Decimal {
	st := f.store.stocks[stockKey(productID, "w1", entity.OwnershipOwned)]
	if st == nil {
		return decimal.Zero
	}
	return st.OnHand
}

func pallets(n string) []dto.OrderLineRequest {
	return []dto.OrderLineRequest{{ProductID: "p1", Quantity: d(n), Unit: "PALLET"}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear / editar / eliminar: conservación de reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ReservaPorPiezas(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	// 5 estibas × 36 cajas × 4 piezas = 720 piezas reservadas.
	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.True(t, f.reserved("p1").Equal(d("720")))
	assert.True(t, f.onHand("p1").Equal(d("2000")), "crear no toca la existencia física")

	require.Len(t, resp.Deltas, 1)
	assert.True(t, resp.Deltas[0].ReservedDelta.Equal(d("720")))
	assert.True(t, resp.Deltas[0].OnHandDelta.IsZero())

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].CartonCount.Equal(d("180")))
	assert.True(t, resp.Items[0].PalletCount.Equal(d("5")))
}

func TestCreate_StockInsuficiente(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	// 2016 piezas > 2000 en mano: rechazado y sin reserva residual.
	_, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("14"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.reserved("p1").IsZero())
}

func TestCreate_SobreventaPermitida(t *testing.T) {
	f := newFixture(orders.Config{AllowOversell: true})
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("14"),
	})
	require.NoError(t, err, "con la política activa la reserva puede exceder el disponible")
	assert.True(t, f.reserved("p1").Equal(d("2016")))
}

func TestConservacionDeReservas(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	a, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("3"),
	})
	require.NoError(t, err)
	b, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("2"),
	})
	require.NoError(t, err)
	assert.True(t, f.reserved("p1").Equal(d("720")), "3+2 estibas = 720 piezas")

	// Editar el primero de 3 → 1 estiba aplica el delta (−288).
	_, err = f.uc.Edit(ctx, "u1", a.ID, dto.EditOrderRequest{Items: pallets("1")})
	require.NoError(t, err)
	assert.True(t, f.reserved("p1").Equal(d("432")))

	// Eliminar el segundo libera sus 288 piezas.
	_, err = f.uc.Delete(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.True(t, f.reserved("p1").Equal(d("144")), "solo queda la reserva del pedido editado")

	_, ok := f.store.orders[b.ID]
	assert.False(t, ok, "eliminar en PENDING borra la fila")
}

func TestEdit_SoloPending(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("1"),
	})
	require.NoError(t, err)
	_, err = f.uc.Confirm(ctx, "u1", resp.ID)
	require.NoError(t, err)

	_, err = f.uc.Edit(ctx, "u1", resp.ID, dto.EditOrderRequest{Items: pallets("2")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.uc.Delete(ctx, "u1", resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmar: consumo, movimiento SALE, caja y saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_IdentidadDeSaldo(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	// 2 estibas × 36 × 4 = 288 piezas; total 288 m²... aquí el precio es por
	// unidad de la línea: 2 PALLET × 5000 = 10000, abono 4000.
	price := d("5000")
	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID:    "c1",
		WarehouseID:   "w1",
		PaymentAmount: d("4000"),
		PaymentMethod: "efectivo",
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: d("2"), Unit: "PALLET", UnitPrice: &price},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d("10000")))

	confirmed, err := f.uc.Confirm(ctx, "u1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)

	// Saldo del cliente sube exactamente total − abono = 6000.
	assert.True(t, f.store.customers["c1"].CurrentBalance.Equal(d("6000")))

	// Stock consumido y reserva liberada por la misma cantidad.
	assert.True(t, f.onHand("p1").Equal(d("1712")))
	assert.True(t, f.reserved("p1").IsZero())

	// Movimiento SALE en piezas negativas y pago en caja.
	require.Len(t, f.store.movements, 1)
	assert.Equal(t, entity.MovementTypeSALE, f.store.movements[0].Type)
	assert.True(t, f.store.movements[0].Quantity.Equal(d("-288")))
	require.Len(t, f.store.cash, 1)
	assert.Equal(t, entity.CashTypeSalePayment, f.store.cash[0].Type)
	assert.True(t, f.store.cash[0].Amount.Equal(d("4000")))
}

func TestConfirm_RollbackCompleto(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", PaymentAmount: d("1000"),
		Items: pallets("2"),
	})
	require.NoError(t, err)

	// El store falla al escribir el movimiento: nada debe quedar aplicado.
	f.store.failOnMovement = true
	_, err = f.uc.Confirm(ctx, "u1", resp.ID)
	require.ErrorIs(t, err, errBoom)

	assert.True(t, f.onHand("p1").Equal(d("2000")), "existencia intacta tras rollback")
	assert.True(t, f.reserved("p1").Equal(d("288")), "reserva intacta tras rollback")
	assert.True(t, f.store.customers["c1"].CurrentBalance.IsZero(), "saldo intacto tras rollback")
	assert.Empty(t, f.store.cash)
	assert.Equal(t, entity.OrderStatusPending, f.store.orders[resp.ID].Status)
}

func TestConfirm_TopeExistenciaFisica(t *testing.T) {
	// Con sobreventa permitida se puede reservar de más, pero confirmar por
	// encima de la existencia física sigue rechazado.
	f := newFixture(orders.Config{AllowOversell: true})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("14"), // 2016 > 2000
	})
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, "u1", resp.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.onHand("p1").Equal(d("2000")))
}

func TestMaquinaDeEstados(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("1"),
	})
	require.NoError(t, err)

	// Entregar desde PENDING no es válido.
	_, err = f.uc.Deliver(ctx, "u1", resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.Confirm(ctx, "u1", resp.ID)
	require.NoError(t, err)

	// Confirmar dos veces tampoco.
	_, err = f.uc.Confirm(ctx, "u1", resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	delivered, err := f.uc.Deliver(ctx, "u1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", delivered.Status)

	// DELIVERED es terminal.
	_, err = f.uc.Cancel(ctx, "u1", resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel_ConservaFila(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		CustomerID: "c1", WarehouseID: "w1", Items: pallets("2"),
	})
	require.NoError(t, err)
	assert.True(t, f.reserved("p1").Equal(d("288")))

	cancelled, err := f.uc.Cancel(ctx, "u1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.True(t, f.reserved("p1").IsZero(), "cancelar libera la reserva")

	kept, ok := f.store.orders[resp.ID]
	require.True(t, ok, "cancelar conserva la fila para auditoría")
	assert.Equal(t, entity.OrderStatusCancelled, kept.Status)
}

func TestMostrador_SinEfectoEnCartera(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, "u1", dto.CreateOrderRequest{
		WalkInName: "Cliente de mostrador", WarehouseID: "w1",
		PaymentAmount: d("100"), Items: pallets("1"),
	})
	require.NoError(t, err)
	_, err = f.uc.Confirm(ctx, "u1", resp.ID)
	require.NoError(t, err)

	assert.True(t, f.store.customers["c1"].CurrentBalance.IsZero())
	require.Len(t, f.store.cash, 1, "el pago sí queda en caja")
}

func TestRegisterPayment_AbonoDeCliente(t *testing.T) {
	f := newFixture(orders.Config{})
	ctx := context.Background()

	f.store.customers["c1"].CurrentBalance = d("6000")

	resp, err := f.pay.RegisterPayment(ctx, "u1", "c1", dto.RegisterPaymentRequest{
		Amount: d("2500"), Method: "transferencia",
	})
	require.NoError(t, err)
	assert.True(t, resp.NewBalance.Equal(d("3500")))
	assert.True(t, f.store.customers["c1"].CurrentBalance.Equal(d("3500")))
	require.Len(t, f.store.cash, 1)
	assert.Equal(t, entity.CashTypeCustomerPayment, f.store.cash[0].Type)

	_, err = f.pay.RegisterPayment(ctx, "u1", "c1", dto.RegisterPaymentRequest{Amount: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
