package procurement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/distribuidora-pro/internal/application/dto"
	"github.com/tu-usuario/distribuidora-pro/internal/application/procurement"
	"github.com/tu-usuario/distribuidora-pro/internal/domain"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/entity"
	"github.com/tu-usuario/distribuidora-pro/internal/domain/repository"
)

// Store transaccional falso del lado de compras: snapshot/rollback en
// memoria, espejo del que usa el paquete de pedidos.

type memStore struct {
	pos       map[string]*entity.PurchaseOrder
	items     map[string][]*entity.POItem
	receipts  []*entity.GoodsReceipt
	recItems  []*entity.GoodsReceiptItem
	stocks    map[string]*entity.Stock
	movements []*entity.InventoryMovement
	cash      []*entity.CashMovement
}

func newMemStore() *memStore {
	return &memStore{
		pos:    map[string]*entity.PurchaseOrder{},
		items:  map[string][]*entity.POItem{},
		stocks: map[string]*entity.Stock{},
	}
}

func stockKey(productID, warehouseID string, own entity.OwnershipType) string {
	return productID + "|" + warehouseID + "|" + string(own)
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.pos {
		cp := *v
		c.pos[k] = &cp
	}
	for k, list := range s.items {
		for _, it := range list {
			cp := *it
			c.items[k] = append(c.items[k], &cp)
		}
	}
	for k, v := range s.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	c.receipts = append(c.receipts, s.receipts...)
	c.recItems = append(c.recItems, s.recItems...)
	c.movements = append(c.movements, s.movements...)
	c.cash = append(c.cash, s.cash...)
	return c
}

func (s *memStore) restore(from *memStore) {
	s.pos = from.pos
	s.items = from.items
	s.receipts = from.receipts
	s.recItems = from.recItems
	s.stocks = from.stocks
	s.movements = from.movements
	s.cash = from.cash
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) RunProcurement(ctx context.Context, fn func(
	repository.PurchaseOrderRepository,
	repository.GoodsReceiptRepository,
	repository.StockRepository,
	repository.InventoryMovementRepository,
	repository.CashMovementRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(
		&memPORepo{r.store},
		&memReceiptRepo{r.store},
		&memStockRepo{r.store},
		&memMovementRepo{r.store},
		&memCashRepo{r.store},
	)
	if err != nil {
		r.store.restore(snapshot)
	}
	return err
}

type memPORepo struct{ s *memStore }

func (r *memPORepo) Create(po *entity.PurchaseOrder) error {
	cp := *po
	cp.Items = nil
	r.s.pos[po.ID] = &cp
	return nil
}

func (r *memPORepo) CreateItem(it *entity.POItem) error {
	cp := *it
	r.s.items[it.PurchaseOrderID] = append(r.s.items[it.PurchaseOrderID], &cp)
	return nil
}

func (r *memPORepo) get(id string) *entity.PurchaseOrder {
	po, ok := r.s.pos[id]
	if !ok {
		return nil
	}
	cp := *po
	cp.Items = nil
	for _, it := range r.s.items[id] {
		cp.Items = append(cp.Items, *it)
	}
	return &cp
}

func (r *memPORepo) GetByID(id string) (*entity.PurchaseOrder, error)      { return r.get(id), nil }
func (r *memPORepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) { return r.get(id), nil }

func (r *memPORepo) UpdateStatus(id string, status entity.POStatus) error {
	if po, ok := r.s.pos[id]; ok {
		po.Status = status
	}
	return nil
}

func (r *memPORepo) UpdateItemReceived(itemID string, received decimal.Decimal) error {
	for _, list := range r.s.items {
		for _, it := range list {
			if it.ID == itemID {
				it.ReceivedQuantity = received
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *memPORepo) AddToPayment(id string, delta decimal.Decimal) error {
	if po, ok := r.s.pos[id]; ok {
		po.PaymentAmount = po.PaymentAmount.Add(delta)
		return nil
	}
	return domain.ErrNotFound
}

func (r *memPORepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) { return nil, nil }

type memReceiptRepo struct{ s *memStore }

func (r *memReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	cp := *receipt
	r.s.receipts = append(r.s.receipts, &cp)
	return nil
}

func (r *memReceiptRepo) CreateItem(it *entity.GoodsReceiptItem) error {
	cp := *it
	r.s.recItems = append(r.s.recItems, &cp)
	return nil
}

func (r *memReceiptRepo) ListByPurchaseOrder(poID string) ([]*entity.GoodsReceipt, error) {
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
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
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

type memProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

type memSupplierRepo struct {
	repository.SupplierRepository
	suppliers map[string]*entity.Supplier
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) { return r.suppliers[id], nil }

type memWarehouseRepo struct {
	repository.WarehouseRepository
	warehouses map[string]*entity.Warehouse
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
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
	uc    *procurement.UseCase
}

func newFixture() *fixture {
	store := newMemStore()
	products := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "CER-6060", Name: "Piso 60x60", Size: "60/60",
			PiecesPerCarton: d("4"), CartonsPerPallet: d("36"), BasePrice: d("12.5")},
	}}
	suppliers := &memSupplierRepo{suppliers: map[string]*entity.Supplier{
		"s-brand":   {ID: "s-brand", Kind: entity.SupplierBrand, Name: "Corona"},
		"s-factory": {ID: "s-factory", Kind: entity.SupplierFactory, Name: "Fábrica del Sur"},
	}}
	warehouses := &memWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"w1": {ID: "w1", Name: "Bodega principal"},
	}}
	uc := procurement.NewUseCase(&memTxRunner{store: store}, products, suppliers, warehouses)
	return &fixture{store: store, uc: uc}
}

func (f *fixture) onHand(productID string, own entity.OwnershipType) decimal.Decimal {
	st := f.store.stocks[stockKey(productID, "w1", own)]
	if st == nil {
		return decimal.Zero
	}
	return st.OnHand
}

func (f *fixture) createPO(t *testing.T, pallets string) *dto.PurchaseOrderResponse {
	t.Helper()
	resp, err := f.uc.CreatePurchaseOrder(context.Background(), "u1", dto.CreatePurchaseOrderRequest{
		SupplierKind: "BRAND", SupplierID: "s-brand", WarehouseID: "w1",
		Items: []dto.POLineRequest{
			{ProductID: "p1", Quantity: d(pallets), Unit: "PALLET", UnitPrice: d("4000")},
		},
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePO_ReferenciaEtiquetada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// El Kind del request debe coincidir con el del proveedor.
	_, err := f.uc.CreatePurchaseOrder(ctx, "u1", dto.CreatePurchaseOrderRequest{
		SupplierKind: "FACTORY", SupplierID: "s-brand", WarehouseID: "w1",
		Items: []dto.POLineRequest{{ProductID: "p1", Quantity: d("1"), Unit: "PALLET", UnitPrice: d("4000")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp := f.createPO(t, "10")
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "BRAND", resp.SupplierKind)
	assert.True(t, resp.TotalAmount.Equal(d("40000")))
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).IsZero(), "crear no toca inventario")
}

func TestCreatePO_PagoAlCrearQuedaEnCaja(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.uc.CreatePurchaseOrder(ctx, "u1", dto.CreatePurchaseOrderRequest{
		SupplierKind: "FACTORY", SupplierID: "s-factory", WarehouseID: "w1",
		DeliveryCost: d("500"), PaymentAmount: d("15000"),
		Items: []dto.POLineRequest{{ProductID: "p1", Quantity: d("10"), Unit: "PALLET", UnitPrice: d("4000")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d("40500")), "total incluye flete")
	assert.True(t, resp.PaymentAmount.Equal(d("15000")))

	require.Len(t, f.store.cash, 1)
	assert.Equal(t, entity.CashTypePurchasePayment, f.store.cash[0].Type)
	assert.True(t, f.store.cash[0].Amount.Equal(d("15000")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibir
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ParcialYDerivacionDeEstado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "10")
	itemID := po.Items[0].ID

	// Recibir 4 de 10 estibas: PARTIAL, 576 piezas en mano.
	resp, err := f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: itemID, Quantity: d("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", resp.Status)
	assert.True(t, resp.Items[0].ReceivedQuantity.Equal(d("4")))
	assert.True(t, resp.Items[0].Remaining.Equal(d("6")))
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).Equal(d("576")))

	// Movimiento PURCHASE en piezas positivas y línea de recepción con
	// conteos derivados por el mismo motor de empaques.
	require.Len(t, f.store.movements, 1)
	assert.Equal(t, entity.MovementTypePURCHASE, f.store.movements[0].Type)
	assert.True(t, f.store.movements[0].Quantity.Equal(d("576")))
	require.Len(t, f.store.recItems, 1)
	assert.True(t, f.store.recItems[0].CartonCount.Equal(d("144")))
	assert.True(t, f.store.recItems[0].PalletCount.Equal(d("4")))

	// Completar lo restante: RECEIVED.
	resp, err = f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: itemID, Quantity: d("6")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", resp.Status)
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).Equal(d("1440")))
}

func TestReceive_ExcesoRechazadoSinRecorte(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "10")
	itemID := po.Items[0].ID

	_, err := f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: itemID, Quantity: d("11")}},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	// Rechazo total: ni acumulado, ni stock, ni movimientos.
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).IsZero())
	assert.Empty(t, f.store.movements)
	assert.Empty(t, f.store.receipts)
	got := f.store.items[po.ID][0]
	assert.True(t, got.ReceivedQuantity.IsZero())
	assert.Equal(t, entity.POStatusPending, f.store.pos[po.ID].Status)
}

func TestReceive_MonotoniaDelAcumulado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "10")
	itemID := po.Items[0].ID

	received := decimal.Zero
	for _, qty := range []string{"3", "3", "3"} {
		resp, err := f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
			Items: []dto.ReceiptLineRequest{{POItemID: itemID, Quantity: d(qty)}},
		})
		require.NoError(t, err)
		next := resp.Items[0].ReceivedQuantity
		assert.True(t, next.GreaterThan(received), "el acumulado nunca decrece")
		received = next
	}
	assert.True(t, received.Equal(d("9")))

	// El décimo cierra; uno más queda fuera.
	_, err := f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: itemID, Quantity: d("2")}},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
}

func TestDirectReceive_TodoLoPendiente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "10")
	itemID := po.Items[0].ID

	// Recepción parcial previa; el clic directo completa el resto.
	_, err := f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: itemID, Quantity: d("3")}},
	})
	require.NoError(t, err)

	resp, err := f.uc.DirectReceive(ctx, "u1", po.ID)
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", resp.Status)
	assert.True(t, resp.Items[0].Remaining.IsZero())
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).Equal(d("1440")))
}

func TestDirectReceive_IdempotenteEnRecibida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "2")
	_, err := f.uc.DirectReceive(ctx, "u1", po.ID)
	require.NoError(t, err)
	require.Len(t, f.store.receipts, 1)

	// Segundo clic: no-op, sin recepción ni movimiento nuevos.
	resp, err := f.uc.DirectReceive(ctx, "u1", po.ID)
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", resp.Status)
	assert.Len(t, f.store.receipts, 1)
	assert.Len(t, f.store.movements, 1)
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).Equal(d("288")))
}

func TestReceive_Consignacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.uc.CreatePurchaseOrder(ctx, "u1", dto.CreatePurchaseOrderRequest{
		SupplierKind: "BRAND", SupplierID: "s-brand", WarehouseID: "w1",
		Ownership: "CONSIGNMENT",
		Items:     []dto.POLineRequest{{ProductID: "p1", Quantity: d("5"), Unit: "PALLET", UnitPrice: d("4000")}},
	})
	require.NoError(t, err)

	_, err = f.uc.DirectReceive(ctx, "u1", resp.ID)
	require.NoError(t, err)

	// La mercancía entra bajo la llave de consignación, no la propia.
	assert.True(t, f.onHand("p1", entity.OwnershipConsignment).Equal(d("720")))
	assert.True(t, f.onHand("p1", entity.OwnershipOwned).IsZero())
}

func TestCancelPO(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "5")
	resp, err := f.uc.CancelPurchaseOrder(ctx, "u1", po.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)

	// Cancelada no recibe.
	_, err = f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: po.Items[0].ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Con mercancía recibida tampoco se cancela.
	po2 := f.createPO(t, "5")
	_, err = f.uc.ReceiveGoods(ctx, "u1", po2.ID, dto.ReceiveGoodsRequest{
		Items: []dto.ReceiptLineRequest{{POItemID: po2.Items[0].ID, Quantity: d("1")}},
	})
	require.NoError(t, err)
	_, err = f.uc.CancelPurchaseOrder(ctx, "u1", po2.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceive_PagoEnRecepcion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	po := f.createPO(t, "10")
	resp, err := f.uc.ReceiveGoods(ctx, "u1", po.ID, dto.ReceiveGoodsRequest{
		PaymentAmount: d("20000"),
		Items:         []dto.ReceiptLineRequest{{POItemID: po.Items[0].ID, Quantity: d("5")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.PaymentAmount.Equal(d("20000")), "el pago se acumula en la orden")
	require.Len(t, f.store.cash, 1)
	assert.Equal(t, entity.CashTypePurchasePayment, f.store.cash[0].Type)
}
