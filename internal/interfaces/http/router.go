package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/distribuidora-pro/internal/application/auth"
	"github.com/tu-usuario/distribuidora-pro/internal/application/catalog"
	"github.com/tu-usuario/distribuidora-pro/internal/application/inventory"
	"github.com/tu-usuario/distribuidora-pro/internal/application/orders"
	"github.com/tu-usuario/distribuidora-pro/internal/application/pricing"
	"github.com/tu-usuario/distribuidora-pro/internal/application/procurement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *catalog.ProductUseCase
	CustomerUC    *catalog.CustomerUseCase
	SupplierUC    *catalog.SupplierUseCase
	WarehouseUC   *catalog.WarehouseUseCase
	PriceListUC   *catalog.PriceListUseCase
	PricingUC     *pricing.ResolvePriceUseCase
	LifecycleUC   *orders.LifecycleUseCase
	LineBuilderUC *orders.LineBuilderUseCase
	OrderQueryUC  *orders.QueryUseCase
	PaymentUC     *orders.PaymentUseCase
	DocumentUC    *orders.DocumentUseCase
	ProcurementUC *procurement.UseCase
	POQueryUC     *procurement.QueryUseCase
	InventoryUC   *inventory.QueryUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de referencias
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole("admin"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole("admin"), productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// Clientes, precios pactados, reglas, abonos y cartera
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.PaymentUC, deps.OrderQueryUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole("admin"), customerHandler.Delete)
	customers.Post("/:id/prices", RequireRole("admin", "vendedor"), customerHandler.SetPrice)
	customers.Delete("/:id/prices/:priceId", RequireRole("admin", "vendedor"), customerHandler.DeletePrice)
	customers.Post("/:id/rules", RequireRole("admin", "vendedor"), customerHandler.SetRule)
	customers.Delete("/:id/rules/:ruleId", RequireRole("admin", "vendedor"), customerHandler.DeleteRule)
	customers.Post("/:id/payments", RequireRole("admin", "vendedor"), customerHandler.RegisterPayment)
	customers.Get("/:id/ledger", customerHandler.Ledger)

	// Proveedores (marcas y fábricas)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", RequireRole("admin"), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Delete("/:id", RequireRole("admin"), supplierHandler.Delete)

	// Bodegas y existencias
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	warehouses.Post("/", RequireRole("admin"), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/stock", inventoryHandler.StockByWarehouse)
	products.Get("/:id/movements", inventoryHandler.MovementsByProduct)

	// Listas de precios
	priceLists := protected.Group("/price-lists")
	priceListHandler := NewPriceListHandler(deps.PriceListUC)
	priceLists.Post("/", RequireRole("admin"), priceListHandler.Create)
	priceLists.Get("/", priceListHandler.List)
	priceLists.Get("/:id", priceListHandler.GetByID)
	priceLists.Put("/:id/items", RequireRole("admin"), priceListHandler.SetItem)

	// Cascada de precios
	pricingGroup := protected.Group("/pricing")
	pricingHandler := NewPricingHandler(deps.PricingUC)
	pricingGroup.Get("/resolve", pricingHandler.Resolve)

	// Pedidos de venta: captura, ciclo de vida y documentos
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.LifecycleUC, deps.LineBuilderUC, deps.OrderQueryUC, deps.DocumentUC)
	ordersGroup.Post("/lines/build", orderHandler.BuildLine)
	ordersGroup.Post("/lines/update", orderHandler.UpdateLine)
	ordersGroup.Post("/", RequireRole("admin", "vendedor"), orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", RequireRole("admin", "vendedor"), orderHandler.Edit)
	ordersGroup.Post("/:id/confirm", RequireRole("admin", "vendedor"), orderHandler.Confirm)
	ordersGroup.Post("/:id/cancel", RequireRole("admin", "vendedor"), orderHandler.Cancel)
	ordersGroup.Delete("/:id", RequireRole("admin", "vendedor"), orderHandler.Delete)
	ordersGroup.Post("/:id/deliver", RequireRole("admin", "vendedor", "bodeguero"), orderHandler.Deliver)
	ordersGroup.Get("/:id/print-lines", orderHandler.PrintLines)
	ordersGroup.Get("/:id/pdf", orderHandler.PDF)

	// Órdenes de compra y recepciones
	poGroup := protected.Group("/purchase-orders")
	procurementHandler := NewProcurementHandler(deps.ProcurementUC, deps.POQueryUC)
	poGroup.Post("/", RequireRole("admin", "bodeguero"), procurementHandler.Create)
	poGroup.Get("/", procurementHandler.List)
	poGroup.Get("/:id", procurementHandler.GetByID)
	poGroup.Post("/:id/receipts", RequireRole("admin", "bodeguero"), procurementHandler.Receive)
	poGroup.Get("/:id/receipts", procurementHandler.Receipts)
	poGroup.Post("/:id/receive-all", RequireRole("admin", "bodeguero"), procurementHandler.DirectReceive)
	poGroup.Post("/:id/cancel", RequireRole("admin", "bodeguero"), procurementHandler.Cancel)
}
